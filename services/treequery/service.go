// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package treequery provides the bintree query service and its HTTP surface.
//
// The service answers structural queries over binary trees holding float64
// values, either for a tree sent with the request or for a tree stored
// earlier in an in-memory cache. Nodes are addressed by path strings of
// 'L' and 'R' steps from the root ("" is the root).
//
// Every query runs in an OTel span and is counted in Prometheus metrics.
package treequery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AleutianAI/bintree/pkg/bintree"
	"github.com/AleutianAI/bintree/services/treequery/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tree is the tree type the service works with. JSON numbers decode to
// float64, so that is the value type.
type Tree = bintree.Tree[float64]

// ServiceConfig configures the query service.
type ServiceConfig struct {
	// MaxNodes is the largest tree accepted by any operation.
	// Default: 100000
	MaxNodes int

	// MaxCachedTrees is the cache capacity. The oldest tree is evicted to
	// make room. Default: 64
	MaxCachedTrees int

	// TreeTTL is how long a stored tree stays available.
	// Default: 30 minutes. 0 disables expiry.
	TreeTTL time.Duration
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxNodes:       100_000,
		MaxCachedTrees: 64,
		TreeTTL:        30 * time.Minute,
	}
}

// CachedTree is a stored tree. Trees are never mutated after they are
// stored, so a CachedTree may be read from many goroutines.
type CachedTree struct {
	ID        string
	Tree      *Tree
	Size      int
	CreatedAt time.Time
}

// Report summarizes a tree.
type Report struct {
	Size     int     `json:"size"`
	MinDepth int     `json:"min_depth"`
	MaxDepth int     `json:"max_depth"`
	MaxSum   float64 `json:"max_sum"`
	Encoded  string  `json:"encoded"`
}

// AncestorResult is the lowest common ancestor of two nodes.
type AncestorResult struct {
	Path  string  `json:"path"`
	Value float64 `json:"value"`
}

// Service answers tree queries and caches stored trees.
//
// Thread Safety:
//
//	Service is safe for concurrent use. The cache is guarded by mu; the
//	trees themselves are read-only once stored.
type Service struct {
	config ServiceConfig
	trees  map[string]*CachedTree
	mu     sync.RWMutex
	now    func() time.Time
}

// NewService creates a service. Zero config fields fall back to defaults.
func NewService(cfg ServiceConfig) *Service {
	defaults := DefaultServiceConfig()
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = defaults.MaxNodes
	}
	if cfg.MaxCachedTrees <= 0 {
		cfg.MaxCachedTrees = defaults.MaxCachedTrees
	}
	return &Service{
		config: cfg,
		trees:  make(map[string]*CachedTree),
		now:    time.Now,
	}
}

// =============================================================================
// Cache
// =============================================================================

// Store validates tree against the node limit and caches it under a new ID.
//
// Description:
//
//	Expired trees are purged first. When the cache is full the oldest tree
//	is evicted.
//
// Outputs:
//
//	*CachedTree - The stored entry.
//	error - ErrTreeTooLarge, or the context error if ctx is done.
func (s *Service) Store(ctx context.Context, tree *Tree) (*CachedTree, error) {
	if tree == nil {
		tree = bintree.New[float64](nil)
	}

	var entry *CachedTree
	err := s.observe(ctx, "store", tree, func(span trace.Span, size int) error {
		entry = &CachedTree{
			ID:        uuid.NewString(),
			Tree:      tree,
			Size:      size,
			CreatedAt: s.now(),
		}

		s.mu.Lock()
		s.purgeExpiredLocked(ctx)
		for len(s.trees) >= s.config.MaxCachedTrees {
			s.evictOldestLocked(ctx)
		}
		s.trees[entry.ID] = entry
		cachedTrees.Set(float64(len(s.trees)))
		s.mu.Unlock()

		recordCacheEvent(ctx, "stored")
		span.SetAttributes(attribute.String("tree.id", entry.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Tree stored", "tree_id", entry.ID, "size", entry.Size)
	return entry, nil
}

// Get returns the cached tree with the given ID, or ErrTreeNotFound. An
// expired tree is removed on lookup.
func (s *Service) Get(id string) (*CachedTree, error) {
	s.mu.RLock()
	entry, ok := s.trees[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTreeNotFound, id)
	}
	if s.expired(entry) {
		s.mu.Lock()
		if current, ok := s.trees[id]; ok && current == entry {
			delete(s.trees, id)
			cachedTrees.Set(float64(len(s.trees)))
			recordCacheEvent(context.Background(), "expired")
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrTreeNotFound, id)
	}
	return entry, nil
}

// Delete removes a cached tree. Deleting an unknown ID returns
// ErrTreeNotFound.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trees[id]; !ok {
		return fmt.Errorf("%w: %s", ErrTreeNotFound, id)
	}
	delete(s.trees, id)
	cachedTrees.Set(float64(len(s.trees)))
	recordCacheEvent(context.Background(), "deleted")
	return nil
}

// Count returns the number of live cached trees. Expired trees are purged
// first.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(context.Background())
	cachedTrees.Set(float64(len(s.trees)))
	return len(s.trees)
}

func (s *Service) expired(entry *CachedTree) bool {
	return s.config.TreeTTL > 0 && s.now().Sub(entry.CreatedAt) > s.config.TreeTTL
}

// purgeExpiredLocked drops expired trees. Caller holds mu.
func (s *Service) purgeExpiredLocked(ctx context.Context) {
	for id, entry := range s.trees {
		if s.expired(entry) {
			delete(s.trees, id)
			recordCacheEvent(ctx, "expired")
		}
	}
}

// evictOldestLocked drops the oldest tree. Caller holds mu.
func (s *Service) evictOldestLocked(ctx context.Context) {
	var oldest *CachedTree
	for _, entry := range s.trees {
		if oldest == nil || entry.CreatedAt.Before(oldest.CreatedAt) {
			oldest = entry
		}
	}
	if oldest != nil {
		delete(s.trees, oldest.ID)
		recordCacheEvent(ctx, "evicted")
		slog.DebugContext(ctx, "Tree evicted", "tree_id", oldest.ID)
	}
}

// =============================================================================
// Queries
// =============================================================================

// Analyze computes the size, depths, best path sum and canonical encoding
// of tree.
func (s *Service) Analyze(ctx context.Context, tree *Tree) (Report, error) {
	var report Report
	err := s.observe(ctx, "analyze", tree, func(span trace.Span, size int) error {
		encoded, err := bintree.Serialize(tree)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		report = Report{
			Size:     size,
			MinDepth: tree.MinDepth(),
			MaxDepth: tree.MaxDepth(),
			MaxSum:   tree.MaxSum(),
			Encoded:  encoded,
		}
		span.SetAttributes(
			attribute.Int("tree.min_depth", report.MinDepth),
			attribute.Int("tree.max_depth", report.MaxDepth),
		)
		return nil
	})
	return report, err
}

// NextLarger returns the smallest value in tree strictly greater than
// bound. found is false when there is none.
func (s *Service) NextLarger(ctx context.Context, tree *Tree, bound float64) (value float64, found bool, err error) {
	err = s.observe(ctx, "next_larger", tree, func(span trace.Span, _ int) error {
		value, found = tree.NextLarger(bound)
		span.SetAttributes(attribute.Bool("found", found))
		return nil
	})
	return value, found, err
}

// Cousins reports whether the nodes at pathA and pathB are cousins.
//
// A well-formed path that leads off the tree names no node, and a missing
// node has no cousins, so the result is false rather than an error. A path
// holding anything but 'L' and 'R' returns bintree.ErrInvalidPath.
func (s *Service) Cousins(ctx context.Context, tree *Tree, pathA, pathB string) (bool, error) {
	var cousins bool
	err := s.observe(ctx, "cousins", tree, func(span trace.Span, _ int) error {
		if err := checkPaths(pathA, pathB); err != nil {
			return err
		}
		cousins = tree.AreCousins(locateOptional(tree, pathA), locateOptional(tree, pathB))
		span.SetAttributes(attribute.Bool("cousins", cousins))
		return nil
	})
	return cousins, err
}

// LCA returns the lowest common ancestor of the nodes at pathA and pathB.
//
// Outputs:
//
//	AncestorResult - Path and value of the ancestor.
//	error - bintree.ErrNodeNotInTree if either path leads off the tree
//	        (including any path into an empty tree), bintree.ErrInvalidPath
//	        for malformed paths.
func (s *Service) LCA(ctx context.Context, tree *Tree, pathA, pathB string) (AncestorResult, error) {
	var result AncestorResult
	err := s.observe(ctx, "lca", tree, func(span trace.Span, _ int) error {
		if err := checkPaths(pathA, pathB); err != nil {
			return err
		}
		a, err := tree.Locate(pathA)
		if err != nil {
			return err
		}
		b, err := tree.Locate(pathB)
		if err != nil {
			return err
		}

		ancestor, err := tree.LowestCommonAncestor(a, b)
		if err != nil {
			return err
		}
		path, err := tree.PathOf(ancestor)
		if err != nil {
			return err
		}

		result = AncestorResult{Path: path, Value: ancestor.Value}
		span.SetAttributes(attribute.String("lca.path", path))
		return nil
	})
	return result, err
}

func checkPaths(paths ...string) error {
	for _, p := range paths {
		if !bintree.ValidPath(p) {
			return fmt.Errorf("path %q: %w", p, bintree.ErrInvalidPath)
		}
	}
	return nil
}

// locateOptional resolves a well-formed path, mapping "no such node" to nil.
func locateOptional(tree *Tree, path string) *bintree.Node[float64] {
	node, err := tree.Locate(path)
	if err != nil {
		return nil
	}
	return node
}

// observe wraps one operation with the context check, node limit, span,
// and metrics every query shares.
func (s *Service) observe(ctx context.Context, op string, tree *Tree, fn func(span trace.Span, size int) error) (err error) {
	start := time.Now()

	ctx, span := telemetry.StartSpan(ctx, "treequery.Service."+op)
	defer span.End()

	defer func() {
		queryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		queryTotal.WithLabelValues(op, classifyError(err)).Inc()
		if err != nil {
			telemetry.RecordError(span, err)
			return
		}
		telemetry.SetSpanOK(span)
	}()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	size := tree.Size()
	treeNodes.Observe(float64(size))
	span.SetAttributes(attribute.Int("tree.size", size))
	if size > s.config.MaxNodes {
		return fmt.Errorf("%s: %d nodes, limit %d: %w", op, size, s.config.MaxNodes, ErrTreeTooLarge)
	}

	return fn(span, size)
}
