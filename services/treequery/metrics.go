// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package treequery

import (
	"context"
	"errors"

	"github.com/AleutianAI/bintree/pkg/bintree"
	"github.com/AleutianAI/bintree/services/treequery/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// queryTotal counts queries by operation and result.
	// Result labels: "success", "not_found", "malformed", "invalid_path",
	// "too_large", "canceled", "other".
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bintree_queries_total",
		Help: "Total tree queries by operation and result",
	}, []string{"op", "result"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bintree_query_duration_seconds",
		Help:    "Tree query duration by operation",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"op"})

	treeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bintree_tree_nodes",
		Help:    "Node count of trees seen by the service",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	cachedTrees = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bintree_cached_trees",
		Help: "Trees currently held in the cache",
	})

	// cacheEvents goes through the OTel meter, so it follows whichever
	// metric exporter telemetry.Init selected.
	cacheEvents = telemetry.Int64Counter("bintree.cache.events",
		metric.WithDescription("Tree cache events by kind: stored, evicted, expired, deleted"),
	)
)

func recordCacheEvent(ctx context.Context, kind string) {
	cacheEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("event", kind)))
}

// classifyError maps an operation error to a metrics result label.
func classifyError(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrTreeNotFound), errors.Is(err, bintree.ErrNodeNotInTree):
		return "not_found"
	case errors.Is(err, bintree.ErrMalformedInput):
		return "malformed"
	case errors.Is(err, bintree.ErrInvalidPath):
		return "invalid_path"
	case errors.Is(err, ErrTreeTooLarge):
		return "too_large"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
