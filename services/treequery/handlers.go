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
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AleutianAI/bintree/pkg/bintree"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceVersion is the treequery service version.
const ServiceVersion = "0.1.0"

// Handlers contains the HTTP handlers for the tree query service.
type Handlers struct {
	svc   *Service
	ready func() bool
}

// NewHandlers creates handlers for the given service.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc, ready: func() bool { return true }}
}

// WithReadiness sets the check behind GET /v1/ready. The server uses it
// to report not ready while draining.
func (h *Handlers) WithReadiness(ready func() bool) *Handlers {
	if ready != nil {
		h.ready = ready
	}
	return h
}

// HandleStore handles POST /v1/trees.
//
// Description:
//
//	Decodes the tree, checks it against the node limit, and caches it.
//
// Request Body:
//
//	TreeRequest
//
// Response:
//
//	201 Created: StoreResponse
//	400 Bad Request: Malformed tree or validation error
//	413 Request Entity Too Large: Body or tree over the limit
func (h *Handlers) HandleStore(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleStore")

	var req TreeRequest
	if !bindRequest(c, logger, &req) {
		return
	}

	entry, err := h.svc.Store(c.Request.Context(), req.Tree)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	logger.Info("Tree stored", "tree_id", entry.ID, "size", entry.Size)
	c.JSON(http.StatusCreated, StoreResponse{TreeID: entry.ID, Size: entry.Size})
}

// HandleGet handles GET /v1/trees/:id.
//
// Response:
//
//	200 OK: TreeResponse
//	404 Not Found: Unknown or expired tree
func (h *Handlers) HandleGet(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGet")

	entry, ok := h.lookup(c, logger)
	if !ok {
		return
	}

	encoded, err := bintree.Serialize(entry.Tree)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, TreeResponse{
		TreeID: entry.ID,
		Size:   entry.Size,
		Tree:   json.RawMessage(encoded),
	})
}

// HandleDelete handles DELETE /v1/trees/:id.
//
// Response:
//
//	204 No Content
//	404 Not Found: Unknown tree
func (h *Handlers) HandleDelete(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleDelete")

	id := c.Param("id")
	if err := h.svc.Delete(id); err != nil {
		writeError(c, logger, err)
		return
	}

	logger.Info("Tree deleted", "tree_id", id)
	c.Status(http.StatusNoContent)
}

// HandleAnalyze handles POST /v1/trees/:id/analyze.
//
// Response:
//
//	200 OK: Report
//	404 Not Found: Unknown tree
func (h *Handlers) HandleAnalyze(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleAnalyze")

	entry, ok := h.lookup(c, logger)
	if !ok {
		return
	}

	report, err := h.svc.Analyze(c.Request.Context(), entry.Tree)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// HandleAnalyzeInline handles POST /v1/analyze.
//
// Description:
//
//	Analyzes a tree sent in the body without caching it.
//
// Request Body:
//
//	TreeRequest
//
// Response:
//
//	200 OK: Report
//	400 Bad Request: Malformed tree or validation error
//	413 Request Entity Too Large: Body or tree over the limit
func (h *Handlers) HandleAnalyzeInline(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleAnalyzeInline")

	var req TreeRequest
	if !bindRequest(c, logger, &req) {
		return
	}

	report, err := h.svc.Analyze(c.Request.Context(), req.Tree)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// HandleNextLarger handles POST /v1/trees/:id/next-larger.
//
// Request Body:
//
//	NextLargerRequest
//
// Response:
//
//	200 OK: NextLargerResponse
//	400 Bad Request: Missing bound
//	404 Not Found: Unknown tree
func (h *Handlers) HandleNextLarger(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleNextLarger")

	entry, ok := h.lookup(c, logger)
	if !ok {
		return
	}

	var req NextLargerRequest
	if !bindRequest(c, logger, &req) {
		return
	}

	value, found, err := h.svc.NextLarger(c.Request.Context(), entry.Tree, *req.Bound)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	resp := NextLargerResponse{Found: found}
	if found {
		resp.Value = &value
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCousins handles POST /v1/trees/:id/cousins.
//
// Request Body:
//
//	PairRequest
//
// Response:
//
//	200 OK: CousinsResponse
//	400 Bad Request: Invalid path
//	404 Not Found: Unknown tree
func (h *Handlers) HandleCousins(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleCousins")

	entry, ok := h.lookup(c, logger)
	if !ok {
		return
	}

	var req PairRequest
	if !bindRequest(c, logger, &req) {
		return
	}

	cousins, err := h.svc.Cousins(c.Request.Context(), entry.Tree, *req.A, *req.B)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, CousinsResponse{Cousins: cousins})
}

// HandleLCA handles POST /v1/trees/:id/lca.
//
// Request Body:
//
//	PairRequest
//
// Response:
//
//	200 OK: AncestorResult
//	400 Bad Request: Invalid path
//	404 Not Found: Unknown tree, or a path that leads off the tree
func (h *Handlers) HandleLCA(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleLCA")

	entry, ok := h.lookup(c, logger)
	if !ok {
		return
	}

	var req PairRequest
	if !bindRequest(c, logger, &req) {
		return
	}

	result, err := h.svc.LCA(c.Request.Context(), entry.Tree, *req.A, *req.B)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Version:     ServiceVersion,
		CachedTrees: h.svc.Count(),
	})
}

// HandleReady handles GET /v1/ready.
func (h *Handlers) HandleReady(c *gin.Context) {
	status, code := "ready", http.StatusOK
	if !h.ready() {
		status, code = "draining", http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{
		Status:      status,
		Version:     ServiceVersion,
		CachedTrees: h.svc.Count(),
	})
}

// =============================================================================
// Helpers
// =============================================================================

type validatable interface {
	Validate() error
}

// bindRequest decodes and validates the body. On failure it writes the
// error response and returns false.
func bindRequest(c *gin.Context, logger *slog.Logger, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			logger.Warn("Request body too large", "limit", tooLarge.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: "Request body too large",
				Code:  "BODY_TOO_LARGE",
			})
		case errors.Is(err, bintree.ErrMalformedInput):
			logger.Warn("Malformed tree", "error", err)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Malformed tree encoding",
				Code:    "MALFORMED_TREE",
				Details: err.Error(),
			})
		default:
			logger.Warn("Invalid request body", "error", err)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Invalid request body",
				Code:  "INVALID_REQUEST",
			})
		}
		return false
	}

	if err := req.Validate(); err != nil {
		writeError(c, logger, err)
		return false
	}
	return true
}

// lookup fetches the tree named by the :id parameter.
func (h *Handlers) lookup(c *gin.Context, logger *slog.Logger) (*CachedTree, bool) {
	entry, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeError(c, logger, err)
		return nil, false
	}
	return entry, true
}

// writeError maps a service error to its status and code.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	errCode := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, ErrTreeNotFound):
		statusCode, errCode = http.StatusNotFound, "TREE_NOT_FOUND"
	case errors.Is(err, bintree.ErrNodeNotInTree):
		statusCode, errCode = http.StatusNotFound, "NODE_NOT_FOUND"
	case errors.Is(err, bintree.ErrInvalidPath):
		statusCode, errCode = http.StatusBadRequest, "INVALID_PATH"
	case errors.Is(err, bintree.ErrMalformedInput):
		statusCode, errCode = http.StatusBadRequest, "MALFORMED_TREE"
	case errors.Is(err, ErrTreeTooLarge):
		statusCode, errCode = http.StatusRequestEntityTooLarge, "TREE_TOO_LARGE"
	case errors.Is(err, ErrInvalidRequest):
		statusCode, errCode = http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, context.DeadlineExceeded):
		statusCode, errCode = http.StatusGatewayTimeout, "TIMEOUT"
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Warn("Request rejected", "error", err, "code", errCode)
	}
	c.JSON(statusCode, ErrorResponse{
		Error: err.Error(),
		Code:  errCode,
	})
}

// getOrCreateRequestID returns the X-Request-ID header or a new UUID, and
// echoes it on the response.
func getOrCreateRequestID(c *gin.Context) string {
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	c.Set(requestIDKey, requestID)
	return requestID
}
