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
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Set Gin to test mode to reduce noise
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(svc *Service) *gin.Engine {
	router := gin.New()
	handlers := NewHandlers(svc)
	v1 := router.Group("/v1")
	RegisterRoutes(v1, handlers)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// storeTree posts a tree and returns its ID.
func storeTree(t *testing.T, router http.Handler, encoded string) string {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/v1/trees", `{"tree":`+encoded+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[StoreResponse](t, w).TreeID
}

func TestHandlers_HandleHealth(t *testing.T) {
	router := setupTestRouter(NewService(DefaultServiceConfig()))

	w := doRequest(t, router, http.MethodGet, "/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, ServiceVersion, resp.Version)
}

func TestHandlers_HandleReady(t *testing.T) {
	svc := NewService(DefaultServiceConfig())
	draining := false

	router := gin.New()
	RegisterRoutes(router.Group("/v1"), NewHandlers(svc).WithReadiness(func() bool { return !draining }))

	w := doRequest(t, router, http.MethodGet, "/v1/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", decode[HealthResponse](t, w).Status)

	draining = true
	w = doRequest(t, router, http.MethodGet, "/v1/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "draining", decode[HealthResponse](t, w).Status)
}

func TestHandlers_TreeLifecycle(t *testing.T) {
	svc := NewService(DefaultServiceConfig())
	router := setupTestRouter(svc)

	id := storeTree(t, router, exampleEncoded)
	assert.Equal(t, 1, svc.Count())

	w := doRequest(t, router, http.MethodGet, "/v1/trees/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[TreeResponse](t, w)
	assert.Equal(t, id, got.TreeID)
	assert.Equal(t, 5, got.Size)
	assert.JSONEq(t, exampleEncoded, string(got.Tree))

	w = doRequest(t, router, http.MethodDelete, "/v1/trees/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/v1/trees/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TREE_NOT_FOUND", decode[ErrorResponse](t, w).Code)

	w = doRequest(t, router, http.MethodDelete, "/v1/trees/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_Queries(t *testing.T) {
	router := setupTestRouter(NewService(DefaultServiceConfig()))
	example := storeTree(t, router, exampleEncoded)
	perfect := storeTree(t, router, perfectEncoded)

	t.Run("analyze", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/analyze", "")
		require.Equal(t, http.StatusOK, w.Code)
		report := decode[Report](t, w)
		assert.Equal(t, 2, report.MinDepth)
		assert.Equal(t, 3, report.MaxDepth)
		assert.Equal(t, 47.0, report.MaxSum)
		assert.Equal(t, exampleEncoded, report.Encoded)
	})

	t.Run("next larger found", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/next-larger", `{"bound":9}`)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[NextLargerResponse](t, w)
		require.True(t, resp.Found)
		require.NotNil(t, resp.Value)
		assert.Equal(t, 15.0, *resp.Value)
	})

	t.Run("next larger zero bound", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/next-larger", `{"bound":0}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3.0, *decode[NextLargerResponse](t, w).Value)
	})

	t.Run("next larger absent", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/next-larger", `{"bound":20}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"value":null,"found":false}`, w.Body.String())
	})

	t.Run("next larger missing bound", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/next-larger", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", decode[ErrorResponse](t, w).Code)
	})

	t.Run("cousins", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+perfect+"/cousins", `{"a":"LL","b":"RL"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[CousinsResponse](t, w).Cousins)

		w = doRequest(t, router, http.MethodPost, "/v1/trees/"+perfect+"/cousins", `{"a":"LL","b":"LR"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decode[CousinsResponse](t, w).Cousins)
	})

	t.Run("cousins invalid path", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+perfect+"/cousins", `{"a":"LX","b":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_PATH", decode[ErrorResponse](t, w).Code)
	})

	t.Run("lca", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/lca", `{"a":"RL","b":"RR"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, AncestorResult{Path: "R", Value: 20}, decode[AncestorResult](t, w))
	})

	t.Run("lca root path", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/lca", `{"a":"","b":"RR"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, AncestorResult{Path: "", Value: 3}, decode[AncestorResult](t, w))
	})

	t.Run("lca missing node", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/lca", `{"a":"LL","b":"R"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NODE_NOT_FOUND", decode[ErrorResponse](t, w).Code)
	})

	t.Run("lca missing field", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/"+example+"/lca", `{"a":"L"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", decode[ErrorResponse](t, w).Code)
	})

	t.Run("unknown tree", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/v1/trees/nope/analyze", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandlers_HandleAnalyzeInline(t *testing.T) {
	svc := NewService(DefaultServiceConfig())
	router := setupTestRouter(svc)

	w := doRequest(t, router, http.MethodPost, "/v1/analyze", `{"tree":[5,null,null]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Report{Size: 1, MinDepth: 1, MaxDepth: 1, MaxSum: 5, Encoded: "[5,null,null]"}, decode[Report](t, w))
	assert.Equal(t, 0, svc.Count(), "inline analysis must not cache")
}

func TestHandlers_BadTrees(t *testing.T) {
	router := setupTestRouter(NewService(ServiceConfig{MaxNodes: 3}))

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{name: "exhausted sequence", body: `{"tree":[1,2]}`, status: http.StatusBadRequest, code: "MALFORMED_TREE"},
		{name: "trailing tokens", body: `{"tree":[1,null,null,4]}`, status: http.StatusBadRequest, code: "MALFORMED_TREE"},
		{name: "not an array", body: `{"tree":{"v":1}}`, status: http.StatusBadRequest, code: "MALFORMED_TREE"},
		{name: "string token", body: `{"tree":["a",null,null]}`, status: http.StatusBadRequest, code: "MALFORMED_TREE"},
		{name: "missing tree", body: `{}`, status: http.StatusBadRequest, code: "INVALID_REQUEST"},
		{name: "null tree", body: `{"tree":null}`, status: http.StatusBadRequest, code: "INVALID_REQUEST"},
		{name: "not json", body: `tree`, status: http.StatusBadRequest, code: "INVALID_REQUEST"},
		{name: "over node limit", body: `{"tree":` + exampleEncoded + `}`, status: http.StatusRequestEntityTooLarge, code: "TREE_TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/v1/trees", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[ErrorResponse](t, w).Code)
		})
	}
}

func TestNewRouter_BodyLimit(t *testing.T) {
	router := NewRouter(RouterConfig{MaxBodyBytes: 16}, NewHandlers(NewService(DefaultServiceConfig())))

	w := doRequest(t, router, http.MethodPost, "/v1/analyze", `{"tree":`+exampleEncoded+`}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "BODY_TOO_LARGE", decode[ErrorResponse](t, w).Code)
}

func TestNewRouter_RateLimit(t *testing.T) {
	router := NewRouter(RouterConfig{RateLimit: 0.001, RateBurst: 1}, NewHandlers(NewService(DefaultServiceConfig())))

	w := doRequest(t, router, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decode[ErrorResponse](t, w).Code)
}

func TestNewRouter_RequestID(t *testing.T) {
	router := NewRouter(RouterConfig{}, NewHandlers(NewService(DefaultServiceConfig())))

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = doRequest(t, router, http.MethodGet, "/v1/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewRouter_Metrics(t *testing.T) {
	router := NewRouter(RouterConfig{Metrics: promhttp.Handler()}, NewHandlers(NewService(DefaultServiceConfig())))

	w := doRequest(t, router, http.MethodPost, "/v1/analyze", `{"tree":[1,null,null]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `bintree_queries_total{op="analyze",result="success"}`), body)
	assert.Contains(t, body, "bintree_query_duration_seconds")
}

func TestTimeout(t *testing.T) {
	router := gin.New()
	router.Use(Timeout(10 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
		writeError(c, slog.Default(), c.Request.Context().Err())
	})

	w := doRequest(t, router, http.MethodGet, "/slow", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "TIMEOUT", decode[ErrorResponse](t, w).Code)
}
