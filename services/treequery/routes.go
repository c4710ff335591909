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
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RegisterRoutes registers all tree query routes with the router.
//
// Description:
//
//	Registers the /v1 endpoints with the given Gin router group. The group
//	should already have any required middleware applied.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Endpoints:
//
//	POST   /v1/trees                  - Store a tree
//	GET    /v1/trees/:id              - Fetch a stored tree
//	DELETE /v1/trees/:id              - Drop a stored tree
//	POST   /v1/trees/:id/analyze      - Depths, best path sum, encoding
//	POST   /v1/trees/:id/next-larger  - Smallest value above a bound
//	POST   /v1/trees/:id/cousins      - Cousin test for two paths
//	POST   /v1/trees/:id/lca          - Lowest common ancestor of two paths
//	POST   /v1/analyze                - Analyze a tree without storing it
//	GET    /v1/health                 - Liveness
//	GET    /v1/ready                  - Readiness
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	trees := rg.Group("/trees")
	{
		trees.POST("", handlers.HandleStore)
		trees.GET("/:id", handlers.HandleGet)
		trees.DELETE("/:id", handlers.HandleDelete)
		trees.POST("/:id/analyze", handlers.HandleAnalyze)
		trees.POST("/:id/next-larger", handlers.HandleNextLarger)
		trees.POST("/:id/cousins", handlers.HandleCousins)
		trees.POST("/:id/lca", handlers.HandleLCA)
	}

	rg.POST("/analyze", handlers.HandleAnalyzeInline)
	rg.GET("/health", handlers.HandleHealth)
	rg.GET("/ready", handlers.HandleReady)
}

// RouterConfig configures the middleware stack built by NewRouter.
type RouterConfig struct {
	// ServiceName names the server in otelgin spans.
	ServiceName string

	// RateLimit is the sustained request rate. 0 disables limiting.
	RateLimit float64
	RateBurst int

	// MaxBodyBytes caps request bodies. 0 disables the cap.
	MaxBodyBytes int64

	// RequestTimeout bounds each request. 0 disables the bound.
	RequestTimeout time.Duration

	// Metrics serves GET /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter builds the gin engine with the full middleware stack and all
// routes registered.
//
// Middleware order: recovery, tracing, request ID, logging, rate limit,
// body limit, timeout. /metrics sits outside the rate limit.
func NewRouter(cfg RouterConfig, handlers *Handlers) *gin.Engine {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "bintree"
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(RequestID(), RequestLogger())

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	v1 := router.Group("/v1")
	v1.Use(RateLimit(cfg.RateLimit, cfg.RateBurst), BodyLimit(cfg.MaxBodyBytes), Timeout(cfg.RequestTimeout))
	RegisterRoutes(v1, handlers)

	return router
}
