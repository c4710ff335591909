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
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// requestIDKey is the gin context key holding the request ID.
const requestIDKey = "request_id"

// RequestID assigns every request an ID, taken from X-Request-ID when the
// client sends one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		getOrCreateRequestID(c)
		c.Next()
	}
}

// RequestLogger logs one line per request at debug level, or at warn level
// for 5xx responses.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "Request completed",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// RateLimit rejects requests beyond limit per second with 429.
//
// Description:
//
//	One token bucket is shared by all clients. A limit of 0 disables the
//	middleware.
//
// Inputs:
//
//	limit - Sustained requests per second.
//	burst - Bucket size. Values below 1 are raised to 1.
func RateLimit(limit float64, burst int) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "Rate limit exceeded",
				Code:  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}

// BodyLimit caps request bodies at maxBytes. 0 disables the cap.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// Timeout bounds the request context. Queries check the context before
// they start, so an expired request fails with 504.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
