// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry initializes OpenTelemetry tracing and metrics for the
// bintree query service.
//
// OTel is used directly; backends are chosen by exporter name, not by code:
//
//   - traces: "otlp" (gRPC), "stdout", or "none"
//   - metrics: "prometheus" (scraped at /metrics), "stdout", or "none"
//
// # Usage
//
//	shutdown, err := telemetry.Init(ctx, cfg)
//	if err != nil {
//	    return fmt.Errorf("init telemetry: %w", err)
//	}
//	defer shutdown(context.Background())
//
// Query metrics registered through promauto on the default Prometheus
// registry are served by MetricsHandler alongside the OTel exporter's.
//
// # Thread Safety
//
// All exported functions are safe for concurrent use after Init returns.
package telemetry
