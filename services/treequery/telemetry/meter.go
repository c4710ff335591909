// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Meter returns the bintree meter from the global MeterProvider.
//
// Instruments created before Init are forwarded to the provider Init
// installs, so packages may create them at init time.
func Meter() metric.Meter {
	return otel.Meter(TracerName)
}

// Int64Counter creates a counter on Meter, falling back to a no-op counter
// if the provider rejects the instrument.
func Int64Counter(name string, opts ...metric.Int64CounterOption) metric.Int64Counter {
	counter, err := Meter().Int64Counter(name, opts...)
	if err != nil {
		return noop.Int64Counter{}
	}
	return counter
}
