// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import "github.com/momeni/slotkeeper/pkg/adapter/telemetry"

// DefaultServiceName is reported to the telemetry collector when no
// service name is configured.
const DefaultServiceName = "skweb"

// Telemetry contains the OpenTelemetry exporting settings.
// The OTLP HTTP exporters also consult the standard OTEL_EXPORTER_OTLP
// environment variables, so Endpoint may be left empty.
type Telemetry struct {
	Enabled     bool
	ServiceName string `yaml:"service-name,omitempty"`
	Endpoint    string `yaml:",omitempty"` // host:port of the collector
	Insecure    bool   `yaml:",omitempty"` // use HTTP instead of HTTPS
}

func (t *Telemetry) Normalize() {
	if t.ServiceName == "" {
		t.ServiceName = DefaultServiceName
	}
}

// Settings converts t to the telemetry package settings.
func (t Telemetry) Settings(version string) telemetry.Settings {
	return telemetry.Settings{
		ServiceName:    t.ServiceName,
		ServiceVersion: version,
		Endpoint:       t.Endpoint,
		Insecure:       t.Insecure,
	}
}
