// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momeni/slotkeeper/pkg/adapter/config"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadFull(t *testing.T) {
	c, err := config.Load("testdata/full.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Database{
		Host:    "127.0.0.1",
		Port:    5432,
		Name:    "skweb",
		Role:    repo.NormalRole,
		PassDir: "/var/lib/skweb/db",
	}, c.Database)
	assert.True(t, *c.Gin.Logger)
	assert.True(t, *c.Gin.Recovery)
	assert.True(t, *c.Gin.Release)
	assert.Equal(t, ":8080", c.Gin.Address)
	assert.Equal(t, 15*time.Second, c.Gin.Timeout())
	require.NotNil(t, c.Usecases.Slots.DefaultVehicleType)
	assert.Equal(t, model.VehicleTypeCar, *c.Usecases.Slots.DefaultVehicleType)
	require.NotNil(t, c.Usecases.Slots.PlatePattern)
	assert.Len(t, c.Usecases.Slots.Options(), 2)
	assert.False(t, c.Telemetry.Enabled)
	assert.Equal(t, "localhost:4318", c.Telemetry.Endpoint)
	assert.Equal(t, model.SemVer{1, 0, 0}, c.Vers.Versions.Config)
}

func TestLoadMinimalUsesDefaults(t *testing.T) {
	c, err := config.Load("testdata/minimal.yaml")
	require.NoError(t, err)
	assert.Equal(t, repo.NormalRole, c.Database.Role)
	assert.False(t, *c.Gin.Logger)
	assert.False(t, *c.Gin.Recovery)
	assert.False(t, *c.Gin.Release)
	assert.Equal(t, config.DefaultAddress, c.Gin.Address)
	assert.Equal(t, config.DefaultShutdownTimeout, c.Gin.Timeout())
	assert.Empty(t, c.Usecases.Slots.Options())
	assert.Equal(t, config.DefaultServiceName, c.Telemetry.ServiceName)
}

func TestParseRejectsInvalidConfigs(t *testing.T) {
	const db = `
database:
    host: h
    port: 5432
    name: n
`
	cases := map[string]string{
		"newer minor": db + `
versions:
    database: 1.0.0
    config: 1.3.0
`,
		"other major": db + `
versions:
    database: 1.0.0
    config: 2.0.0
`,
		"missing host": `
database:
    port: 5432
    name: n
versions:
    database: 1.0.0
    config: 1.0.0
`,
		"bad pattern": db + `
usecases:
    slots:
        plate-pattern: "[A-Z"
versions:
    database: 1.0.0
    config: 1.0.0
`,
		"unknown vehicle type": db + `
usecases:
    slots:
        default-vehicle-type: spaceship
versions:
    database: 1.0.0
    config: 1.0.0
`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestParseRejectsOtherSchemaVersion(t *testing.T) {
	_, err := config.Parse([]byte(`
database:
    host: h
    port: 5432
    name: n
versions:
    database: 0.9.0
    config: 1.0.0
`))
	var msve *cerr.MismatchingSemVerError
	require.ErrorAs(t, err, &msve)
	assert.Equal(t, model.SemVer{0, 9, 0}, msve[1])
}

func TestShutdownTimeoutIsClamped(t *testing.T) {
	_, err := config.Parse([]byte(`
database:
    host: h
    port: 5432
    name: n
gin:
    shutdown-timeout: 1h
versions:
    database: 1.0.0
    config: 1.0.0
`))
	require.ErrorContains(t, err, "shutdown-timeout: 1h0m0s is greater than max 5m0s")
}

func TestConnectionURL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pgpass"), []byte(
		"# comment\n"+
			"h:5432:n:other:wrong\n"+
			"h:5432:n:skweb:s3cret\n",
	), 0o600))
	d := config.Database{Host: "h", Port: 5432, Name: "n", PassDir: dir}
	require.NoError(t, d.ValidateAndNormalize())

	t.Setenv(config.PasswordEnv, "")
	u, err := d.ConnectionURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://skweb:s3cret@h:5432/n", u)

	t.Setenv(config.PasswordEnv, "from-env")
	u, err = d.ConnectionURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://skweb:from-env@h:5432/n", u)

	t.Setenv(config.PasswordEnv, "")
	d.Role = "missing"
	_, err = d.ConnectionURL()
	require.Error(t, err)
}

func TestMarshalYAML(t *testing.T) {
	c, err := config.Load("testdata/full.yaml")
	require.NoError(t, err)
	b, err := yaml.Marshal(c)
	require.NoError(t, err)
	c2, err := config.Parse(b)
	require.NoError(t, err)
	assert.Equal(t, c, c2)

	var m map[string]any
	require.NoError(t, yaml.Unmarshal(b, &m))
	gin, ok := m["gin"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "15s", gin["shutdown-timeout"])
}
