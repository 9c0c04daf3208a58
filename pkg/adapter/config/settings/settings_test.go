// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/momeni/slotkeeper/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNil2Zero(t *testing.T) {
	var b *bool
	settings.Nil2Zero(&b)
	require.NotNil(t, b)
	assert.False(t, *b)

	yes := true
	b = &yes
	settings.Nil2Zero(&b)
	assert.Same(t, &yes, b)
}

func TestOverwriteNil(t *testing.T) {
	def := 8080
	var port *int
	settings.OverwriteNil(&port, &def)
	require.NotNil(t, port)
	assert.Equal(t, 8080, *port)
	assert.NotSame(t, &def, port)

	other := 9090
	settings.OverwriteNil(&port, &other)
	assert.Equal(t, 8080, *port)

	port = nil
	settings.OverwriteNil(&port, nil)
	assert.Nil(t, port)
}

func TestVerifyRange(t *testing.T) {
	minb := settings.Duration(time.Second)
	maxb := settings.Duration(time.Minute)

	var unset *settings.Duration
	assert.Nil(t, settings.VerifyRange(&unset, &minb, &maxb))

	d := settings.Duration(30 * time.Second)
	v := &d
	assert.Nil(t, settings.VerifyRange(&v, &minb, &maxb))
	assert.Equal(t, settings.Duration(30*time.Second), *v)

	d = settings.Duration(time.Hour)
	err := settings.VerifyRange(&v, &minb, &maxb)
	require.NotNil(t, err)
	assert.False(t, err.LessThanMin)
	assert.Equal(t, settings.Duration(time.Hour), *err.Value)
	assert.Equal(t, maxb, *v)
	assert.EqualError(t, err, "1h0m0s is greater than max 1m0s")

	d = settings.Duration(time.Millisecond)
	err = settings.VerifyRange(&v, &minb, &maxb)
	require.NotNil(t, err)
	assert.True(t, err.LessThanMin)
	assert.Equal(t, minb, *v)
	assert.EqualError(t, err, "1ms is less than min 1s")

	err = settings.VerifyRange(&v, &maxb, &minb)
	require.NotNil(t, err)
	assert.True(t, err.InvalidRange)
	assert.EqualError(t, err, "min 1m0s is greater than max 1s")

	n := 7
	p := &n
	assert.Nil(t, settings.VerifyRange(&p, nil, nil))
}

func TestDurationMarshal(t *testing.T) {
	for d, expected := range map[time.Duration]string{
		0:                       "0s",
		15 * time.Second:        "15s",
		2 * time.Minute:         "2m",
		3 * time.Hour:           "3h",
		time.Hour + time.Second: "1h0m1s",
	} {
		sd := settings.Duration(d)
		assert.Equal(t, expected, *sd.Marshal(), "marshalling %s", d)
	}
	var nilDur *settings.Duration
	assert.Nil(t, nilDur.Marshal())
}
