// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer is a major.minor.patch semantic version. The YAML config file
// and the database schema are versioned with it, so skweb refuses to
// run against a config (or schema) which it does not understand.
type SemVer [3]uint

// UnmarshalText parses one to three dot-separated non-negative numbers,
// like "1", "1.2", or "1.2.3", where the missing components are zero.
// On errors, sv is left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ".")
	if len(parts) > len(sv) {
		return fmt.Errorf("the %q has wrong number of components", text)
	}
	var v SemVer
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 0)
		if err != nil {
			return fmt.Errorf("the %q component is not a valid number", p)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// Marshal returns the string form of sv for the YAML Marshalled view
// of the config.
func (sv *SemVer) Marshal() string {
	return sv.String()
}

func (sv *SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}
