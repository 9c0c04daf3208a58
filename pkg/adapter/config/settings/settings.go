// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers which are used while
// validating and normalizing the configuration settings, such as
// filling the missing (nil) settings by their defaults and clamping
// the out of range values.
package settings
