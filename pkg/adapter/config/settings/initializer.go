// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Nil2Zero points a nil (*t) to a new zero T, so optional settings
// like the gin logger flag read as false when they are omitted.
// A non-nil (*t) is kept as is.
func Nil2Zero[T any](t **T) {
	if (*t) == nil {
		(*t) = new(T)
	}
}

// OverwriteNil points a nil (*dst) to a copy of (*src), filling an
// omitted setting by its default value. Nothing is changed if (*dst)
// is already set or no default (nil src) is given.
func OverwriteNil[T any](dst **T, src *T) {
	if (*dst) != nil || src == nil {
		return
	}
	t := *src
	(*dst) = &t
}
