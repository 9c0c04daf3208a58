// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// OutOfRangeError reports a setting which was clamped to one of its
// Min or Max boundaries. Value holds the original value.
type OutOfRangeError[T cmp.Ordered] struct {
	Value        *T
	Min, Max     *T
	LessThanMin  bool
	InvalidRange bool // min boundary is greater than the max one
}

func (e *OutOfRangeError[T]) Error() string {
	switch {
	case e.InvalidRange:
		return fmt.Sprintf("min %v is greater than max %v", *e.Min, *e.Max)
	case e.LessThanMin:
		return fmt.Sprintf("%v is less than min %v", *e.Value, *e.Min)
	default:
		return fmt.Sprintf("%v is greater than max %v", *e.Value, *e.Max)
	}
}

// VerifyRange checks that (*value) lies in the [minb, maxb] range,
// where a nil boundary is not enforced and a nil (*value) is always
// accepted. An out of range value is clamped to the violated boundary
// and reported by the returned error.
func VerifyRange[T cmp.Ordered](
	value **T, minb, maxb *T,
) *OutOfRangeError[T] {
	if minb != nil && maxb != nil && (*minb) > (*maxb) {
		return &OutOfRangeError[T]{
			Min: minb, Max: maxb, InvalidRange: true,
		}
	}
	if (*value) == nil {
		return nil
	}
	v := **value
	switch {
	case minb != nil && v < *minb:
		**value = *minb
		return &OutOfRangeError[T]{
			Value: &v, Min: minb, Max: maxb, LessThanMin: true,
		}
	case maxb != nil && v > *maxb:
		**value = *maxb
		return &OutOfRangeError[T]{Value: &v, Min: minb, Max: maxb}
	}
	return nil
}
