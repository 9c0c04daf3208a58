// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr defines the core errors which are reported to the end
// users. Each Error carries a stable Code (which clients may switch on)
// and the HTTP status code which the REST adapters should respond with.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
	Code           Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf(
		"[%d %s] %s", e.HTTPStatusCode, e.Code, e.Err.Error(),
	)
}

// Is reports if target is an *Error with the same Code, so callers
// may use errors.Is(err, cerr.Conflict(cerr.SlotOccupied, nil)) or
// more conveniently the CodeOf function.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func BadRequest(code Code, err error) *Error {
	return newError(code, http.StatusBadRequest, err)
}

func Authentication(code Code, err error) *Error {
	return newError(code, http.StatusUnauthorized, err)
}

func Authorization(code Code, err error) *Error {
	return newError(code, http.StatusForbidden, err)
}

func NotFound(code Code, err error) *Error {
	return newError(code, http.StatusNotFound, err)
}

func Conflict(code Code, err error) *Error {
	return newError(code, http.StatusConflict, err)
}

func newError(code Code, status int, err error) *Error {
	if err == nil {
		err = errors.New(code.Message())
	}
	return &Error{Err: err, HTTPStatusCode: status, Code: code}
}

// CodeOf returns the Code of the first *Error in the err chain, or an
// empty Code if err does not wrap any *Error.
func CodeOf(err error) Code {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
