// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the (de)serialization helpers which are
// shared by the resource packages. Errors are rendered as JSON objects
// having a machine-readable code and a human-readable detail.
package serdser

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/core/cerr"
)

// Bind binds the request into req using the b binding. On failure, an
// INVALID_REQUEST error is rendered and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return renderBindErr(c, c.ShouldBindWith(req, b))
}

// BindOptional is like Bind, but an empty request body (even with an
// unknown length, as for chunked requests) leaves req unchanged and
// is accepted.
func BindOptional(c *gin.Context, req any, b binding.Binding) bool {
	if c.Request.ContentLength == 0 || c.Request.Body == nil ||
		c.Request.Body == http.NoBody {
		return true
	}
	err := c.ShouldBindWith(req, b)
	if errors.Is(err, io.EOF) {
		return true
	}
	return renderBindErr(c, err)
}

func renderBindErr(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   cerr.InvalidRequest,
			"detail": cerr.InvalidRequest.Message(),
			"fields": nameToErrs,
		})
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   cerr.InvalidRequest,
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// ParamUUID parses the name path parameter as a UUID. On failure, an
// INVALID_REQUEST error is rendered and false is returned.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		var errs map[string][]string
		AddErr(&errs, name, "Path param "+name+" is not UUID.")
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   cerr.InvalidRequest,
			"detail": cerr.InvalidRequest.Message(),
			"fields": errs,
		})
		return uuid.Nil, false
	}
	return id, true
}

// SerErr renders err. A *cerr.Error is rendered with its status and
// code, while other errors are reported as internal server errors.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"code":   ce.Code,
			"detail": ce.Err.Error(),
		})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": err.Error(),
	})
}
