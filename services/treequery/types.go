// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package treequery

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AleutianAI/bintree/pkg/bintree"
	"github.com/go-playground/validator/v10"
)

// validate checks request bodies. "lrpath" accepts path strings made only
// of 'L' and 'R' steps.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("lrpath", func(fl validator.FieldLevel) bool {
		return bintree.ValidPath(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("treequery: register lrpath validation: %v", err))
	}
	return v
}

// =============================================================================
// Requests
// =============================================================================

// TreeRequest carries a tree in pre-order encoding.
type TreeRequest struct {
	// Tree is the encoded tree, e.g. [1,2,null,null,3,null,null].
	Tree *Tree `json:"tree" validate:"required"`
}

// Validate checks the request fields.
func (r *TreeRequest) Validate() error {
	return validateStruct(r)
}

// NextLargerRequest asks for the smallest value above Bound.
type NextLargerRequest struct {
	// Bound is the exclusive lower bound. Required; 0 is a valid bound.
	Bound *float64 `json:"bound" validate:"required"`
}

// Validate checks the request fields.
func (r *NextLargerRequest) Validate() error {
	return validateStruct(r)
}

// PairRequest names two nodes by path from the root. "" is the root.
type PairRequest struct {
	A *string `json:"a" validate:"required,lrpath"`
	B *string `json:"b" validate:"required,lrpath"`
}

// Validate checks the request fields.
func (r *PairRequest) Validate() error {
	return validateStruct(r)
}

// validateStruct runs the validator. A failed lrpath check reports
// bintree.ErrInvalidPath; anything else reports ErrInvalidRequest.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Tag() == "lrpath" {
				return fmt.Errorf("%s: %w", fe.Field(), bintree.ErrInvalidPath)
			}
		}
	}
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

// =============================================================================
// Responses
// =============================================================================

// StoreResponse is returned by POST /v1/trees.
type StoreResponse struct {
	TreeID string `json:"tree_id"`
	Size   int    `json:"size"`
}

// TreeResponse is returned by GET /v1/trees/:id.
type TreeResponse struct {
	TreeID string          `json:"tree_id"`
	Size   int             `json:"size"`
	Tree   json.RawMessage `json:"tree"`
}

// NextLargerResponse is returned by POST /v1/trees/:id/next-larger.
// Value is null when Found is false.
type NextLargerResponse struct {
	Value *float64 `json:"value"`
	Found bool     `json:"found"`
}

// CousinsResponse is returned by POST /v1/trees/:id/cousins.
type CousinsResponse struct {
	Cousins bool `json:"cousins"`
}

// HealthResponse is returned by the health and readiness endpoints.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	CachedTrees int    `json:"cached_trees"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the machine readable error code.
	Code string `json:"code,omitempty"`

	// Details provides additional error context (optional).
	Details string `json:"details,omitempty"`
}
