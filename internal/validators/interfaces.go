// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks tag and document requests before they reach
// the services: required fields, non-negative offsets and start < end.
//
// Checks that need the document text or the database (span mismatch,
// duplicate positions) stay in the service layer.
package validators

import "context"

// Validator validates a request value. Optional field names restrict the
// check to those fields; none means all of them.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
