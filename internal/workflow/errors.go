// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import "errors"

// Sentinel errors for workflow and policy violations. These are caller
// errors, never retried; collaborator failures are wrapped separately by
// the stage that observed them.
var (
	// ErrNotFound reports an unknown item or session identifier.
	ErrNotFound = errors.New("item not found")

	// ErrIllegalTransition reports an operation attempted from a state
	// that does not permit it.
	ErrIllegalTransition = errors.New("illegal state transition")

	// ErrRevisionBudgetExhausted reports feedback submitted after the
	// configured revision cap.
	ErrRevisionBudgetExhausted = errors.New("revision budget exhausted")

	// ErrMissingConfiguration reports an item with no resolvable blog ID
	// where one is required.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrMissingPrecondition reports a publish or update attempted before
	// the remote post exists.
	ErrMissingPrecondition = errors.New("missing precondition")
)
