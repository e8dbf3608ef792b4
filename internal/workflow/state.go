// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow implements the content item state machine, the action
// recommendation table, the review checkpoint policy, and the concurrent
// item registry. See docs/ARCHITECTURE.md § Workflow.
package workflow

import (
	"fmt"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// transitions is the complete legal edge set. AWAITING_REVIEW is the only
// state with two outgoing edges, and both require a human decision;
// FEEDBACK_RECEIVED → DRAFT_GENERATED is the single loop-back edge.
// PUBLISHED is terminal.
var transitions = map[types.WorkflowState][]types.WorkflowState{
	types.StateTopicSelected:    {types.StateResearchComplete},
	types.StateResearchComplete: {types.StateOutlineCreated},
	types.StateOutlineCreated:   {types.StateDraftGenerated},
	types.StateDraftGenerated:   {types.StateAwaitingReview},
	types.StateAwaitingReview:   {types.StateDraftApproved, types.StateFeedbackReceived},
	types.StateFeedbackReceived: {types.StateDraftGenerated},
	types.StateDraftApproved:    {types.StateImagesAdded},
	types.StateImagesAdded:      {types.StatePostCreated},
	types.StatePostCreated:      {types.StatePublished},
	types.StatePublished:        nil,
}

// happyPath is the canonical ordinal sequence, used for the predicate-set
// view. FEEDBACK_RECEIVED and PUBLISHED sit outside it and are handled as
// special cases in Predicates.
var happyPath = []types.WorkflowState{
	types.StateTopicSelected,
	types.StateResearchComplete,
	types.StateOutlineCreated,
	types.StateDraftGenerated,
	types.StateAwaitingReview,
	types.StateDraftApproved,
	types.StateImagesAdded,
	types.StatePostCreated,
}

// statePredicates maps each state to the fact it establishes.
var statePredicates = map[types.WorkflowState]string{
	types.StateTopicSelected:    "topic_selected",
	types.StateResearchComplete: "research_complete",
	types.StateOutlineCreated:   "outline_created",
	types.StateDraftGenerated:   "draft_generated",
	types.StateAwaitingReview:   "awaiting_review",
	types.StateDraftApproved:    "draft_approved",
	types.StateFeedbackReceived: "feedback_received",
	types.StateImagesAdded:      "images_added",
	types.StatePostCreated:      "post_created",
	types.StatePublished:        "post_published",
}

// KnownState reports whether s is one of the pipeline states.
func KnownState(s types.WorkflowState) bool {
	_, ok := statePredicates[s]
	return ok
}

// CanTransition reports whether from → to is a legal edge. Any pair not in
// the edge set is illegal, including self-transitions.
func CanTransition(from, to types.WorkflowState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of the item advanced to the target state, or
// ErrIllegalTransition when the edge does not exist. The input item is
// never modified.
func Transition(item types.ContentItem, to types.WorkflowState) (types.ContentItem, error) {
	if !CanTransition(item.State, to) {
		return item, fmt.Errorf("%w: %s → %s", ErrIllegalTransition, item.State, to)
	}
	return item.WithState(to), nil
}

// Terminal reports whether s has no outgoing edges.
func Terminal(s types.WorkflowState) bool {
	return KnownState(s) && len(transitions[s]) == 0
}

// Predicates returns the set of facts achieved at or before the given
// state. Facts accumulate monotonically along the happy path;
// FEEDBACK_RECEIVED carries everything up to the checkpoint plus its own
// fact, and PUBLISHED contributes only its terminal fact since it may be
// reached after any number of revision loops.
func Predicates(s types.WorkflowState) map[string]bool {
	set := make(map[string]bool)
	if !KnownState(s) {
		return set
	}
	switch s {
	case types.StatePublished:
		set[statePredicates[s]] = true
		return set
	case types.StateFeedbackReceived:
		for _, hs := range happyPath {
			set[statePredicates[hs]] = true
			if hs == types.StateAwaitingReview {
				break
			}
		}
		set[statePredicates[s]] = true
		return set
	}
	for _, hs := range happyPath {
		set[statePredicates[hs]] = true
		if hs == s {
			break
		}
	}
	return set
}
