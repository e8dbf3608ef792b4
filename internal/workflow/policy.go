// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"fmt"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// DefaultMaxRevisions caps feedback/revise cycles when no limit is configured.
const DefaultMaxRevisions = 3

// ReviewPolicy enforces the human review checkpoint: an item entering
// AWAITING_REVIEW halts until a human approves or supplies feedback, and
// feedback is refused once the revision budget is spent.
type ReviewPolicy struct {
	// MaxRevisions is the feedback cap per item. Zero or negative falls
	// back to DefaultMaxRevisions.
	MaxRevisions int
}

func (p ReviewPolicy) maxRevisions() int {
	if p.MaxRevisions <= 0 {
		return DefaultMaxRevisions
	}
	return p.MaxRevisions
}

// Approve moves an item from the review checkpoint to DRAFT_APPROVED.
// Approving from any other state is an illegal transition; the input item
// is returned unchanged alongside the error.
func (p ReviewPolicy) Approve(item types.ContentItem) (types.ContentItem, error) {
	if item.State != types.StateAwaitingReview {
		return item, fmt.Errorf("%w: approve requires %s, item is %s",
			ErrIllegalTransition, types.StateAwaitingReview, item.State)
	}
	return Transition(item, types.StateDraftApproved)
}

// SubmitFeedback records reviewer feedback and moves the item to
// FEEDBACK_RECEIVED, incrementing the revision count exactly once.
// Feedback on an item already in FEEDBACK_RECEIVED replaces the pending
// feedback and still spends one revision. When the budget is spent the
// submission is refused side-effect-free: the caller must approve as-is
// or abandon the item.
func (p ReviewPolicy) SubmitFeedback(item types.ContentItem, feedback string) (types.ContentItem, error) {
	switch item.State {
	case types.StateAwaitingReview, types.StateFeedbackReceived:
	default:
		return item, fmt.Errorf("%w: feedback requires %s, item is %s",
			ErrIllegalTransition, types.StateAwaitingReview, item.State)
	}
	if item.RevisionCount >= p.maxRevisions() {
		return item, fmt.Errorf("%w: %d of %d revisions used",
			ErrRevisionBudgetExhausted, item.RevisionCount, p.maxRevisions())
	}
	updated := item.WithFeedback(feedback)
	if item.State == types.StateAwaitingReview {
		return Transition(updated, types.StateFeedbackReceived)
	}
	return updated, nil
}
