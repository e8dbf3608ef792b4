// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blog-engine/pkg/types"
)

func reviewItem() types.ContentItem {
	return types.ContentItem{
		ID:    "item-1",
		Topic: "Go generics",
		State: types.StateAwaitingReview,
	}
}

func TestApprove_FromCheckpoint(t *testing.T) {
	p := ReviewPolicy{}
	approved, err := p.Approve(reviewItem())
	require.NoError(t, err)
	assert.Equal(t, types.StateDraftApproved, approved.State)
}

func TestApprove_OutsideCheckpointFails(t *testing.T) {
	p := ReviewPolicy{}
	item := reviewItem()
	item.State = types.StateTopicSelected

	got, err := p.Approve(item)
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, item, got, "failed approve must leave the item unchanged")
}

func TestSubmitFeedback_RevisionLoop(t *testing.T) {
	p := ReviewPolicy{MaxRevisions: 3}
	item := reviewItem()

	for i := 1; i <= 3; i++ {
		var err error
		item, err = p.SubmitFeedback(item, "tighten the introduction")
		require.NoError(t, err, "submission %d within budget must succeed", i)
		assert.Equal(t, i, item.RevisionCount)
		assert.Equal(t, types.StateFeedbackReceived, item.State)
	}

	got, err := p.SubmitFeedback(item, "one more pass")
	require.ErrorIs(t, err, ErrRevisionBudgetExhausted)
	assert.Equal(t, 3, got.RevisionCount, "refusal must not spend a revision")
	assert.Equal(t, types.StateFeedbackReceived, got.State)
	assert.Equal(t, "tighten the introduction", got.Feedback, "refusal must not overwrite feedback")

	// Refusal is idempotent.
	_, err = p.SubmitFeedback(got, "again")
	require.ErrorIs(t, err, ErrRevisionBudgetExhausted)
}

func TestSubmitFeedback_DefaultBudget(t *testing.T) {
	p := ReviewPolicy{}
	item := reviewItem()
	item.RevisionCount = DefaultMaxRevisions

	_, err := p.SubmitFeedback(item, "feedback")
	require.ErrorIs(t, err, ErrRevisionBudgetExhausted)
}

func TestSubmitFeedback_OutsideReviewStatesFails(t *testing.T) {
	p := ReviewPolicy{}
	item := reviewItem()
	item.State = types.StateDraftGenerated

	_, err := p.SubmitFeedback(item, "feedback")
	require.ErrorIs(t, err, ErrIllegalTransition)
}
