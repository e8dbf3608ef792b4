// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blog-engine/pkg/types"
)

var allStates = []types.WorkflowState{
	types.StateTopicSelected,
	types.StateResearchComplete,
	types.StateOutlineCreated,
	types.StateDraftGenerated,
	types.StateAwaitingReview,
	types.StateDraftApproved,
	types.StateFeedbackReceived,
	types.StateImagesAdded,
	types.StatePostCreated,
	types.StatePublished,
}

// legalEdges is the full expected edge set; every other pair must be
// rejected.
var legalEdges = map[types.WorkflowState][]types.WorkflowState{
	types.StateTopicSelected:    {types.StateResearchComplete},
	types.StateResearchComplete: {types.StateOutlineCreated},
	types.StateOutlineCreated:   {types.StateDraftGenerated},
	types.StateDraftGenerated:   {types.StateAwaitingReview},
	types.StateAwaitingReview:   {types.StateDraftApproved, types.StateFeedbackReceived},
	types.StateFeedbackReceived: {types.StateDraftGenerated},
	types.StateDraftApproved:    {types.StateImagesAdded},
	types.StateImagesAdded:      {types.StatePostCreated},
	types.StatePostCreated:      {types.StatePublished},
}

func TestCanTransition_ExhaustiveTable(t *testing.T) {
	for _, from := range allStates {
		allowed := make(map[types.WorkflowState]bool)
		for _, to := range legalEdges[from] {
			allowed[to] = true
		}
		for _, to := range allStates {
			got := CanTransition(from, to)
			if got != allowed[to] {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, allowed[to])
			}
		}
	}
}

func TestPublished_IsTerminal(t *testing.T) {
	for _, to := range allStates {
		assert.False(t, CanTransition(types.StatePublished, to),
			"PUBLISHED must have no edge to %s", to)
	}
	assert.True(t, Terminal(types.StatePublished))
	assert.False(t, Terminal(types.StateAwaitingReview))
}

func TestTransition_RejectsIllegalEdge(t *testing.T) {
	item := types.ContentItem{ID: "x", State: types.StateTopicSelected}
	_, err := Transition(item, types.StatePublished)
	require.ErrorIs(t, err, ErrIllegalTransition)

	moved, err := Transition(item, types.StateResearchComplete)
	require.NoError(t, err)
	assert.Equal(t, types.StateResearchComplete, moved.State)
	// Input value untouched.
	assert.Equal(t, types.StateTopicSelected, item.State)
}

func TestPredicates_MonotonicAlongHappyPath(t *testing.T) {
	for i := 0; i < len(happyPath)-1; i++ {
		cur := Predicates(happyPath[i])
		next := Predicates(happyPath[i+1])
		require.Less(t, len(cur), len(next),
			"%s must achieve strictly fewer facts than %s", happyPath[i], happyPath[i+1])
		for fact := range cur {
			assert.True(t, next[fact], "%s must carry forward fact %q", happyPath[i+1], fact)
		}
	}
}

func TestPredicates_PublishedIsTerminalOnly(t *testing.T) {
	got := Predicates(types.StatePublished)
	assert.Equal(t, map[string]bool{"post_published": true}, got)
}

func TestPredicates_FeedbackReceived(t *testing.T) {
	got := Predicates(types.StateFeedbackReceived)
	assert.True(t, got["feedback_received"])
	assert.True(t, got["awaiting_review"])
	assert.True(t, got["draft_generated"])
	assert.False(t, got["draft_approved"])
}
