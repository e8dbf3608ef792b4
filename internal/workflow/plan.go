// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import "github.com/pdiddy/blog-engine/pkg/types"

// Action names the single next operation recommended for a state. The
// pipeline graph has out-degree 1 everywhere except the review checkpoint,
// so recommendation is a lookup, not a search.
type Action string

const (
	ActionResearch      Action = "research"
	ActionOutline       Action = "outline"
	ActionGenerateDraft Action = "generate-draft"
	ActionRequestReview Action = "request-review"
	ActionWaitForHuman  Action = "wait-for-human"
	ActionReviseDraft   Action = "revise-draft"
	ActionAddImages     Action = "add-images"
	ActionCreatePost    Action = "create-post"
	ActionPublishPost   Action = "publish-post"
	ActionComplete      Action = "complete"
)

// plan is the deterministic state → next-action table.
var plan = map[types.WorkflowState]Action{
	types.StateTopicSelected:    ActionResearch,
	types.StateResearchComplete: ActionOutline,
	types.StateOutlineCreated:   ActionGenerateDraft,
	types.StateDraftGenerated:   ActionRequestReview,
	types.StateAwaitingReview:   ActionWaitForHuman,
	types.StateFeedbackReceived: ActionReviseDraft,
	types.StateDraftApproved:    ActionAddImages,
	types.StateImagesAdded:      ActionCreatePost,
	types.StatePostCreated:      ActionPublishPost,
	types.StatePublished:        ActionComplete,
}

// NextAction returns the recommended next operation for a state.
func NextAction(s types.WorkflowState) Action {
	return plan[s]
}

// Automatic reports whether the recommended action for s may be run
// without a human decision. The review checkpoint and the terminal state
// are the two places automatic progression stops.
func Automatic(s types.WorkflowState) bool {
	switch NextAction(s) {
	case ActionWaitForHuman, ActionComplete, "":
		return false
	}
	return true
}
