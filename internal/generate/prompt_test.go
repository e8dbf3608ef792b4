// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blog-engine/pkg/types"
)

func TestOutlinePrompt_CarriesTopicAndContext(t *testing.T) {
	item := types.ContentItem{
		Topic:           "Rust ownership",
		Instructions:    "keep it beginner friendly",
		ResearchContext: "ownership moves values between bindings",
	}
	p := OutlinePrompt(item)
	assert.Contains(t, p.User, "Rust ownership")
	assert.Contains(t, p.User, "beginner friendly")
	assert.Contains(t, p.User, "ownership moves values")
	assert.NotEmpty(t, p.System)
}

func TestDraftPrompt_UsesOutlineAndLength(t *testing.T) {
	item := types.ContentItem{
		Title:   "Understanding Rust ownership",
		Topic:   "Rust ownership",
		Outline: "## Borrowing\n- shared vs exclusive",
	}
	p := DraftPrompt(item, 800)
	assert.Contains(t, p.User, "Understanding Rust ownership")
	assert.Contains(t, p.User, "## Borrowing")
	assert.Contains(t, p.User, "800 words")

	noLimit := DraftPrompt(item, 0)
	assert.NotContains(t, noLimit.User, "Target length")
}

func TestRevisionPrompt_CarriesFeedbackHistory(t *testing.T) {
	item := types.ContentItem{
		Content:  "# Draft\nbody",
		Feedback: "shorten the intro",
	}
	p := RevisionPrompt(item, []string{"add examples", ""})
	assert.Contains(t, p.User, "shorten the intro")
	assert.Contains(t, p.User, "# Draft")
	require.Len(t, p.History, 1)
	assert.Equal(t, "add examples", p.History[0].Content)
}

func TestMock_EchoesRequest(t *testing.T) {
	out, err := Mock{}.Complete(context.Background(), Prompt{User: "write about Go"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "write about Go"))
}
