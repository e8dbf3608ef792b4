// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const outlineSystem = "You are a professional blog editor. Output a Markdown outline only, no commentary."

const draftSystem = "You are a professional blog writer. Output the complete article as Markdown, no commentary."

const revisionSystem = "You are a professional editor. Apply the reviewer's feedback with minimal necessary changes, keeping the Markdown structure intact."

// OutlinePrompt asks for an article outline grounded in the item's topic,
// instructions, and any retrieved research context.
func OutlinePrompt(item types.ContentItem) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create an outline for a blog post about: %s\n", item.Topic)
	if item.Instructions != "" {
		fmt.Fprintf(&sb, "\nAuthor instructions:\n%s\n", item.Instructions)
	}
	if item.ResearchContext != "" {
		fmt.Fprintf(&sb, "\nBackground material to draw on:\n%s\n", item.ResearchContext)
	}
	sb.WriteString("\nUse second-level Markdown headings for sections, with one-line bullet points under each.")
	return Prompt{System: outlineSystem, User: sb.String()}
}

// DraftPrompt asks for a full article following the item's outline.
func DraftPrompt(item types.ContentItem, targetWords int) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a blog post titled %q about: %s\n", item.Title, item.Topic)
	if targetWords > 0 {
		fmt.Fprintf(&sb, "Target length: about %d words.\n", targetWords)
	}
	if item.Instructions != "" {
		fmt.Fprintf(&sb, "\nAuthor instructions:\n%s\n", item.Instructions)
	}
	if item.Outline != "" {
		fmt.Fprintf(&sb, "\nFollow this outline:\n%s\n", item.Outline)
	}
	if item.ResearchContext != "" {
		fmt.Fprintf(&sb, "\nGround the article in this material:\n%s\n", item.ResearchContext)
	}
	sb.WriteString("\nStart with a first-level heading matching the title, then the article body.")
	return Prompt{System: draftSystem, User: sb.String()}
}

// RevisionPrompt asks for a revised article incorporating the latest
// reviewer feedback. Earlier feedback rounds ride along as history so the
// model does not undo previously requested changes.
func RevisionPrompt(item types.ContentItem, priorFeedback []string) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current draft:\n%s\n\nReviewer feedback:\n%s\n", item.Content, item.Feedback)
	sb.WriteString("\nOutput the revised article as complete Markdown.")

	var history []Message
	for _, fb := range priorFeedback {
		if fb == "" {
			continue
		}
		history = append(history, Message{Role: "user", Content: fb})
	}
	return Prompt{System: revisionSystem, User: sb.String(), History: history}
}
