// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"strings"
)

// Mock is a deterministic Client for local runs and tests. It never calls
// an external model.
type Mock struct{}

// Complete echoes the request back as a small Markdown document.
func (Mock) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Generated sample\n\n")
	sb.WriteString("This placeholder was produced without calling a model.\n\n")
	sb.WriteString("## Request\n\n```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
