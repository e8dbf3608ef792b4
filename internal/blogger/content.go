// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blogger

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// renderPostHTML converts Markdown to HTML and appends image figures.
func renderPostHTML(markdown string, images []types.ImageRef) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buildContentWithImages(buf.String(), images), nil
}

// buildContentWithImages appends a figure per uploaded image to the post
// body. Images without a URL are skipped; they have not been uploaded yet.
func buildContentWithImages(bodyHTML string, images []types.ImageRef) string {
	if len(images) == 0 {
		return strings.TrimSpace(bodyHTML)
	}
	parts := []string{strings.TrimSpace(bodyHTML)}
	for _, img := range images {
		u := strings.TrimSpace(img.URL)
		if u == "" {
			continue
		}
		caption := strings.TrimSpace(img.Caption)
		if caption != "" {
			parts = append(parts, fmt.Sprintf(
				`<figure><img src="%s" alt="%s"/><figcaption>%s</figcaption></figure>`,
				u, escapeHTML(caption), escapeHTML(caption)))
		} else {
			parts = append(parts, fmt.Sprintf(`<figure><img src="%s" alt=""/></figure>`, u))
		}
	}
	return strings.Join(parts, "\n\n")
}

func escapeHTML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
