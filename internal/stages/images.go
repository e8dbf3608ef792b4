// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stages

import (
	"context"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// AddImages uploads any local image assets attached to the item and
// records the hosted URLs. Upload failures are logged per image and the
// affected entries keep their local paths; the stage always advances so
// a missing illustration never blocks publication. Rerunnable.
func (p *Pipeline) AddImages(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "add-images", types.StateDraftApproved, types.StateImagesAdded); err != nil {
		return item, err
	}

	images := make([]types.ImageRef, len(item.Images))
	copy(images, item.Images)

	for i, img := range images {
		if img.URL != "" || img.LocalPath == "" {
			continue
		}
		url, err := p.pub.UploadImage(ctx, img.LocalPath)
		if err != nil {
			p.log.Warn("image upload failed, keeping local reference",
				"item", item.ID, "path", img.LocalPath, "error", err)
			continue
		}
		images[i].URL = url
	}

	return advance(item.WithImages(images), types.StateImagesAdded)
}
