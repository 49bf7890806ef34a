package marvel

import (
	"fmt"
	"strings"

	"github.com/mmcdole/herodex/internal/domain"
)

// Image size variants understood by the Marvel image CDN
const (
	PortraitSmall       = "portrait_small"
	PortraitMedium      = "portrait_medium"
	PortraitXLarge      = "portrait_xlarge"
	PortraitFantastic   = "portrait_fantastic"
	PortraitUncanny     = "portrait_uncanny"
	PortraitIncredible  = "portrait_incredible"
	StandardMedium      = "standard_medium"
	StandardLarge       = "standard_large"
	StandardFantastic   = "standard_fantastic"
	LandscapeLarge      = "landscape_large"
	LandscapeIncredible = "landscape_incredible"

	// DefaultImageVariant is used when no variant is given
	DefaultImageVariant = StandardLarge
)

// ImageURL composes the URL of a thumbnail at the given size variant
func ImageURL(t domain.Thumbnail, variant string) string {
	if variant == "" {
		variant = DefaultImageVariant
	}
	return fmt.Sprintf("%s/%s.%s", t.Path, variant, t.Extension)
}

// DisplayImageURL returns the image to show for an entry.
// Remote heroes use the size variant; local heroes carry a full URL in
// their path and have no image unless it is an http(s) URL.
func DisplayImageURL(e domain.Entry, variant string) (string, bool) {
	t := e.GetFields().Thumbnail
	if !e.IsLocal() {
		if t.Path == "" {
			return "", false
		}
		return ImageURL(t, variant), true
	}
	if !strings.HasPrefix(t.Path, "http") {
		return "", false
	}
	return fmt.Sprintf("%s.%s", t.Path, t.Extension), true
}
