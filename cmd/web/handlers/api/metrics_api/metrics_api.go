// package metrics_api provides the JSON API for platform metrics fetching.
package metrics_api

import (
	"strings"

	"github.com/google/uuid"
	"gyb.studio/pulse/internal/platformid"
)

// contentKey derives the stable identity for (platform, url) used by the
// cache and the snapshot table. Returns false when no identifier can be
// extracted from the URL; such requests are still fetchable but never cached.
func contentKey(platform string, rawURL string) (uuid.UUID, bool) {
	platform = strings.ToLower(strings.TrimSpace(platform))

	id, err := platformid.Extract(rawURL, platform)
	if err != nil {
		return uuid.Nil, false
	}

	domain := platformid.CanonicalDomainForPlatform(platform)
	if domain == "" {
		return uuid.Nil, false
	}

	return platformid.ContentUUID(domain, id), true
}
