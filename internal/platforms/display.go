package platforms

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var displayNames = map[string]string{
	PlatformYouTube:   "YouTube",
	PlatformInstagram: "Instagram",
	PlatformTikTok:    "TikTok",
	PlatformFacebook:  "Facebook",
	PlatformPinterest: "Pinterest",
	PlatformSpotify:   "Spotify",
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the human-facing name for a platform. Known platforms
// use their trademark casing; anything else gets plain title case.
func DisplayName(platform string) string {
	key := strings.ToLower(strings.TrimSpace(platform))
	if name, ok := displayNames[key]; ok {
		return name
	}
	return titleCaser.String(key)
}
