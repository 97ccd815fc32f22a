// Package platformid extracts platform-native content identifiers from
// pasted URLs. Extraction is pure: no network calls, no side effects.
package platformid

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrNoIdentifier is returned when a URL does not contain a recognizable
// content ID for the requested platform.
var ErrNoIdentifier = errors.New("no content identifier found in url")

// Well-known host aliases. Key: input host. Value: canonical domain.
//
// Keep this intentionally conservative: we only alias hosts that are truly the
// same "source website" from a user perspective.
var canonicalDomainByHost = map[string]string{
	"youtube.com":     "youtube.com",
	"www.youtube.com": "youtube.com",
	"m.youtube.com":   "youtube.com",
	"youtu.be":        "youtube.com",

	"instagram.com":     "instagram.com",
	"www.instagram.com": "instagram.com",

	"tiktok.com":     "tiktok.com",
	"www.tiktok.com": "tiktok.com",
	"m.tiktok.com":   "tiktok.com",

	"facebook.com":     "facebook.com",
	"www.facebook.com": "facebook.com",
	"m.facebook.com":   "facebook.com",

	"pinterest.com":     "pinterest.com",
	"www.pinterest.com": "pinterest.com",

	"spotify.com":      "spotify.com",
	"open.spotify.com": "spotify.com",
	"play.spotify.com": "spotify.com",
}

// ResolveCanonicalDomain returns the canonical domain for host.
//
// host should be a hostname without port.
func ResolveCanonicalDomain(host string) string {
	h := normalizeHost(host)
	if h == "" {
		return ""
	}
	if c, ok := canonicalDomainByHost[h]; ok {
		return c
	}
	return h
}

// youtubeIDPattern is the fixed shape of a YouTube video ID.
var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Textual fallback patterns for YouTube, in priority order. These handle
// inputs the URL parser can't, like a pasted string without a scheme.
// The trailing group rejects a 12th ID character: an ID must be followed by a
// non-ID character or the end of input, never by more of the ID charset.
var youtubeFallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/shorts/|youtube\.com/live/)([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

// Single-shape platforms get one pattern each. These platforms expose only
// one canonical URL form in the inputs we support.
var (
	instagramPattern       = regexp.MustCompile(`instagram\.com/p/([^/?#]+)`)
	tiktokPattern          = regexp.MustCompile(`tiktok\.com/@[^/]+/video/(\d+)`)
	facebookPattern        = regexp.MustCompile(`facebook\.com/[^/]+/posts/(\d+)`)
	pinterestPattern       = regexp.MustCompile(`pinterest\.com/pin/(\d+)`)
	spotifyTrackPattern    = regexp.MustCompile(`spotify\.com/track/([A-Za-z0-9]+)`)
	spotifyPlaylistPattern = regexp.MustCompile(`spotify\.com/playlist/([A-Za-z0-9]+)`)
)

// SpotifyKind distinguishes which Spotify URL shape an ID came from.
type SpotifyKind string

const (
	SpotifyTrack    SpotifyKind = "track"
	SpotifyPlaylist SpotifyKind = "playlist"
)

// Extract returns the platform-native content ID for rawURL.
//
// The input may be malformed, missing a scheme, carry tracking query
// parameters, or have stray characters pasted around it. Extraction never
// panics; any parse failure yields ErrNoIdentifier.
func Extract(rawURL string, platform string) (string, error) {
	cleaned := CleanInput(rawURL)
	if cleaned == "" {
		return "", ErrNoIdentifier
	}

	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "youtube":
		return extractYouTube(cleaned)
	case "instagram":
		return matchOne(instagramPattern, cleaned)
	case "tiktok":
		return matchOne(tiktokPattern, cleaned)
	case "facebook":
		return matchOne(facebookPattern, cleaned)
	case "pinterest":
		return matchOne(pinterestPattern, cleaned)
	case "spotify":
		id, _, err := ExtractSpotify(cleaned)
		return id, err
	default:
		return "", ErrNoIdentifier
	}
}

// ExtractSpotify returns the Spotify ID and whether it addresses a track or a
// playlist. Track URLs win when both shapes somehow appear.
func ExtractSpotify(rawURL string) (string, SpotifyKind, error) {
	cleaned := CleanInput(rawURL)
	if id, err := matchOne(spotifyTrackPattern, cleaned); err == nil {
		return id, SpotifyTrack, nil
	}
	if id, err := matchOne(spotifyPlaylistPattern, cleaned); err == nil {
		return id, SpotifyPlaylist, nil
	}
	return "", "", ErrNoIdentifier
}

// CleanInput strips whitespace, zero-width characters, and a leading "@"
// that commonly survive copy/paste from chat apps and social handles.
func CleanInput(raw string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, raw)
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	return strings.TrimSpace(s)
}

// extractYouTube applies host-specific rules in priority order, then falls
// back to textual patterns when structured parsing gets us nowhere.
//
// Priority on youtube.com: ?v= query param, then /shorts/, /embed/, /v/,
// /live/. Each candidate is validated against the 11-char ID shape before
// being accepted; an invalid candidate is discarded and extraction continues.
func extractYouTube(rawURL string) (string, error) {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host := normalizeHost(u.Host)

		if host == "youtu.be" {
			if id := firstPathSegment(u.Path); validYouTubeID(id) {
				return id, nil
			}
		}

		if ResolveCanonicalDomain(host) == "youtube.com" || strings.Contains(host, "youtube.com") {
			if id := u.Query().Get("v"); validYouTubeID(id) {
				return id, nil
			}
			for _, prefix := range []string{"/shorts/", "/embed/", "/v/", "/live/"} {
				if strings.HasPrefix(u.Path, prefix) {
					if id := firstPathSegment(strings.TrimPrefix(u.Path, prefix)); validYouTubeID(id) {
						return id, nil
					}
				}
			}
		}
	}

	// Structured parsing failed or matched nothing. First matching textual
	// pattern wins.
	for _, pattern := range youtubeFallbackPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil && validYouTubeID(m[1]) {
			return m[1], nil
		}
	}

	return "", ErrNoIdentifier
}

// validYouTubeID checks length and charset post-match. Regex boundaries are
// ambiguous around suffixes like "&t=30s", so the pattern alone is not
// trusted to produce an exactly-11-char ID.
func validYouTubeID(id string) bool {
	return youtubeIDPattern.MatchString(id)
}

func matchOne(pattern *regexp.Regexp, rawURL string) (string, error) {
	m := pattern.FindStringSubmatch(rawURL)
	if m == nil || m[1] == "" {
		return "", ErrNoIdentifier
	}
	return m[1], nil
}

// NamespaceUUIDForPlatform returns a deterministic UUIDv5 namespace for a
// platform's canonical domain.
func NamespaceUUIDForPlatform(domain string) uuid.UUID {
	d := strings.TrimSpace(strings.ToLower(domain))
	d = strings.TrimSuffix(d, ".")
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(d))
}

// ContentUUID returns a deterministic UUIDv5 for a (platform domain, content
// ID) pair. Used as the storage and cache key for one piece of content.
func ContentUUID(domain string, contentID string) uuid.UUID {
	ns := NamespaceUUIDForPlatform(domain)
	return uuid.NewSHA1(ns, []byte(strings.TrimSpace(contentID)))
}

// CanonicalDomainForPlatform maps a platform name to its canonical domain for
// UUID namespacing.
func CanonicalDomainForPlatform(platform string) string {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "youtube":
		return "youtube.com"
	case "instagram":
		return "instagram.com"
	case "tiktok":
		return "tiktok.com"
	case "facebook":
		return "facebook.com"
	case "pinterest":
		return "pinterest.com"
	case "spotify":
		return "spotify.com"
	default:
		return strings.ToLower(strings.TrimSpace(platform))
	}
}

func normalizeHost(hostport string) string {
	h := strings.TrimSpace(strings.ToLower(hostport))
	if h == "" {
		return ""
	}
	// url.URL.Host may include port.
	if strings.Contains(h, ":") {
		if parsed, err := url.Parse("//" + h); err == nil {
			if parsed.Hostname() != "" {
				h = parsed.Hostname()
			}
		}
	}
	h = strings.TrimSuffix(h, ".")
	return h
}

func firstPathSegment(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return ""
	}
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}
