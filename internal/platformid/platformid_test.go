package platformid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestExtract_YouTube_AllShapes(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch no scheme", "youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch trailing params", "https://youtube.com/watch?v=dQw4w9WgXcQ&t=30s"},
		{"watch v not first", "https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ"},
		{"shortlink", "https://youtu.be/dQw4w9WgXcQ"},
		{"shortlink with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=42"},
		{"shorts", "https://youtube.com/shorts/dQw4w9WgXcQ"},
		{"shorts share", "https://www.youtube.com/shorts/dQw4w9WgXcQ?feature=share"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"v path", "https://youtube.com/v/dQw4w9WgXcQ"},
		{"live", "https://www.youtube.com/live/dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"leading at", "@https://youtube.com/watch?v=dQw4w9WgXcQ"},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ \n"},
		{"zero width chars", "\u200bhttps://youtube.com/watch?v=dQw4w9WgXcQ\ufeff"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Extract(tc.url, "youtube")
			require.NoError(t, err)
			require.Equal(t, "dQw4w9WgXcQ", id)
		})
	}
}

func TestExtract_YouTube_QueryParamWinsOverPath(t *testing.T) {
	// Both a ?v= param and a path-based ID: the query parameter wins.
	id, err := Extract("https://youtube.com/embed/aaaaaaaaaaa?v=dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	require.Equal(t, "dQw4w9WgXcQ", id)
}

func TestExtract_YouTube_RejectsWrongLengthIDs(t *testing.T) {
	for _, raw := range []string{
		"https://youtu.be/tooShort10",       // 10 chars
		"https://youtu.be/tooLongBy1xx",     // 12 chars
		"https://youtube.com/watch?v=abc",   // way short
		"https://youtube.com/shorts/abc%20", // invalid charset
	} {
		_, err := Extract(raw, "youtube")
		require.ErrorIs(t, err, ErrNoIdentifier, raw)
	}
}

func TestExtract_YouTube_InvalidCandidateFallsThrough(t *testing.T) {
	// The ?v= value is malformed but the path still carries a valid ID; the
	// bad candidate is discarded rather than returned.
	id, err := Extract("https://youtube.com/shorts/dQw4w9WgXcQ?v=bad", "youtube")
	require.NoError(t, err)
	require.Equal(t, "dQw4w9WgXcQ", id)
}

func TestExtract_OtherPlatforms(t *testing.T) {
	cases := []struct {
		platform string
		url      string
		want     string
	}{
		{"instagram", "https://www.instagram.com/p/CxYzAb1/", "CxYzAb1"},
		{"instagram", "https://instagram.com/p/CxYzAb1?igshid=abc", "CxYzAb1"},
		{"tiktok", "https://www.tiktok.com/@creator/video/7123456789012345678", "7123456789012345678"},
		{"facebook", "https://www.facebook.com/somepage/posts/10158765432101234", "10158765432101234"},
		{"pinterest", "https://www.pinterest.com/pin/1234567890123456789/", "1234567890123456789"},
		{"spotify", "https://open.spotify.com/track/4cOdK2wGLETKBW3PvgPWqT", "4cOdK2wGLETKBW3PvgPWqT"},
		{"spotify", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
	}

	for _, tc := range cases {
		id, err := Extract(tc.url, tc.platform)
		require.NoError(t, err, tc.url)
		require.Equal(t, tc.want, id)
	}
}

func TestExtractSpotify_Kinds(t *testing.T) {
	id, kind, err := ExtractSpotify("https://open.spotify.com/track/4cOdK2wGLETKBW3PvgPWqT?si=xyz")
	require.NoError(t, err)
	require.Equal(t, SpotifyTrack, kind)
	require.Equal(t, "4cOdK2wGLETKBW3PvgPWqT", id)

	id, kind, err = ExtractSpotify("https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M")
	require.NoError(t, err)
	require.Equal(t, SpotifyPlaylist, kind)
	require.Equal(t, "37i9dQZF1DXcBWIGoYBM5M", id)
}

func TestExtract_NoMatch(t *testing.T) {
	for _, raw := range []string{
		"",
		"https://example.com/",
		"not a url at all",
		"https://vimeo.com/12345",
	} {
		_, err := Extract(raw, "youtube")
		require.ErrorIs(t, err, ErrNoIdentifier, raw)
	}

	_, err := Extract("https://youtube.com/watch?v=dQw4w9WgXcQ", "unknownplatform")
	require.ErrorIs(t, err, ErrNoIdentifier)
}

func TestResolveCanonicalDomain_Aliases(t *testing.T) {
	require.Equal(t, "youtube.com", ResolveCanonicalDomain("youtu.be"))
	require.Equal(t, "youtube.com", ResolveCanonicalDomain("www.youtube.com"))
	require.Equal(t, "spotify.com", ResolveCanonicalDomain("open.spotify.com"))
	require.Equal(t, "tiktok.com", ResolveCanonicalDomain("m.tiktok.com"))
	require.Equal(t, "example.com", ResolveCanonicalDomain("example.com"))
}

func TestContentUUID_Deterministic(t *testing.T) {
	a := ContentUUID("youtube.com", "dQw4w9WgXcQ")
	b := ContentUUID("youtube.com", "dQw4w9WgXcQ")
	require.Equal(t, a, b)
	require.NotEqual(t, uuid.Nil, a)

	// Different platform namespaces never collide on the same raw ID.
	c := ContentUUID("tiktok.com", "dQw4w9WgXcQ")
	require.NotEqual(t, a, c)
}

func TestCanonicalDomainForPlatform(t *testing.T) {
	require.Equal(t, "youtube.com", CanonicalDomainForPlatform("YouTube"))
	require.Equal(t, "spotify.com", CanonicalDomainForPlatform("spotify"))
	require.Equal(t, "other", CanonicalDomainForPlatform(" Other "))
}
