package platforms

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateViewData_Sums(t *testing.T) {
	results := []PlatformViewData{
		{Views: 100, Likes: 10, Comments: 2, Duration: "PT1M", SubscriberCount: 1000},
		{Views: 200, Likes: 20, Comments: 4, Duration: "PT2M", SubscriberCount: 2000},
	}

	agg := AggregateViewData(results, 2)
	require.Equal(t, 2, agg.TotalVideos)
	require.EqualValues(t, 300, agg.TotalViews)
	require.EqualValues(t, 30, agg.TotalLikes)
	require.EqualValues(t, 6, agg.TotalComments)
	require.Equal(t, "PT3M", agg.TotalDuration)
	require.EqualValues(t, 1500, agg.AverageSubscriberCount)
	require.NotEmpty(t, agg.LastUpdated)
}

// Items with zero subscriber counts are excluded from the average's
// denominator, not treated as zero-valued samples.
func TestAggregateViewData_SubscriberAverageExcludesZeroes(t *testing.T) {
	results := []PlatformViewData{
		{SubscriberCount: 1000},
		{SubscriberCount: 0},
		{SubscriberCount: 2000},
	}

	agg := AggregateViewData(results, 3)
	require.EqualValues(t, 1500, agg.AverageSubscriberCount)
}

func TestAggregateViewData_Empty(t *testing.T) {
	agg := AggregateViewData(nil, 0)
	require.Equal(t, 0, agg.TotalVideos)
	require.EqualValues(t, 0, agg.TotalViews)
	require.Equal(t, "PT0S", agg.TotalDuration)
	require.EqualValues(t, 0, agg.AverageSubscriberCount)
}

// A failed item still counts toward TotalVideos; it just contributes zero to
// every sum.
func TestFetchAggregatedData_FailedItemStillCounted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if strings.HasPrefix(id, "bad") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"items": [{
			"statistics": {"viewCount": "100", "likeCount": "5", "commentCount": "1"},
			"contentDetails": {"duration": "PT1M"},
			"snippet": {}
		}]}`))
	})

	svc := newTestService(t, map[string]PlatformConfig{PlatformYouTube: {APIKey: "k"}}, mux)

	items := []ContentItem{
		{OriginalURL: "https://youtu.be/good1234567", Platforms: []string{"youtube"}},
		{OriginalURL: "https://youtu.be/bad12345678", Platforms: []string{"youtube"}},
		{OriginalURL: "https://youtu.be/good7654321", Platforms: []string{"youtube"}},
		{OriginalURL: "https://vimeo.com/123", Platforms: []string{"vimeo"}}, // not youtube, ignored
	}

	agg := svc.FetchAggregatedData(context.Background(), items)
	require.Equal(t, 3, agg.TotalVideos)
	require.EqualValues(t, 200, agg.TotalViews)
	require.EqualValues(t, 10, agg.TotalLikes)
	require.EqualValues(t, 2, agg.TotalComments)
	require.Equal(t, "PT2M", agg.TotalDuration)
}

func TestFetchAggregatedData_NoYouTubeItems(t *testing.T) {
	svc := NewService(map[string]PlatformConfig{PlatformYouTube: {APIKey: "k"}})

	agg := svc.FetchAggregatedData(context.Background(), []ContentItem{
		{OriginalURL: "https://open.spotify.com/track/abc", Platforms: []string{"spotify"}},
	})
	require.Equal(t, 0, agg.TotalVideos)
	require.EqualValues(t, 0, agg.TotalViews)
	require.Equal(t, "PT0S", agg.TotalDuration)
}
