package platforms

import (
	"context"
	"log/slog"
	"strings"

	"gyb.studio/pulse/pkg/utils/format"
)

// FetchAggregatedData fans out over every YouTube item in the list and sums
// the results.
//
// Items are fetched sequentially on purpose: several of these platforms have
// tight per-minute quotas, and a burst of parallel calls trips them. Do not
// parallelize without re-checking upstream rate-limit behavior.
//
// A failing item never aborts the batch: it still counts toward TotalVideos
// and contributes zero to every sum.
func (s *Service) FetchAggregatedData(ctx context.Context, items []ContentItem) AggregatedPlatformData {
	var youtubeItems []ContentItem
	for _, item := range items {
		if item.OriginalURL == "" {
			continue
		}
		for _, platform := range item.Platforms {
			if strings.EqualFold(platform, PlatformYouTube) {
				youtubeItems = append(youtubeItems, item)
				break
			}
		}
	}

	results := make([]PlatformViewData, 0, len(youtubeItems))
	for _, item := range youtubeItems {
		resp := s.FetchPlatformViews(ctx, item, PlatformYouTube)
		if resp.Success && resp.Data != nil {
			results = append(results, *resp.Data)
			continue
		}
		slog.Warn("aggregation item failed", "url", format.Truncate(item.OriginalURL, 120), "error", resp.Error)
	}

	return AggregateViewData(results, len(youtubeItems))
}

// AggregateViewData recomputes the aggregate record from a list of normalized
// results. totalCount is the number of items attempted, which may exceed
// len(results) when some fetches failed.
//
// The subscriber average divides by the number of items with a positive
// subscriber count only; items with a zero or missing count are excluded from
// the denominator rather than dragging the mean down.
func AggregateViewData(results []PlatformViewData, totalCount int) AggregatedPlatformData {
	var totalViews, totalLikes, totalComments, totalDurationSeconds int64
	var totalSubscribers int64
	var withSubscribers int64

	for _, data := range results {
		totalViews += data.Views
		totalLikes += data.Likes
		totalComments += data.Comments
		totalDurationSeconds += ParseDurationToSeconds(data.Duration)

		if data.SubscriberCount > 0 {
			totalSubscribers += data.SubscriberCount
			withSubscribers++
		}
	}

	var averageSubscribers int64
	if withSubscribers > 0 {
		// Round half up, matching how the counts are displayed.
		averageSubscribers = (totalSubscribers + withSubscribers/2) / withSubscribers
	}

	return AggregatedPlatformData{
		TotalVideos:            totalCount,
		TotalViews:             totalViews,
		TotalLikes:             totalLikes,
		TotalComments:          totalComments,
		TotalDuration:          FormatSecondsToDuration(totalDurationSeconds),
		AverageSubscriberCount: averageSubscribers,
		LastUpdated:            nowISO(),
	}
}
