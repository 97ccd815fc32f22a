package platforms

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Upstream numeric fields arrive as JSON strings, numbers, or not at all
// depending on the platform. toInt is the single safe-parse point: anything
// unparseable becomes 0 so NaN-style garbage never reaches a result record.
func toInt(v any) int64 {
	switch val := v.(type) {
	case nil:
		return 0
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int64(val)
	case int64:
		return val
	case int:
		return int64(val)
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Normalize maps one platform's raw API JSON onto PlatformViewData. Pure
// apart from stamping LastUpdated. Spotify payloads are treated as track
// responses here; playlists go through NormalizeSpotifyPlaylist.
func Normalize(platform string, raw []byte) (*PlatformViewData, error) {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case PlatformYouTube:
		data, _, err := NormalizeYouTubeVideo(raw)
		return data, err
	case PlatformInstagram:
		return NormalizeInstagram(raw)
	case PlatformTikTok:
		return NormalizeTikTok(raw)
	case PlatformFacebook:
		return NormalizeFacebook(raw)
	case PlatformPinterest:
		return NormalizePinterest(raw)
	case PlatformSpotify:
		return NormalizeSpotifyTrack(raw)
	default:
		return nil, &PayloadError{Platform: platform, Message: "no normalizer for platform"}
	}
}

type youtubeVideoList struct {
	Items []struct {
		Statistics struct {
			ViewCount    any `json:"viewCount"`
			LikeCount    any `json:"likeCount"`
			CommentCount any `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Snippet struct {
			ChannelID string `json:"channelId"`
		} `json:"snippet"`
	} `json:"items"`
}

// NormalizeYouTubeVideo maps a YouTube Data API v3 /videos response. The
// second return value is the owning channel ID, used for the follow-up
// subscriber-count fetch. An empty items array means the video is deleted,
// private, or the ID was wrong; that is a payload failure, not zero views.
func NormalizeYouTubeVideo(raw []byte) (*PlatformViewData, string, error) {
	var list youtubeVideoList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, "", &PayloadError{Platform: PlatformYouTube, Message: "malformed response: " + err.Error()}
	}
	if len(list.Items) == 0 {
		return nil, "", &PayloadError{Platform: PlatformYouTube, Message: "video not found or not accessible"}
	}

	video := list.Items[0]
	duration := video.ContentDetails.Duration
	if duration == "" {
		duration = "PT0S"
	}

	return &PlatformViewData{
		Platform:    PlatformYouTube,
		Views:       toInt(video.Statistics.ViewCount),
		Likes:       toInt(video.Statistics.LikeCount),
		Comments:    toInt(video.Statistics.CommentCount),
		Duration:    duration,
		LastUpdated: nowISO(),
	}, video.Snippet.ChannelID, nil
}

type youtubeChannelList struct {
	Items []struct {
		Statistics struct {
			SubscriberCount any `json:"subscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// ParseYouTubeSubscriberCount reads the subscriber count out of a /channels
// response. Missing or hidden counts yield 0; the channel fetch is an
// enrichment step and never fails the video fetch.
func ParseYouTubeSubscriberCount(raw []byte) int64 {
	var list youtubeChannelList
	if err := json.Unmarshal(raw, &list); err != nil {
		return 0
	}
	if len(list.Items) == 0 {
		return 0
	}
	return toInt(list.Items[0].Statistics.SubscriberCount)
}

type instagramMedia struct {
	LikeCount     any `json:"like_count"`
	CommentsCount any `json:"comments_count"`
}

// NormalizeInstagram maps an Instagram Graph media response. Views is forced
// to 0: the Basic Display surface exposes no view counts, and that zero is
// deliberate rather than a missing field.
func NormalizeInstagram(raw []byte) (*PlatformViewData, error) {
	var media instagramMedia
	if err := json.Unmarshal(raw, &media); err != nil {
		return nil, &PayloadError{Platform: PlatformInstagram, Message: "malformed response: " + err.Error()}
	}

	return &PlatformViewData{
		Platform:    PlatformInstagram,
		Views:       0,
		Likes:       toInt(media.LikeCount),
		Comments:    toInt(media.CommentsCount),
		LastUpdated: nowISO(),
	}, nil
}

type tiktokEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Data struct {
		PlayCount    any `json:"play_count"`
		LikeCount    any `json:"like_count"`
		ShareCount   any `json:"share_count"`
		CommentCount any `json:"comment_count"`
	} `json:"data"`
}

// NormalizeTikTok unwraps TikTok's data envelope. An embedded error object
// takes precedence over the HTTP status: a 200 carrying an error is still a
// failure, never a success with zeroed fields.
func NormalizeTikTok(raw []byte) (*PlatformViewData, error) {
	var env tiktokEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &PayloadError{Platform: PlatformTikTok, Message: "malformed response: " + err.Error()}
	}
	if env.Error != nil {
		msg := env.Error.Message
		if msg == "" {
			msg = "tiktok api error"
		}
		return nil, &PayloadError{Platform: PlatformTikTok, Message: msg}
	}

	return &PlatformViewData{
		Platform:    PlatformTikTok,
		Views:       toInt(env.Data.PlayCount),
		Likes:       toInt(env.Data.LikeCount),
		Shares:      toInt(env.Data.ShareCount),
		Comments:    toInt(env.Data.CommentCount),
		LastUpdated: nowISO(),
	}, nil
}

type facebookPost struct {
	Insights struct {
		Data []struct {
			Name   string `json:"name"`
			Values []struct {
				Value any `json:"value"`
			} `json:"values"`
		} `json:"data"`
	} `json:"insights"`
}

// NormalizeFacebook pulls post_impressions and post_reactions_by_type_total
// out of the insights array. The upstream API does not guarantee array order,
// so metrics are looked up by name, never by index.
func NormalizeFacebook(raw []byte) (*PlatformViewData, error) {
	var post facebookPost
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, &PayloadError{Platform: PlatformFacebook, Message: "malformed response: " + err.Error()}
	}

	var impressions, reactions int64
	for _, insight := range post.Insights.Data {
		if len(insight.Values) == 0 {
			continue
		}
		switch insight.Name {
		case "post_impressions":
			impressions = toInt(insight.Values[0].Value)
		case "post_reactions_by_type_total":
			reactions = toInt(insight.Values[0].Value)
		}
	}

	return &PlatformViewData{
		Platform:    PlatformFacebook,
		Views:       impressions,
		Likes:       reactions,
		LastUpdated: nowISO(),
	}, nil
}

type pinterestPin struct {
	SaveCount any `json:"save_count"`
}

// NormalizePinterest maps a Pinterest v5 pin. A Pinterest "save" is modeled
// as a share in our unified vocabulary; views and likes are forced to 0.
func NormalizePinterest(raw []byte) (*PlatformViewData, error) {
	var pin pinterestPin
	if err := json.Unmarshal(raw, &pin); err != nil {
		return nil, &PayloadError{Platform: PlatformPinterest, Message: "malformed response: " + err.Error()}
	}

	return &PlatformViewData{
		Platform:    PlatformPinterest,
		Views:       0,
		Likes:       0,
		Shares:      toInt(pin.SaveCount),
		LastUpdated: nowISO(),
	}, nil
}

// NormalizeSpotifyTrack maps a /v1/tracks response. Spotify exposes no public
// play or engagement counts for tracks, so every metric is 0 by contract.
func NormalizeSpotifyTrack(raw []byte) (*PlatformViewData, error) {
	if !json.Valid(raw) {
		return nil, &PayloadError{Platform: PlatformSpotify, Message: "malformed response"}
	}

	return &PlatformViewData{
		Platform:    PlatformSpotify,
		Views:       0,
		Likes:       0,
		Comments:    0,
		LastUpdated: nowISO(),
	}, nil
}

type spotifyPlaylist struct {
	Followers struct {
		Total any `json:"total"`
	} `json:"followers"`
	Tracks struct {
		Total any `json:"total"`
	} `json:"tracks"`
}

// NormalizeSpotifyPlaylist maps a /v1/playlists response: follower and track
// totals are the only public numbers.
func NormalizeSpotifyPlaylist(raw []byte) (*PlatformViewData, error) {
	var playlist spotifyPlaylist
	if err := json.Unmarshal(raw, &playlist); err != nil {
		return nil, &PayloadError{Platform: PlatformSpotify, Message: "malformed response: " + err.Error()}
	}

	return &PlatformViewData{
		Platform:    PlatformSpotify,
		Views:       0,
		Followers:   toInt(playlist.Followers.Total),
		TrackCount:  toInt(playlist.Tracks.Total),
		LastUpdated: nowISO(),
	}, nil
}
