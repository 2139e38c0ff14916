package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const defaultMaxResults = 3

// Client wraps the YouTube Data API for educational resource lookups.
type Client struct {
	service    *yt.Service
	maxResults int64
}

// NewClient creates a YouTube client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string, maxResults int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{service: svc, maxResults: int64(maxResults)}, nil
}

// SearchEducational searches for safe, embeddable educational videos
// matching the topic.
func (c *Client) SearchEducational(ctx context.Context, topic string) ([]Resource, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Context(ctx).
		Q(topic).
		Type("video").
		SafeSearch("strict").
		VideoEmbeddable("true").
		RelevanceLanguage("en").
		MaxResults(c.maxResults)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search youtube: %w", err)
	}

	resources := make([]Resource, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		resources = append(resources, Resource{
			VideoID:     item.Id.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			ChannelName: item.Snippet.ChannelTitle,
			URL:         "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		})
	}

	return resources, nil
}
