// internal/adapter/youtube/client.go

// Package youtube implements the listening.VideoSource contract against
// the YouTube Data API v3 using API-key authentication.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sovradar/internal/domain/sov"
)

const defaultBaseURL = "https://www.googleapis.com"

// commentPageSize is the API maximum for commentThreads.list.
const commentPageSize = 50

// HTTPClient interface for making HTTP requests (allows injection for
// testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// Client is a YouTube Data API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a new YouTube API client with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchVideos searches for the keyword and hydrates every hit with
// snippet and statistics. Comments are fetched separately via
// FetchComments.
func (c *Client) SearchVideos(ctx context.Context, keyword string, maxResults int) ([]sov.Record, error) {
	query := url.Values{}
	query.Set("part", "id")
	query.Set("type", "video")
	query.Set("q", keyword)
	query.Set("maxResults", strconv.Itoa(maxResults))
	query.Set("key", c.apiKey)

	body, err := c.doRequest(ctx, c.baseURL+"/youtube/v3/search?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	videoIDs := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			videoIDs = append(videoIDs, item.ID.VideoID)
		}
	}
	if len(videoIDs) == 0 {
		return []sov.Record{}, nil
	}

	query = url.Values{}
	query.Set("part", "snippet,statistics")
	query.Set("id", strings.Join(videoIDs, ","))
	query.Set("key", c.apiKey)

	body, err = c.doRequest(ctx, c.baseURL+"/youtube/v3/videos?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var videosResp videosResponse
	if err := json.Unmarshal(body, &videosResp); err != nil {
		return nil, fmt.Errorf("failed to parse videos response: %w", err)
	}

	records := make([]sov.Record, 0, len(videosResp.Items))
	for _, item := range videosResp.Items {
		views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		likes, _ := strconv.ParseInt(item.Statistics.LikeCount, 10, 64)
		commentCount, _ := strconv.ParseInt(item.Statistics.CommentCount, 10, 64)

		records = append(records, sov.Record{
			Platform:     sov.PlatformYouTube,
			Keyword:      keyword,
			VideoID:      item.ID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Channel:      item.Snippet.ChannelTitle,
			Views:        views,
			Likes:        likes,
			CommentCount: commentCount,
			Comments:     []sov.Comment{},
		})
	}

	return records, nil
}

// FetchComments retrieves up to maxComments top-level comments for the
// video, following nextPageToken pagination in relevance order.
func (c *Client) FetchComments(ctx context.Context, videoID string, maxComments int) ([]sov.Comment, error) {
	comments := make([]sov.Comment, 0, maxComments)
	pageToken := ""

	for len(comments) < maxComments {
		pageSize := maxComments - len(comments)
		if pageSize > commentPageSize {
			pageSize = commentPageSize
		}

		query := url.Values{}
		query.Set("part", "snippet")
		query.Set("videoId", videoID)
		query.Set("maxResults", strconv.Itoa(pageSize))
		query.Set("order", "relevance")
		query.Set("textFormat", "plainText")
		query.Set("key", c.apiKey)
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		body, err := c.doRequest(ctx, c.baseURL+"/youtube/v3/commentThreads?"+query.Encode())
		if err != nil {
			return nil, err
		}

		var resp commentThreadsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to parse comment threads response: %w", err)
		}

		for _, item := range resp.Items {
			top := item.Snippet.TopLevelComment.Snippet
			comments = append(comments, sov.Comment{
				Text:      top.TextDisplay,
				LikeCount: top.LikeCount,
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return comments, nil
}

func (c *Client) doRequest(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleAPIError(resp.StatusCode)
	}

	return body, nil
}

func (c *Client) handleAPIError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("YouTube API authentication failed - check YOUTUBE_API_KEY")
	case http.StatusForbidden:
		return fmt.Errorf("YouTube API access denied - quota exhausted or comments disabled")
	case http.StatusNotFound:
		return fmt.Errorf("YouTube API resource not found")
	case http.StatusTooManyRequests:
		return fmt.Errorf("YouTube API rate limit exceeded - please try again later")
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("YouTube API server error - please try again later")
	default:
		return fmt.Errorf("YouTube API error (status %d)", statusCode)
	}
}
