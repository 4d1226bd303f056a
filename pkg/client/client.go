package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fountainhq/fountain/pkg/domain"
)

// metadataTimeout bounds a single link-preview resolution. Metadata is
// best-effort; a slow endpoint must not stall the composer.
const metadataTimeout = 5 * time.Second

// validate checks metadata payloads before they are trusted for display.
var validate = validator.New()

// Client is the Fountain API client.
type Client struct {
	baseURL     string
	token       string
	httpClient  *http.Client
	metaLimiter *rate.Limiter
	log         *zap.Logger
}

// New creates a new API client. A nil logger disables logging.
func New(baseURL, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// The metadata endpoint rate-limits callers (429). Stay under it.
		metaLimiter: rate.NewLimiter(rate.Limit(5), 10),
		log:         log,
	}
}

// GetMe returns the authenticated user's profile.
func (c *Client) GetMe(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.get(ctx, "/profiles/me", &p); err != nil {
		return nil, fmt.Errorf("client.GetMe: %w", err)
	}
	return &p, nil
}

// GetFeed fetches a page of the post feed.
func (c *Client) GetFeed(ctx context.Context, limit int, cursor string) ([]domain.Post, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	var posts []domain.Post
	if err := c.get(ctx, "/posts/feed?"+params.Encode(), &posts); err != nil {
		return nil, fmt.Errorf("client.GetFeed: %w", err)
	}
	return posts, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := c.get(ctx, "/posts/"+url.PathEscape(id), &post); err != nil {
		return nil, fmt.Errorf("client.GetPost: %w", err)
	}
	return &post, nil
}

// GetComments fetches the comments of a post.
func (c *Client) GetComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.get(ctx, "/comments/post/"+url.PathEscape(postID), &comments); err != nil {
		return nil, fmt.Errorf("client.GetComments: %w", err)
	}
	return comments, nil
}

// CreatePostRequest is the payload for creating a new post.
type CreatePostRequest struct {
	Text         string   `json:"text"`
	MentionedIDs []string `json:"mentionedUserIds,omitempty"`
}

// CreatePost creates a new post.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*domain.Post, error) {
	var created domain.Post
	if err := c.post(ctx, "/posts", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreatePost: %w", err)
	}
	return &created, nil
}

// CreateCommentRequest is the payload for commenting on a post.
type CreateCommentRequest struct {
	Text         string   `json:"text"`
	MentionedIDs []string `json:"mentionedUserIds,omitempty"`
}

// CreateComment creates a comment on a post.
func (c *Client) CreateComment(ctx context.Context, postID string, req CreateCommentRequest) (*domain.Comment, error) {
	var created domain.Comment
	if err := c.post(ctx, "/comments/post/"+url.PathEscape(postID), req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateComment: %w", err)
	}
	return &created, nil
}

// ReactTarget selects what a like/dislike applies to.
type ReactTarget string

const (
	TargetPost    ReactTarget = "post"
	TargetComment ReactTarget = "comment"
)

// Like likes a post or comment. Fire-and-forget from the UI's perspective:
// the response body is not needed, only success/failure.
func (c *Client) Like(ctx context.Context, target ReactTarget, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/likes/"+string(target)+"/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.Like: %w", err)
	}
	return nil
}

// Dislike dislikes a post or comment.
func (c *Client) Dislike(ctx context.Context, target ReactTarget, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/dislikes/"+string(target)+"/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.Dislike: %w", err)
	}
	return nil
}

// SearchProfiles searches profiles by username prefix.
func (c *Client) SearchProfiles(ctx context.Context, query string) ([]domain.Profile, error) {
	params := url.Values{}
	params.Set("username", query)
	var profiles []domain.Profile
	if err := c.get(ctx, "/profiles/search?"+params.Encode(), &profiles); err != nil {
		return nil, fmt.Errorf("client.SearchProfiles: %w", err)
	}
	return profiles, nil
}

// GetFollowings fetches a page of the profiles the current user follows.
func (c *Client) GetFollowings(ctx context.Context, limit int, cursor string) (*domain.FollowingPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	var page domain.FollowingPage
	if err := c.get(ctx, "/profiles/me/followings?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("client.GetFollowings: %w", err)
	}
	return &page, nil
}

// GetMyPosts fetches the current user's posts (for reward accrual).
func (c *Client) GetMyPosts(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.get(ctx, "/posts/me", &posts); err != nil {
		return nil, fmt.Errorf("client.GetMyPosts: %w", err)
	}
	return posts, nil
}

// GetMyComments fetches the current user's comments (for reward accrual).
func (c *Client) GetMyComments(ctx context.Context) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.get(ctx, "/comments/me", &comments); err != nil {
		return nil, fmt.Errorf("client.GetMyComments: %w", err)
	}
	return comments, nil
}

// GetNotifications fetches the current user's notifications, newest first.
func (c *Client) GetNotifications(ctx context.Context) ([]domain.Notification, error) {
	var notifs []domain.Notification
	if err := c.get(ctx, "/notifications", &notifs); err != nil {
		return nil, fmt.Errorf("client.GetNotifications: %w", err)
	}
	return notifs, nil
}

// ReadNotification marks one notification as read.
func (c *Client) ReadNotification(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.ReadNotification: %w", err)
	}
	return nil
}

// ReadAllNotifications marks every notification as read.
func (c *Client) ReadAllNotifications(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("client.ReadAllNotifications: %w", err)
	}
	return nil
}

// GetSettledRewards fetches the server-settled rewards total.
func (c *Client) GetSettledRewards(ctx context.Context) (*domain.RewardSummary, error) {
	var summary domain.RewardSummary
	if err := c.get(ctx, "/rewards/settled", &summary); err != nil {
		return nil, fmt.Errorf("client.GetSettledRewards: %w", err)
	}
	return &summary, nil
}

// metadataPayload is the raw metadata endpoint response. All fields are
// optional; Image must be a well-formed URL to be trusted.
type metadataPayload struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty" validate:"omitempty,url"`
	SiteName    string `json:"siteName,omitempty"`
}

// ResolveMetadata fetches link-preview metadata for a URL. The returned
// metadata is always usable: any failure (timeout, non-2xx, malformed or
// invalid body) degrades to the bare {url, kind} fallback, with the error
// reporting why. Media URLs never hit the network; the media itself is
// the preview.
func (c *Client) ResolveMetadata(ctx context.Context, rawURL string) (domain.URLMetadata, error) {
	kind := domain.ClassifyMedia(rawURL)
	fallback := domain.URLMetadata{URL: rawURL, Kind: kind}
	if kind != domain.MediaLink {
		return fallback, nil
	}

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	if err := c.metaLimiter.Wait(ctx); err != nil {
		return fallback, fmt.Errorf("client.ResolveMetadata: %w", err)
	}

	params := url.Values{}
	params.Set("url", rawURL)
	var payload metadataPayload
	if err := c.get(ctx, "/metadata?"+params.Encode(), &payload); err != nil {
		c.log.Debug("metadata fetch degraded", zap.String("url", rawURL), zap.Error(err))
		return fallback, fmt.Errorf("client.ResolveMetadata: %w", err)
	}
	if err := validate.Struct(payload); err != nil {
		c.log.Debug("metadata payload rejected", zap.String("url", rawURL), zap.Error(err))
		return fallback, fmt.Errorf("client.ResolveMetadata: invalid payload: %w", err)
	}
	return domain.URLMetadata{
		URL:         rawURL,
		Kind:        domain.MediaLink,
		Title:       payload.Title,
		Description: payload.Description,
		Image:       payload.Image,
		SiteName:    payload.SiteName,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
