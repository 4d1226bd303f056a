package domain

import "time"

// Notification types delivered by the API.
const (
	NotifLike    = "like"
	NotifDislike = "dislike"
	NotifComment = "comment"
	NotifMention = "mention"
	NotifFollow  = "follow"
)

// Notification represents a single notification event.
type Notification struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Actor     *Profile  `json:"actor,omitempty"`
	PostID    string    `json:"postId,omitempty"`
	CommentID string    `json:"commentId,omitempty"`
	Preview   string    `json:"preview,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
