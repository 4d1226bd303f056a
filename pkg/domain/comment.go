package domain

import "time"

// Comment is a comment on a post. Comments carry their own expiry window and
// accrue rewards the same way posts do.
type Comment struct {
	ID           string    `json:"_id"`
	PostID       string    `json:"postId"`
	Author       *Profile  `json:"author,omitempty"`
	Text         string    `json:"text"`
	MentionedIDs []string  `json:"mentionedUserIds,omitempty"`
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the comment's window has closed.
func (c Comment) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}

// Remaining returns the time left until expiry, clamped at zero.
func (c Comment) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt.IsZero() {
		return 0
	}
	d := c.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
