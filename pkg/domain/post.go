package domain

import "time"

// Post is a feed post whose visibility and reward-accrual window is bounded
// by a server-assigned ExpiresAt. Likes extend the window, dislikes shorten
// it; both happen server-side and the client only echoes the result.
type Post struct {
	ID           string    `json:"_id"`
	Author       *Profile  `json:"author,omitempty"`
	Text         string    `json:"text"`
	MentionedIDs []string  `json:"mentionedUserIds,omitempty"`
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	CommentCount int       `json:"commentCount"`
	Liked        bool      `json:"liked,omitempty"`
	Disliked     bool      `json:"disliked,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the post's window has closed. Posts without an
// ExpiresAt never expire.
func (p Post) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !p.ExpiresAt.After(now)
}

// Remaining returns the time left until expiry, clamped at zero.
func (p Post) Remaining(now time.Time) time.Duration {
	if p.ExpiresAt.IsZero() {
		return 0
	}
	d := p.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
