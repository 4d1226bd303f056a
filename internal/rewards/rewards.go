// Package rewards computes the live portion of a user's reward balance.
// Posts and comments accrue value continuously while they are alive; once
// an item expires the server settles its reward, so expired items are
// excluded from the live total to avoid counting them twice.
package rewards

import (
	"math"
	"time"

	"github.com/fountainhq/fountain/pkg/domain"
)

// DefaultRate is the accrual rate in reward units per second.
const DefaultRate = 0.001

// Live returns the reward accrued by one post as of now. Accrual is gated
// at the post's expiry and computed on whole elapsed seconds, so a display
// refreshing every second never shows a fractional-second jitter.
func Live(createdAt, expiresAt, now time.Time, rate float64) float64 {
	end := now
	if !expiresAt.IsZero() && expiresAt.Before(end) {
		end = expiresAt
	}
	if !end.After(createdAt) {
		return 0
	}
	return math.Floor(end.Sub(createdAt).Seconds()) * rate
}

// AggregatePosts sums the live rewards of the posts still alive at now.
// Expired posts contribute nothing here; their value is already in the
// settled balance.
func AggregatePosts(posts []domain.Post, now time.Time, rate float64) float64 {
	var sum float64
	for _, p := range posts {
		if p.Expired(now) {
			continue
		}
		sum += Live(p.CreatedAt, p.ExpiresAt, now, rate)
	}
	return sum
}

// AggregateComments sums the live rewards of the comments still alive at now.
func AggregateComments(comments []domain.Comment, now time.Time, rate float64) float64 {
	var sum float64
	for _, c := range comments {
		if c.Expired(now) {
			continue
		}
		sum += Live(c.CreatedAt, c.ExpiresAt, now, rate)
	}
	return sum
}

// Total combines the server-settled balance with the live accrual of all
// still-active content.
func Total(settled float64, posts []domain.Post, comments []domain.Comment, now time.Time, rate float64) float64 {
	return settled + AggregatePosts(posts, now, rate) + AggregateComments(comments, now, rate)
}
