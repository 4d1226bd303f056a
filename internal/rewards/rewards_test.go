package rewards

import (
	"math"
	"testing"
	"time"

	"github.com/fountainhq/fountain/pkg/domain"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLive(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		createdAt time.Time
		expiresAt time.Time
		rate      float64
		want      float64
	}{
		{"ten seconds alive", now.Add(-10 * time.Second), now.Add(time.Hour), DefaultRate, 0.010},
		{"fractional seconds floored", now.Add(-10900 * time.Millisecond), now.Add(time.Hour), DefaultRate, 0.010},
		{"gated at expiry", now.Add(-2 * time.Hour), now.Add(-time.Hour), DefaultRate, 3.6},
		{"no expiry never gates", now.Add(-100 * time.Second), time.Time{}, DefaultRate, 0.100},
		{"created in the future", now.Add(time.Minute), now.Add(time.Hour), DefaultRate, 0},
		{"custom rate", now.Add(-10 * time.Second), now.Add(time.Hour), 0.5, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Live(tt.createdAt, tt.expiresAt, now, tt.rate)
			if !almost(got, tt.want) {
				t.Errorf("Live = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregatePostsExcludesExpired(t *testing.T) {
	now := time.Now()
	posts := []domain.Post{
		{CreatedAt: now.Add(-10 * time.Second), ExpiresAt: now.Add(time.Hour)},
		{CreatedAt: now.Add(-30 * time.Second), ExpiresAt: now.Add(time.Hour)},
		{CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}, // settled server-side
	}

	got := AggregatePosts(posts, now, DefaultRate)
	if !almost(got, 0.040) {
		t.Errorf("AggregatePosts = %v, want 0.040", got)
	}
}

func TestAggregateCommentsExcludesExpired(t *testing.T) {
	now := time.Now()
	comments := []domain.Comment{
		{CreatedAt: now.Add(-20 * time.Second), ExpiresAt: now.Add(time.Hour)},
		{CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
	}

	got := AggregateComments(comments, now, DefaultRate)
	if !almost(got, 0.020) {
		t.Errorf("AggregateComments = %v, want 0.020", got)
	}
}

func TestTotal(t *testing.T) {
	now := time.Now()
	posts := []domain.Post{
		{CreatedAt: now.Add(-10 * time.Second), ExpiresAt: now.Add(time.Hour)},
	}
	comments := []domain.Comment{
		{CreatedAt: now.Add(-5 * time.Second), ExpiresAt: now.Add(time.Hour)},
	}

	got := Total(1.25, posts, comments, now, DefaultRate)
	if !almost(got, 1.265) {
		t.Errorf("Total = %v, want 1.265", got)
	}
}
