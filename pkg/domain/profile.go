package domain

import "time"

// Profile is a Fountain user as returned by the profile endpoints.
type Profile struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Followers int       `json:"followers,omitempty"`
	Following int       `json:"following,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// DisplayName returns the profile's name, falling back to the username.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// FollowingPage is one cursor-paginated page of followed profiles.
type FollowingPage struct {
	Data       []Profile `json:"data"`
	HasMore    bool      `json:"hasMore"`
	NextCursor string    `json:"nextCursor,omitempty"`
}
