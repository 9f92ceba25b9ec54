// Package session holds the per-request session record and the lifecycle
// manager that keeps its tokens fresh. A Record is reconstructed from the
// sealed cookie on every request and written back as a whole, so no session
// state is shared between concurrent requests.
package session

import "time"

// ErrRefreshAccessToken is the error tag recorded on a session whose token
// refresh failed. A record carrying it is invalid until a new sign-in.
const ErrRefreshAccessToken = "RefreshAccessTokenError"

// State is the observable lifecycle state of a session. The transient
// refreshing state only exists inside Manager.Resume and is never observed
// by callers.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateActive          State = "active"
	StateExpired         State = "expired"
)

// User is the normalized principal attached to a session. Fields may be
// empty but a User is always well-formed.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Record is the session entity. Only RefreshToken survives across requests,
// and only inside the sealed cookie; it must never appear in a response body.
type Record struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken,omitempty"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"accessTokenExpiresAt"` // epoch milliseconds
	Err          string `json:"error,omitempty"`
}

// Expired reports whether the access token is no longer valid at now.
func (r *Record) Expired(now time.Time) bool {
	return now.UnixMilli() >= r.ExpiresAt
}

// State derives the lifecycle state of the record.
func (r *Record) State() State {
	if r == nil || r.RefreshToken == "" {
		return StateUnauthenticated
	}
	if r.Err != "" {
		return StateExpired
	}
	return StateActive
}
