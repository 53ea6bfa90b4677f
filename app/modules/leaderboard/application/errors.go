package leaderboardservice

import "errors"

var (
	// ErrNoSnapshot is returned when no snapshot has been persisted for a period.
	ErrNoSnapshot = errors.New("no leaderboard snapshot persisted")

	// ErrProxyFieldsMissing is returned when a proxy request lacks required fields.
	ErrProxyFieldsMissing = errors.New("missing required fields in request body")
)
