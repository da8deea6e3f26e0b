package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/roguepikachu/canopy/internal/repository"
)

// UIDLength is the length of a snippet's public identifier.
const UIDLength = 10

// maxUIDAttempts caps collision re-rolls. At 10 hex-ish characters a collision
// is astronomically unlikely, so hitting the cap indicates something is wrong
// and we fail loudly instead of recursing forever. The unique constraint on
// the uid column remains the authoritative guard.
const maxUIDAttempts = 5

// ErrUIDExhausted is returned when identifier generation keeps colliding.
var ErrUIDExhausted = errors.New("uid generation exhausted retries")

// newUIDCandidate returns a random 10-character identifier: a UUID with the
// separators stripped, truncated.
func newUIDCandidate() string {
	u := strings.ReplaceAll(uuid.New().String(), "-", "")
	return u[:UIDLength]
}

// GenerateUID produces a public identifier that does not collide with any
// stored snippet, re-rolling on collision up to maxUIDAttempts times.
func GenerateUID(ctx context.Context, repo repository.SnippetRepository, candidate func() string) (string, error) {
	if candidate == nil {
		candidate = newUIDCandidate
	}
	for attempt := 0; attempt < maxUIDAttempts; attempt++ {
		uid := candidate()
		exists, err := repo.UIDExists(ctx, uid)
		if err != nil {
			return "", err
		}
		if !exists {
			return uid, nil
		}
	}
	return "", ErrUIDExhausted
}
