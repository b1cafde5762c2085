// Package service implements the press-kit business logic: profile
// bootstrap, editor sessions and the public renderer, delegating
// persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playbackhq/playback/internal/models"
	"github.com/playbackhq/playback/internal/repository"
)

// ProfileStore defines the document-store operations the services need.
type ProfileStore interface {
	// Get fetches the document at id, or repository.ErrNoDocument.
	Get(ctx context.Context, collection, id string) (*models.Profile, error)
	// Replace writes the whole document at id, creating it if absent.
	Replace(ctx context.Context, collection, id string, p *models.Profile) error
	// Increment applies one atomic $inc update with dotted field paths.
	Increment(ctx context.Context, collection, id string, fields map[string]int64) error
}

// BootstrapService ensures a profile document exists for an identity.
type BootstrapService struct {
	store ProfileStore
	now   func() time.Time
}

// NewBootstrapService constructs a BootstrapService over the store.
func NewBootstrapService(store ProfileStore) *BootstrapService {
	return &BootstrapService{store: store, now: time.Now}
}

// EnsureProfile returns the profile stored for id, creating one with
// defaults on first access.
//
// An existing document is returned verbatim: no field merging, no
// schema upgrade, no defaulting of absent fields (those are defaulted
// at read time by consumers). On first access a default profile is
// written with a server-assigned creation timestamp; the display name
// falls back to "New Artist" when no hint is given.
//
// Two concurrent calls for the same new id may race; the initial
// create is last-write-wins with no compare-and-swap.
func (s *BootstrapService) EnsureProfile(ctx context.Context, id, nameHint, emailHint string) (*models.Profile, error) {
	existing, err := s.store.Get(ctx, repository.Bands, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNoDocument) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	p := models.NewProfile(nameHint, emailHint)
	p.CreatedAt = s.now().UTC()
	if err := s.store.Replace(ctx, repository.Bands, id, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return p, nil
}
