package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/playbackhq/playback/internal/gate"
	"github.com/playbackhq/playback/internal/models"
	"github.com/playbackhq/playback/internal/repository"
)

// PublicService resolves public ids to profiles, renders the visible
// sections and drives the vault gate and analytics counters. Analytics
// writes are the only concurrency-safe writes in the system: they go
// through the store's atomic increment so simultaneous viewers combine
// instead of clobbering each other.
type PublicService struct {
	store ProfileStore
	log   *zap.Logger
	now   func() time.Time
}

// NewPublicService constructs a PublicService.
func NewPublicService(store ProfileStore, log *zap.Logger) *PublicService {
	return &PublicService{store: store, log: log, now: time.Now}
}

// ResolvePublic looks a public id up in the primary slug collection
// first and falls back to the identity-subject collection, so manual
// slugs and provider ids resolve transparently. It returns the profile
// and the collection it was found in, or ErrNotFound.
func (s *PublicService) ResolvePublic(ctx context.Context, publicID string) (*models.Profile, string, error) {
	p, err := s.store.Get(ctx, repository.Bands, publicID)
	if err == nil {
		return p, repository.Bands, nil
	}
	if !errors.Is(err, repository.ErrNoDocument) {
		return nil, "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	p, err = s.store.Get(ctx, repository.Users, publicID)
	if err == nil {
		return p, repository.Users, nil
	}
	if !errors.Is(err, repository.ErrNoDocument) {
		return nil, "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil, "", ErrNotFound
}

// Resolve fetches the profile for a public id without recording a
// visit. Unlock responses use it so a PIN submission does not double
// count the page view.
func (s *PublicService) Resolve(ctx context.Context, publicID string) (*models.Profile, error) {
	p, _, err := s.ResolvePublic(ctx, publicID)
	return p, err
}

// View resolves a public id and records the visit: total views +1, the
// current-UTC-date bucket +1 and the viewer's device bucket. The
// increment is best effort; a failure is logged and never surfaces to
// the viewer.
func (s *PublicService) View(ctx context.Context, publicID, userAgent string) (*models.Profile, error) {
	p, collection, err := s.ResolvePublic(ctx, publicID)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Format("2006-01-02")
	fields := map[string]int64{
		"views":               1,
		"dailyViews." + today: 1,
	}
	if isMobile(userAgent) {
		fields["stats.mobile"] = 1
	} else {
		fields["stats.desktop"] = 1
	}
	if err := s.store.Increment(ctx, collection, publicID, fields); err != nil {
		s.log.Warn("view analytics skipped", zap.String("id", publicID), zap.Error(err))
	}
	return p, nil
}

// Unlock checks a submitted PIN against the profile's stored one and,
// on success, fires a best-effort unlock-counter increment. There is no
// retry limit or lockout; a mismatch leaves the gate locked.
func (s *PublicService) Unlock(ctx context.Context, publicID, pin string) (bool, error) {
	p, collection, err := s.ResolvePublic(ctx, publicID)
	if err != nil {
		return false, err
	}

	g := gate.New()
	if !g.Submit(pin, p.VaultPin) {
		return false, nil
	}
	if err := s.store.Increment(ctx, collection, publicID, map[string]int64{"vaultUnlocks": 1}); err != nil {
		s.log.Warn("unlock analytics skipped", zap.String("id", publicID), zap.Error(err))
	}
	return true, nil
}

// TrackDownload bumps the per-asset download counter, best effort.
func (s *PublicService) TrackDownload(ctx context.Context, publicID, asset string) {
	s.track(ctx, publicID, "stats.downloads."+safeKey(asset))
}

// TrackLinkClick bumps the per-platform link-click counter, best effort.
func (s *PublicService) TrackLinkClick(ctx context.Context, publicID, platform string) {
	s.track(ctx, publicID, "stats.linkClicks."+safeKey(platform))
}

func (s *PublicService) track(ctx context.Context, publicID, path string) {
	_, collection, err := s.ResolvePublic(ctx, publicID)
	if err != nil {
		return
	}
	if err := s.store.Increment(ctx, collection, publicID, map[string]int64{path: 1}); err != nil {
		s.log.Warn("engagement analytics skipped", zap.String("id", publicID), zap.Error(err))
	}
}

// safeKey keeps increment map keys free of path separators so a
// user-supplied name cannot address nested fields.
func safeKey(k string) string {
	k = strings.ReplaceAll(k, ".", "_")
	k = strings.ReplaceAll(k, "$", "_")
	if k == "" {
		k = "unknown"
	}
	return k
}

func isMobile(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, needle := range []string{"mobile", "android", "iphone", "ipad"} {
		if strings.Contains(ua, needle) {
			return true
		}
	}
	return false
}
