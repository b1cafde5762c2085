package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playbackhq/playback/internal/identity"
	"github.com/playbackhq/playback/internal/models"
	"github.com/playbackhq/playback/internal/repository"
	"github.com/playbackhq/playback/internal/sections"
)

// MaxUploadSize is the fixed ceiling for binary uploads. Oversized
// files are rejected before anything is sent to the binary store, so
// no partial-upload cleanup is ever needed.
const MaxUploadSize = 10 << 20 // 10 MiB

// Bootstrapper provides first-access profile creation for the editor.
type Bootstrapper interface {
	EnsureProfile(ctx context.Context, id, nameHint, emailHint string) (*models.Profile, error)
}

// BinaryStore uploads raw bytes and returns a durable reference.
type BinaryStore interface {
	Put(ctx context.Context, path string, r io.Reader) (string, error)
}

// Upload kinds accepted by Upload, matching the draft field each
// durable reference lands in.
const (
	UploadHero        = "hero"
	UploadTechRider   = "techRider"
	UploadPressPhotos = "pressPhotos"
	UploadAudio       = "audio"
	UploadCustomImage = "custom_image"
	UploadCustomAudio = "custom_audio"
)

// EditorService holds one in-memory profile draft per authenticated
// identity. Mutators apply to the draft only; nothing persists until an
// explicit Save, which replaces the whole stored document. The last
// save to complete wins and silently overwrites concurrent editors of
// the same profile; there is no version check or merge.
type EditorService struct {
	bootstrap Bootstrapper
	store     ProfileStore
	files     BinaryStore
	now       func() time.Time

	mu     sync.Mutex
	drafts map[string]*models.Profile
}

// NewEditorService constructs an EditorService.
func NewEditorService(bootstrap Bootstrapper, store ProfileStore, files BinaryStore) *EditorService {
	return &EditorService{
		bootstrap: bootstrap,
		store:     store,
		files:     files,
		now:       time.Now,
		drafts:    map[string]*models.Profile{},
	}
}

// Load bootstraps the identity's profile and installs it as the
// session's working draft, replacing any draft already loaded.
func (s *EditorService) Load(ctx context.Context, ident identity.Identity) (*models.Profile, error) {
	p, err := s.bootstrap.EnsureProfile(ctx, ident.Subject, ident.Name, ident.Email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.drafts[ident.Subject] = p
	s.mu.Unlock()
	return p, nil
}

// Draft returns the current working draft for the subject, if loaded.
func (s *EditorService) Draft(subject string) (*models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.drafts[subject]
	return p, ok
}

// Save writes the entire working draft back to the store under the
// session identity's id as a full replace. It does not retry on
// failure.
func (s *EditorService) Save(ctx context.Context, subject string) error {
	draft, ok := s.Draft(subject)
	if !ok {
		return fmt.Errorf("%w: no draft loaded for %q", ErrWriteFailed, subject)
	}
	if err := s.store.Replace(ctx, repository.Bands, subject, draft); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// apply runs fn against the subject's draft under the session lock.
func (s *EditorService) apply(subject string, fn func(*models.Profile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[subject]
	if !ok {
		return fmt.Errorf("no draft loaded for %q", subject)
	}
	fn(draft)
	return nil
}

// Section operations, delegating to the pure sections package.

func (s *EditorService) MoveSection(subject string, index int, dir sections.Direction) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Sections = sections.Move(p.Sections, index, dir)
	})
}

func (s *EditorService) ToggleSection(subject string, index int) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Sections = sections.ToggleVisibility(p.Sections, index)
	})
}

func (s *EditorService) AddCustomSection(subject string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Sections = sections.AddCustom(p.Sections)
	})
}

func (s *EditorService) DeleteSection(subject string, index int) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Sections = sections.Delete(p.Sections, index)
	})
}

func (s *EditorService) UpdateSectionField(subject, id, field, value string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Sections = sections.UpdateField(p.Sections, id, field, value)
	})
}

// List entity mutators. New entries get generated unique ids rather
// than wall-clock timestamps so rapid programmatic creation cannot
// collide.

func (s *EditorService) AddSong(subject string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Songs = append(p.Songs, models.Song{ID: uuid.NewString(), Title: "New Track", Duration: "0:00"})
	})
}

func (s *EditorService) RemoveSong(subject, id string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Songs = removeByID(p.Songs, id, func(v models.Song) string { return v.ID })
	})
}

func (s *EditorService) UpdateSong(subject, id, field, value string) error {
	return s.apply(subject, func(p *models.Profile) {
		for i := range p.Songs {
			if p.Songs[i].ID != id {
				continue
			}
			switch field {
			case "title":
				p.Songs[i].Title = value
			case "duration":
				p.Songs[i].Duration = value
			case "audioUrl":
				p.Songs[i].AudioURL = value
			}
			return
		}
	})
}

func (s *EditorService) AddTour(subject string) error {
	return s.apply(subject, func(p *models.Profile) {
		today := s.now().UTC().Format("2006-01-02")
		p.Tour = append(p.Tour, models.TourDate{ID: uuid.NewString(), Date: today, Venue: "Venue", City: "City"})
	})
}

func (s *EditorService) RemoveTour(subject, id string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Tour = removeByID(p.Tour, id, func(v models.TourDate) string { return v.ID })
	})
}

func (s *EditorService) UpdateTour(subject, id, field, value string) error {
	return s.apply(subject, func(p *models.Profile) {
		for i := range p.Tour {
			if p.Tour[i].ID != id {
				continue
			}
			switch field {
			case "date":
				p.Tour[i].Date = value
			case "venue":
				p.Tour[i].Venue = value
			case "city":
				p.Tour[i].City = value
			case "ticketUrl":
				p.Tour[i].TicketURL = value
			}
			return
		}
	})
}

func (s *EditorService) AddVideo(subject string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Videos = append(p.Videos, models.Video{ID: uuid.NewString(), Title: "New Video"})
	})
}

func (s *EditorService) RemoveVideo(subject, id string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Videos = removeByID(p.Videos, id, func(v models.Video) string { return v.ID })
	})
}

func (s *EditorService) UpdateVideo(subject, id, field, value string) error {
	return s.apply(subject, func(p *models.Profile) {
		for i := range p.Videos {
			if p.Videos[i].ID != id {
				continue
			}
			switch field {
			case "title":
				p.Videos[i].Title = value
			case "url":
				p.Videos[i].URL = value
			}
			return
		}
	})
}

func (s *EditorService) AddPress(subject string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Press = append(p.Press, models.PressItem{ID: uuid.NewString(), Publication: "Publication", Quote: "Quote..."})
	})
}

func (s *EditorService) RemovePress(subject, id string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Press = removeByID(p.Press, id, func(v models.PressItem) string { return v.ID })
	})
}

func (s *EditorService) UpdatePress(subject, id, field, value string) error {
	return s.apply(subject, func(p *models.Profile) {
		for i := range p.Press {
			if p.Press[i].ID != id {
				continue
			}
			switch field {
			case "publication":
				p.Press[i].Publication = value
			case "quote":
				p.Press[i].Quote = value
			case "link":
				p.Press[i].Link = value
			}
			return
		}
	})
}

func (s *EditorService) AddSocial(subject string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Socials = append(p.Socials, models.SocialLink{ID: uuid.NewString(), Platform: "instagram"})
	})
}

func (s *EditorService) RemoveSocial(subject, id string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Socials = removeByID(p.Socials, id, func(v models.SocialLink) string { return v.ID })
	})
}

// UpdateSocial updates one social link field. Setting a URL that
// clearly belongs to a known platform also flips the platform selector.
func (s *EditorService) UpdateSocial(subject, id, field, value string) error {
	return s.apply(subject, func(p *models.Profile) {
		for i := range p.Socials {
			if p.Socials[i].ID != id {
				continue
			}
			switch field {
			case "platform":
				p.Socials[i].Platform = value
			case "url":
				p.Socials[i].URL = value
				if strings.Contains(value, "spotify") {
					p.Socials[i].Platform = "spotify"
				} else if strings.Contains(value, "instagram") {
					p.Socials[i].Platform = "instagram"
				}
			}
			return
		}
	})
}

// Profile field setters.

func (s *EditorService) SetBandName(subject, v string) error {
	return s.apply(subject, func(p *models.Profile) { p.BandName = v })
}

func (s *EditorService) SetTagline(subject, v string) error {
	return s.apply(subject, func(p *models.Profile) { p.Tagline = v })
}

func (s *EditorService) SetBio(subject, v string) error {
	return s.apply(subject, func(p *models.Profile) { p.Bio = v })
}

func (s *EditorService) SetFont(subject, v string) error {
	return s.apply(subject, func(p *models.Profile) { p.Font = v })
}

func (s *EditorService) SetHeroImage(subject, url string) error {
	return s.apply(subject, func(p *models.Profile) { p.HeroImage = url })
}

func (s *EditorService) SetManager(subject, name, email string) error {
	return s.apply(subject, func(p *models.Profile) {
		p.Manager = models.Manager{Name: name, Email: email}
	})
}

// SetColor updates one theme color; part is background, accent or font.
func (s *EditorService) SetColor(subject, part, value string) error {
	return s.apply(subject, func(p *models.Profile) {
		switch part {
		case "background":
			p.Colors.Background = value
		case "accent":
			p.Colors.Accent = value
		case "font":
			p.Colors.Font = value
		}
	})
}

// SetVaultPin stores the access PIN, keeping digits only and at most
// four of them.
func (s *EditorService) SetVaultPin(subject, v string) error {
	return s.apply(subject, func(p *models.Profile) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, v)
		if len(digits) > 4 {
			digits = digits[:4]
		}
		p.VaultPin = digits
	})
}

// Upload writes the file to the binary store under a path keyed by
// identity, kind, timestamp and filename, then applies the returned
// durable reference to the working draft according to kind. The draft
// still needs an explicit Save to persist. Files above MaxUploadSize
// are rejected before anything is sent.
func (s *EditorService) Upload(ctx context.Context, subject, kind, targetID, filename string, size int64, r io.Reader) (string, error) {
	if size > MaxUploadSize {
		return "", fmt.Errorf("%w: file too large (max 10MB)", ErrValidationRejected)
	}

	path := fmt.Sprintf("uploads/%s/%s/%d_%s", subject, kind, s.now().Unix(), filename)
	url, err := s.files.Put(ctx, path, r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	switch kind {
	case UploadHero:
		err = s.SetHeroImage(subject, url)
	case UploadTechRider:
		err = s.apply(subject, func(p *models.Profile) { p.Vault.TechRider = url })
	case UploadPressPhotos:
		err = s.apply(subject, func(p *models.Profile) { p.Vault.PressPhotos = url })
	case UploadAudio:
		err = s.UpdateSong(subject, targetID, "audioUrl", url)
	case UploadCustomImage, UploadCustomAudio:
		err = s.UpdateSectionField(subject, targetID, sections.FieldFileURL, url)
	default:
		err = fmt.Errorf("%w: unknown upload kind %q", ErrValidationRejected, kind)
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}
