package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/playbackhq/playback/internal/identity"
	"github.com/playbackhq/playback/internal/models"
	"github.com/playbackhq/playback/internal/repository"
	"github.com/playbackhq/playback/internal/service"
)

type mockBootstrapper struct {
	EnsureProfileFunc func(ctx context.Context, id, nameHint, emailHint string) (*models.Profile, error)
}

func (m *mockBootstrapper) EnsureProfile(ctx context.Context, id, nameHint, emailHint string) (*models.Profile, error) {
	return m.EnsureProfileFunc(ctx, id, nameHint, emailHint)
}

type mockBinaryStore struct {
	PutFunc func(ctx context.Context, path string, r io.Reader) (string, error)
}

func (m *mockBinaryStore) Put(ctx context.Context, path string, r io.Reader) (string, error) {
	return m.PutFunc(ctx, path, r)
}

func newEditorFixture(t *testing.T) (*service.EditorService, *mockStore, *mockBinaryStore) {
	t.Helper()
	store := &mockStore{
		ReplaceFunc: func(context.Context, string, string, *models.Profile) error { return nil },
	}
	files := &mockBinaryStore{
		PutFunc: func(context.Context, string, io.Reader) (string, error) {
			return "https://cdn.example.com/asset", nil
		},
	}
	bootstrap := &mockBootstrapper{
		EnsureProfileFunc: func(_ context.Context, _, nameHint, emailHint string) (*models.Profile, error) {
			return models.NewProfile(nameHint, emailHint), nil
		},
	}
	svc := service.NewEditorService(bootstrap, store, files)
	if _, err := svc.Load(context.Background(), identity.Identity{Subject: "artist-1", Name: "Neon Echo"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc, store, files
}

func TestEditorLoad_InstallsDraft(t *testing.T) {
	svc, _, _ := newEditorFixture(t)

	draft, ok := svc.Draft("artist-1")
	if !ok {
		t.Fatal("expected a draft after Load")
	}
	if draft.BandName != "Neon Echo" {
		t.Errorf("draft bandName = %q; want the bootstrapped profile", draft.BandName)
	}
	if _, ok := svc.Draft("someone-else"); ok {
		t.Error("drafts must be per subject")
	}
}

func TestEditorSave(t *testing.T) {
	svc, store, _ := newEditorFixture(t)

	var gotCollection, gotID string
	var gotProfile *models.Profile
	store.ReplaceFunc = func(_ context.Context, collection, id string, p *models.Profile) error {
		gotCollection, gotID, gotProfile = collection, id, p
		return nil
	}

	if err := svc.SetBandName("artist-1", "Velvet Static"); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if err := svc.Save(context.Background(), "artist-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if gotCollection != repository.Bands || gotID != "artist-1" {
		t.Errorf("save wrote %s/%s; want bands/artist-1", gotCollection, gotID)
	}
	if gotProfile == nil || gotProfile.BandName != "Velvet Static" {
		t.Error("save must write the mutated draft")
	}
}

func TestEditorSave_NoDraft(t *testing.T) {
	svc, _, _ := newEditorFixture(t)
	if err := svc.Save(context.Background(), "never-loaded"); !errors.Is(err, service.ErrWriteFailed) {
		t.Errorf("err = %v; want ErrWriteFailed", err)
	}
}

func TestEditorSave_StoreFailure(t *testing.T) {
	svc, store, _ := newEditorFixture(t)
	store.ReplaceFunc = func(context.Context, string, string, *models.Profile) error {
		return errors.New("primary stepped down")
	}
	if err := svc.Save(context.Background(), "artist-1"); !errors.Is(err, service.ErrWriteFailed) {
		t.Errorf("err = %v; want ErrWriteFailed", err)
	}
}

func TestEditorMutators_DraftOnly(t *testing.T) {
	svc, store, _ := newEditorFixture(t)
	writes := 0
	store.ReplaceFunc = func(context.Context, string, string, *models.Profile) error {
		writes++
		return nil
	}

	if err := svc.AddSong("artist-1"); err != nil {
		t.Fatalf("add song: %v", err)
	}
	if err := svc.AddSong("artist-1"); err != nil {
		t.Fatalf("add song: %v", err)
	}
	draft, _ := svc.Draft("artist-1")
	if len(draft.Songs) != 2 {
		t.Fatalf("songs = %d; want 2", len(draft.Songs))
	}
	if draft.Songs[0].Title != "New Track" || draft.Songs[0].Duration != "0:00" {
		t.Errorf("new song defaults = %+v", draft.Songs[0])
	}
	if draft.Songs[0].ID == draft.Songs[1].ID {
		t.Error("song ids must be unique")
	}
	if err := svc.RemoveSong("artist-1", draft.Songs[0].ID); err != nil {
		t.Fatalf("remove song: %v", err)
	}
	draft, _ = svc.Draft("artist-1")
	if len(draft.Songs) != 1 {
		t.Errorf("songs after remove = %d; want 1", len(draft.Songs))
	}
	if writes != 0 {
		t.Errorf("mutators performed %d store writes; want 0 before Save", writes)
	}
}

func TestUpdateSocial_PlatformInference(t *testing.T) {
	svc, _, _ := newEditorFixture(t)
	if err := svc.AddSocial("artist-1"); err != nil {
		t.Fatalf("add social: %v", err)
	}
	draft, _ := svc.Draft("artist-1")
	id := draft.Socials[0].ID

	if err := svc.UpdateSocial("artist-1", id, "url", "https://open.spotify.com/artist/x"); err != nil {
		t.Fatalf("update social: %v", err)
	}
	draft, _ = svc.Draft("artist-1")
	if draft.Socials[0].Platform != "spotify" {
		t.Errorf("platform = %q; want spotify inferred from the URL", draft.Socials[0].Platform)
	}
	if draft.Socials[0].URL != "https://open.spotify.com/artist/x" {
		t.Errorf("url = %q", draft.Socials[0].URL)
	}
}

func TestSetVaultPin_DigitsOnlyCappedAtFour(t *testing.T) {
	svc, _, _ := newEditorFixture(t)

	cases := []struct{ in, want string }{
		{"9876", "9876"},
		{"12ab34", "1234"},
		{"987654", "9876"},
		{"abc", ""},
	}
	for _, tc := range cases {
		if err := svc.SetVaultPin("artist-1", tc.in); err != nil {
			t.Fatalf("set pin %q: %v", tc.in, err)
		}
		draft, _ := svc.Draft("artist-1")
		if draft.VaultPin != tc.want {
			t.Errorf("SetVaultPin(%q) stored %q; want %q", tc.in, draft.VaultPin, tc.want)
		}
	}
}

func TestUpload_HeroImage(t *testing.T) {
	svc, _, files := newEditorFixture(t)
	service.SetEditorNow(svc, func() time.Time {
		return time.Unix(1714570000, 0)
	})

	var gotPath string
	files.PutFunc = func(_ context.Context, path string, r io.Reader) (string, error) {
		gotPath = path
		if _, err := io.Copy(io.Discard, r); err != nil {
			return "", err
		}
		return "https://cdn.example.com/hero.jpg", nil
	}

	url, err := svc.Upload(context.Background(), "artist-1", service.UploadHero, "", "hero.jpg", 1024, strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.example.com/hero.jpg" {
		t.Errorf("url = %q", url)
	}
	if gotPath != "uploads/artist-1/hero/1714570000_hero.jpg" {
		t.Errorf("storage path = %q", gotPath)
	}
	draft, _ := svc.Draft("artist-1")
	if draft.HeroImage != url {
		t.Errorf("heroImage = %q; want upload applied to draft", draft.HeroImage)
	}
}

func TestUpload_CustomSectionFile(t *testing.T) {
	svc, _, _ := newEditorFixture(t)
	if err := svc.AddCustomSection("artist-1"); err != nil {
		t.Fatalf("add section: %v", err)
	}
	draft, _ := svc.Draft("artist-1")
	custom := draft.Sections[len(draft.Sections)-1]

	url, err := svc.Upload(context.Background(), "artist-1", service.UploadCustomImage, custom.ID, "cover.png", 1024, strings.NewReader("png"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	draft, _ = svc.Draft("artist-1")
	got := draft.Sections[len(draft.Sections)-1]
	if got.FileURL != url {
		t.Errorf("fileUrl = %q; want %q applied to the target section", got.FileURL, url)
	}
}

func TestUpload_OversizeRejectedBeforeStore(t *testing.T) {
	svc, _, files := newEditorFixture(t)
	files.PutFunc = func(context.Context, string, io.Reader) (string, error) {
		t.Fatal("oversize upload must never reach the binary store")
		return "", nil
	}

	_, err := svc.Upload(context.Background(), "artist-1", service.UploadHero, "", "huge.mov", service.MaxUploadSize+1, strings.NewReader(""))
	if !errors.Is(err, service.ErrValidationRejected) {
		t.Errorf("err = %v; want ErrValidationRejected", err)
	}
}

func TestUpload_StoreFailure(t *testing.T) {
	svc, _, files := newEditorFixture(t)
	files.PutFunc = func(context.Context, string, io.Reader) (string, error) {
		return "", errors.New("cloud unreachable")
	}

	_, err := svc.Upload(context.Background(), "artist-1", service.UploadHero, "", "hero.jpg", 10, strings.NewReader("x"))
	if !errors.Is(err, service.ErrWriteFailed) {
		t.Errorf("err = %v; want ErrWriteFailed", err)
	}
	draft, _ := svc.Draft("artist-1")
	if draft.HeroImage != models.DefaultHeroImage {
		t.Error("failed upload must not touch the draft")
	}
}
