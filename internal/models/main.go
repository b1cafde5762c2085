// Package models defines the core data structures for artist press-kit profiles.
package models

import "time"

// SectionType identifies the kind of content block a Section renders.
type SectionType string

const (
	// SectionContact shows the manager contact block.
	SectionContact SectionType = "contact"
	// SectionVault is the PIN-gated protected asset block.
	SectionVault SectionType = "vault"
	// SectionSongs lists the profile's songs.
	SectionSongs SectionType = "songs"
	// SectionVideos lists the profile's videos.
	SectionVideos SectionType = "videos"
	// SectionTour lists upcoming tour dates.
	SectionTour SectionType = "tour"
	// SectionPress lists press quotes and reviews.
	SectionPress SectionType = "press"
	// SectionCustom is a user-created block with a selectable content kind.
	SectionCustom SectionType = "custom"
)

// ContentKind selects the payload shape of a custom section.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
	ContentVideo ContentKind = "video"
	ContentLink  ContentKind = "link"
	ContentAudio ContentKind = "audio"
)

// Section is an ordered, typed, individually visible content block.
// Slice order in Profile.Sections is the display order; there is no
// separate sort key. Fixed-type sections use a semantic id equal to
// their type tag; custom sections get a generated unique id.
type Section struct {
	ID      string      `bson:"id" json:"id"`
	Type    SectionType `bson:"type" json:"type"`
	Title   string      `bson:"title" json:"title"`
	Visible bool        `bson:"visible" json:"visible"`

	// Custom-section payload. Unused for fixed types.
	ContentKind ContentKind `bson:"contentType,omitempty" json:"contentType,omitempty"`
	Content     string      `bson:"content,omitempty" json:"content,omitempty"`
	URL         string      `bson:"url,omitempty" json:"url,omitempty"`
	FileURL     string      `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
}

// Song is a playable track entry.
type Song struct {
	ID       string `bson:"id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Duration string `bson:"duration" json:"duration"`
	AudioURL string `bson:"audioUrl" json:"audioUrl"`
}

// TourDate is a single show entry. Date is an ISO yyyy-mm-dd string.
type TourDate struct {
	ID        string `bson:"id" json:"id"`
	Date      string `bson:"date" json:"date"`
	Venue     string `bson:"venue" json:"venue"`
	City      string `bson:"city" json:"city"`
	TicketURL string `bson:"ticketUrl" json:"ticketUrl"`
}

// Video is an embedded external video entry.
type Video struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
}

// PressItem is a press quote with its publication and link.
type PressItem struct {
	ID          string `bson:"id" json:"id"`
	Publication string `bson:"publication" json:"publication"`
	Quote       string `bson:"quote" json:"quote"`
	Link        string `bson:"link" json:"link"`
}

// SocialLink is a streaming or social platform link.
type SocialLink struct {
	ID       string `bson:"id" json:"id"`
	Platform string `bson:"platform" json:"platform"`
	URL      string `bson:"url" json:"url"`
}

// Vault holds the protected asset references exposed behind the PIN gate.
type Vault struct {
	TechRider   string `bson:"techRider" json:"techRider"`
	PressPhotos string `bson:"pressPhotos" json:"pressPhotos"`
}

// Manager is the booking contact shown in the contact section.
type Manager struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Colors is the public page color theme.
type Colors struct {
	Background string `bson:"background" json:"background"`
	Accent     string `bson:"accent" json:"accent"`
	Font       string `bson:"font" json:"font"`
}

// Stats aggregates engagement counters beyond plain page views.
// All fields are written with atomic increments only.
type Stats struct {
	Mobile     int64            `bson:"mobile" json:"mobile"`
	Desktop    int64            `bson:"desktop" json:"desktop"`
	Downloads  map[string]int64 `bson:"downloads" json:"downloads"`
	LinkClicks map[string]int64 `bson:"linkClicks" json:"linkClicks"`
}

// Profile is the root press-kit document, one per artist. The document
// store is the single persistence authority; editor drafts are working
// copies with no durability until saved.
type Profile struct {
	BandName     string           `bson:"bandName" json:"bandName"`
	Tagline      string           `bson:"tagline" json:"tagline"`
	Bio          string           `bson:"bio" json:"bio"`
	HeroImage    string           `bson:"heroImage" json:"heroImage"`
	VaultPin     string           `bson:"vaultPin" json:"vaultPin"`
	Views        int64            `bson:"views" json:"views"`
	VaultUnlocks int64            `bson:"vaultUnlocks" json:"vaultUnlocks"`
	DailyViews   map[string]int64 `bson:"dailyViews" json:"dailyViews"`
	Stats        Stats            `bson:"stats" json:"stats"`
	Font         string           `bson:"font" json:"font"`
	Colors       Colors           `bson:"colors" json:"colors"`
	Sections     []Section        `bson:"sections" json:"sections"`
	Socials      []SocialLink     `bson:"socials" json:"socials"`
	Songs        []Song           `bson:"songs" json:"songs"`
	Tour         []TourDate       `bson:"tour" json:"tour"`
	Videos       []Video          `bson:"videos" json:"videos"`
	Press        []PressItem      `bson:"press" json:"press"`
	Vault        Vault            `bson:"vault" json:"vault"`
	Manager      Manager          `bson:"manager" json:"manager"`
	CreatedAt    time.Time        `bson:"createdAt" json:"createdAt"`
}

// Default presentation values for a freshly bootstrapped profile.
const (
	DefaultVaultPin   = "1234"
	DefaultTagline    = "New Artist Profile"
	DefaultBio        = "Welcome! Describe your sound, mission, and achievements here."
	DefaultHeroImage  = "https://images.unsplash.com/photo-1540039155733-5bb30b53aa14?q=80&w=2874&auto=format&fit=crop"
	DefaultFont       = "font-sans"
	DefaultBandName   = "New Artist"
	DefaultBackground = "#050505"
	DefaultAccent     = "#3b82f6"
	DefaultFontColor  = "#ffffff"
)

// DefaultSections returns the six fixed sections installed at bootstrap,
// in bootstrap order. Fixed sections may later be hidden or reordered
// but are never destroyed.
func DefaultSections() []Section {
	return []Section{
		{ID: "contact", Type: SectionContact, Title: "Contact", Visible: true},
		{ID: "vault", Type: SectionVault, Title: "The Vault Assets", Visible: true},
		{ID: "songs", Type: SectionSongs, Title: "Songs", Visible: true},
		{ID: "videos", Type: SectionVideos, Title: "Videos", Visible: true},
		{ID: "tour", Type: SectionTour, Title: "Tour Dates", Visible: true},
		{ID: "press", Type: SectionPress, Title: "Press & Reviews", Visible: true},
	}
}

// FallbackSections returns the ordering the public renderer substitutes
// for legacy documents that carry no sections list at all. It differs
// from the bootstrap default in membership order; both orderings are
// kept distinct on purpose and the substitution is never written back.
func FallbackSections() []Section {
	return []Section{
		{ID: "songs", Type: SectionSongs, Visible: true},
		{ID: "videos", Type: SectionVideos, Visible: true},
		{ID: "tour", Type: SectionTour, Visible: true},
		{ID: "press", Type: SectionPress, Visible: true},
		{ID: "vault", Type: SectionVault, Visible: true},
		{ID: "contact", Type: SectionContact, Visible: true},
	}
}

// NewProfile builds the default profile document for a first-time
// identity. It is the only place defaults are declared; the bootstrap
// path and any seeding tool both go through it.
func NewProfile(nameHint, emailHint string) *Profile {
	name := nameHint
	if name == "" {
		name = DefaultBandName
	}
	return &Profile{
		BandName:   name,
		Tagline:    DefaultTagline,
		Bio:        DefaultBio,
		HeroImage:  DefaultHeroImage,
		VaultPin:   DefaultVaultPin,
		DailyViews: map[string]int64{},
		Stats: Stats{
			Downloads:  map[string]int64{},
			LinkClicks: map[string]int64{},
		},
		Font:     DefaultFont,
		Colors:   Colors{Background: DefaultBackground, Accent: DefaultAccent, Font: DefaultFontColor},
		Sections: DefaultSections(),
		Socials:  []SocialLink{},
		Songs:    []Song{},
		Tour:     []TourDate{},
		Videos:   []Video{},
		Press:    []PressItem{},
		Manager:  Manager{Name: nameHint, Email: emailHint},
	}
}
