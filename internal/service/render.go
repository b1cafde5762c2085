package service

import (
	"sort"

	"github.com/playbackhq/playback/internal/models"
)

// RenderedSection is one content block of the public page, in display
// order. Content carries exactly the payload for the section's type
// instead of one shape with optional fields.
type RenderedSection struct {
	ID      string             `json:"id"`
	Type    models.SectionType `json:"type"`
	Title   string             `json:"title,omitempty"`
	Content any                `json:"content"`
}

// Per-type section payloads.
type (
	ContactContent struct {
		Manager models.Manager `json:"manager"`
	}
	VaultContent struct {
		TechRider   string `json:"techRider,omitempty"`
		PressPhotos string `json:"pressPhotos,omitempty"`
	}
	SongsContent struct {
		Songs []models.Song `json:"songs"`
	}
	VideosContent struct {
		Videos []models.Video `json:"videos"`
	}
	TourContent struct {
		Dates []models.TourDate `json:"dates"`
	}
	PressContent struct {
		Items []models.PressItem `json:"items"`
	}
	CustomContent struct {
		Kind    models.ContentKind `json:"kind"`
		Content string             `json:"content,omitempty"`
		URL     string             `json:"url,omitempty"`
		FileURL string             `json:"fileUrl,omitempty"`
	}
)

// Render walks the profile's sections in stored order and produces the
// blocks a viewer may see. Hidden sections are skipped entirely; the
// vault section is additionally skipped unless the viewer's gate is
// unlocked; list sections with nothing to show are skipped. Documents
// with no stored sections at all get the fixed fallback ordering, which
// is a defensive default and never written back.
func Render(p *models.Profile, unlocked bool) []RenderedSection {
	list := p.Sections
	if len(list) == 0 {
		list = models.FallbackSections()
	}

	out := make([]RenderedSection, 0, len(list))
	for _, sec := range list {
		if !sec.Visible {
			continue
		}
		var content any
		switch sec.Type {
		case models.SectionContact:
			content = ContactContent{Manager: p.Manager}
		case models.SectionVault:
			if !unlocked {
				continue
			}
			content = VaultContent{TechRider: p.Vault.TechRider, PressPhotos: p.Vault.PressPhotos}
		case models.SectionSongs:
			if len(p.Songs) == 0 {
				continue
			}
			content = SongsContent{Songs: p.Songs}
		case models.SectionVideos:
			if len(p.Videos) == 0 {
				continue
			}
			content = VideosContent{Videos: p.Videos}
		case models.SectionTour:
			if len(p.Tour) == 0 {
				continue
			}
			content = TourContent{Dates: p.Tour}
		case models.SectionPress:
			if len(p.Press) == 0 {
				continue
			}
			content = PressContent{Items: p.Press}
		case models.SectionCustom:
			content = CustomContent{
				Kind:    sec.ContentKind,
				Content: sec.Content,
				URL:     sec.URL,
				FileURL: sec.FileURL,
			}
		default:
			continue
		}
		out = append(out, RenderedSection{ID: sec.ID, Type: sec.Type, Title: sec.Title, Content: content})
	}
	return out
}

// ChartPoint is one day of the views-over-time chart.
type ChartPoint struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// DownloadCount is one entry of the top-downloads list.
type DownloadCount struct {
	Asset string `json:"asset"`
	Count int64  `json:"count"`
}

// Summary is the dashboard analytics roll-up.
type Summary struct {
	TotalViews    int64           `json:"totalViews"`
	VaultUnlocks  int64           `json:"vaultUnlocks"`
	ConversionPct int64           `json:"conversionPct"`
	Chart         []ChartPoint    `json:"chart"`
	Mobile        int64           `json:"mobile"`
	Desktop       int64           `json:"desktop"`
	TopDownloads  []DownloadCount `json:"topDownloads"`
}

// Summarize derives the dashboard analytics view from a profile: the
// last seven daily buckets in date order, unlock conversion and the
// three most-downloaded assets.
func Summarize(p *models.Profile) Summary {
	dates := make([]string, 0, len(p.DailyViews))
	for d := range p.DailyViews {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > 7 {
		dates = dates[len(dates)-7:]
	}
	chart := make([]ChartPoint, 0, len(dates))
	for _, d := range dates {
		chart = append(chart, ChartPoint{Date: d, Views: p.DailyViews[d]})
	}

	var conversion int64
	if p.Views > 0 {
		conversion = p.VaultUnlocks * 100 / p.Views
	}

	downloads := make([]DownloadCount, 0, len(p.Stats.Downloads))
	for asset, count := range p.Stats.Downloads {
		downloads = append(downloads, DownloadCount{Asset: asset, Count: count})
	}
	sort.Slice(downloads, func(i, j int) bool {
		if downloads[i].Count != downloads[j].Count {
			return downloads[i].Count > downloads[j].Count
		}
		return downloads[i].Asset < downloads[j].Asset
	})
	if len(downloads) > 3 {
		downloads = downloads[:3]
	}

	return Summary{
		TotalViews:    p.Views,
		VaultUnlocks:  p.VaultUnlocks,
		ConversionPct: conversion,
		Chart:         chart,
		Mobile:        p.Stats.Mobile,
		Desktop:       p.Stats.Desktop,
		TopDownloads:  downloads,
	}
}
