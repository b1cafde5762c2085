// Package sections implements the ordered-section operations shared by
// the editor and the public renderer. All operations are pure over the
// in-memory list: they return a new slice (or a copy with one element
// changed) and never touch the document store.
package sections

import (
	"github.com/google/uuid"

	"github.com/playbackhq/playback/internal/models"
)

// Direction selects a neighbor for Move.
type Direction string

const (
	// Up swaps a section with its predecessor.
	Up Direction = "up"
	// Down swaps a section with its successor.
	Down Direction = "down"
)

// Move swaps the section at index with its neighbor in the given
// direction. Moving the first section up or the last section down is a
// no-op, as is any out-of-range index; Move never wraps.
func Move(list []models.Section, index int, dir Direction) []models.Section {
	out := clone(list)
	switch {
	case index < 0 || index >= len(out):
	case dir == Up && index > 0:
		out[index], out[index-1] = out[index-1], out[index]
	case dir == Down && index < len(out)-1:
		out[index], out[index+1] = out[index+1], out[index]
	}
	return out
}

// ToggleVisibility flips the visible flag of the section at index.
// Out-of-range indexes are a no-op.
func ToggleVisibility(list []models.Section, index int) []models.Section {
	out := clone(list)
	if index >= 0 && index < len(out) {
		out[index].Visible = !out[index].Visible
	}
	return out
}

// AddCustom appends a new custom section with a generated unique id,
// title "New Section", text content kind and empty payload fields.
func AddCustom(list []models.Section) []models.Section {
	out := clone(list)
	return append(out, models.Section{
		ID:          "custom_" + uuid.NewString(),
		Type:        models.SectionCustom,
		Title:       "New Section",
		Visible:     true,
		ContentKind: models.ContentText,
	})
}

// Delete removes the section at index unconditionally. The operation
// performs no type check: callers are responsible for only exposing it
// on custom sections, and invoking it on a fixed section removes that
// section. Out-of-range indexes are a no-op.
func Delete(list []models.Section, index int) []models.Section {
	if index < 0 || index >= len(list) {
		return clone(list)
	}
	out := make([]models.Section, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}

// Settable field names accepted by UpdateField.
const (
	FieldTitle       = "title"
	FieldContentKind = "contentType"
	FieldContent     = "content"
	FieldURL         = "url"
	FieldFileURL     = "fileUrl"
)

// UpdateField locates the section by id and replaces exactly one field,
// leaving every other field and the list order untouched. Sections are
// addressed by id rather than index so that concurrent index-shifting
// operations never invalidate an in-flight field edit. If no section
// matches id, or the field name is unknown, the list is returned
// unchanged.
func UpdateField(list []models.Section, id, field, value string) []models.Section {
	out := clone(list)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		switch field {
		case FieldTitle:
			out[i].Title = value
		case FieldContentKind:
			out[i].ContentKind = models.ContentKind(value)
		case FieldContent:
			out[i].Content = value
		case FieldURL:
			out[i].URL = value
		case FieldFileURL:
			out[i].FileURL = value
		}
		return out
	}
	return out
}

func clone(list []models.Section) []models.Section {
	out := make([]models.Section, len(list))
	copy(out, list)
	return out
}
