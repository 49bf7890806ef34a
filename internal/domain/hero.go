package domain

import (
	"strconv"
	"strings"
)

// CustomIDPrefix marks identifiers of locally authored heroes.
const CustomIDPrefix = "custom-"

// Thumbnail locates an image as a path plus file extension.
type Thumbnail struct {
	Path      string `json:"path" yaml:"path"`
	Extension string `json:"extension" yaml:"extension"`
}

// Availability is a usage counter as reported by the API.
type Availability struct {
	Available int `json:"available" yaml:"available"`
}

// HeroFields holds everything about a hero except its identity.
type HeroFields struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Thumbnail   Thumbnail    `json:"thumbnail" yaml:"thumbnail"`
	Comics      Availability `json:"comics" yaml:"comics"`
	Series      Availability `json:"series" yaml:"series"`
	Stories     Availability `json:"stories" yaml:"stories"`
}

// Hero is a character sourced from the Marvel API. Read-only.
type Hero struct {
	ID         int `json:"id" yaml:"id"`
	HeroFields `yaml:",inline"`
}

// CustomHero is a user-authored hero persisted locally.
type CustomHero struct {
	ID         string `json:"id" yaml:"id"`
	HeroFields `yaml:",inline"`
	Custom     bool `json:"isCustom" yaml:"isCustom"`
}

// Entry is the unified list item: either a Hero or a CustomHero.
// The numeric and "custom-" id spaces never collide, so lists of
// entries can be concatenated without de-duplication.
type Entry interface {
	// GetID returns the identifier as a string
	GetID() string

	// GetName returns the display name
	GetName() string

	// GetFields returns the descriptive fields
	GetFields() HeroFields

	// IsLocal reports whether the entry is user-authored
	IsLocal() bool
}

func (h Hero) GetID() string         { return strconv.Itoa(h.ID) }
func (h Hero) GetName() string       { return h.Name }
func (h Hero) GetFields() HeroFields { return h.HeroFields }
func (h Hero) IsLocal() bool         { return false }

func (h CustomHero) GetID() string         { return h.ID }
func (h CustomHero) GetName() string       { return h.Name }
func (h CustomHero) GetFields() HeroFields { return h.HeroFields }
func (h CustomHero) IsLocal() bool         { return h.Custom }

// IsCustomID reports whether id belongs to the local id space.
func IsCustomID(id string) bool {
	return strings.HasPrefix(id, CustomIDPrefix)
}

// ParseRemoteID parses a numeric Marvel identifier.
func ParseRemoteID(id string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// HeroPatch is a partial update. Nil fields are left untouched.
type HeroPatch struct {
	Name        *string
	Description *string
	Thumbnail   *Thumbnail
	Comics      *Availability
	Series      *Availability
	Stories     *Availability
}

// PatchFrom builds a patch that overwrites every field.
func PatchFrom(f HeroFields) HeroPatch {
	return HeroPatch{
		Name:        &f.Name,
		Description: &f.Description,
		Thumbnail:   &f.Thumbnail,
		Comics:      &f.Comics,
		Series:      &f.Series,
		Stories:     &f.Stories,
	}
}

// Apply merges the patch over f field by field.
func (p HeroPatch) Apply(f HeroFields) HeroFields {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Thumbnail != nil {
		f.Thumbnail = *p.Thumbnail
	}
	if p.Comics != nil {
		f.Comics = *p.Comics
	}
	if p.Series != nil {
		f.Series = *p.Series
	}
	if p.Stories != nil {
		f.Stories = *p.Stories
	}
	return f
}

// IsEmpty reports whether the patch changes nothing.
func (p HeroPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Thumbnail == nil &&
		p.Comics == nil && p.Series == nil && p.Stories == nil
}

// Page is one page of remote search results.
type Page struct {
	Offset  int
	Limit   int
	Total   int
	Count   int
	Results []Hero
}
