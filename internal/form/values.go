package form

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mmcdole/herodex/internal/domain"
)

// DefaultExtension is used when the form leaves the image extension blank
const DefaultExtension = "jpg"

// Field keys used in Errors
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldImage       = "thumbnail"
	FieldComics      = "comics"
	FieldSeries      = "series"
	FieldStories     = "stories"
)

// fieldOrder is the display order of the fields
var fieldOrder = []string{FieldName, FieldDescription, FieldImage, FieldComics, FieldSeries, FieldStories}

// ErrInvalid is returned when a submission is blocked by validation
var ErrInvalid = errors.New("form has invalid fields")

// Values are the raw contents of the hero form
type Values struct {
	Name        string
	Description string
	ImageURL    string
	Extension   string
	Comics      int
	Series      int
	Stories     int
}

// Errors maps a field key to its message
type Errors map[string]string

// Fields returns the keys with errors in display order
func (e Errors) Fields() []string {
	var out []string
	for _, f := range fieldOrder {
		if _, ok := e[f]; ok {
			out = append(out, f)
		}
	}
	// unknown keys last, sorted for stable output
	var rest []string
	for f := range e {
		if !contains(fieldOrder, f) {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// Validate checks every rule and reports all violations at once
func Validate(v Values) Errors {
	errs := Errors{}

	if strings.TrimSpace(v.Name) == "" {
		errs[FieldName] = "Name is required"
	}
	if strings.TrimSpace(v.Description) == "" {
		errs[FieldDescription] = "Description is required"
	}
	if strings.TrimSpace(v.ImageURL) == "" {
		errs[FieldImage] = "Image URL is required"
	} else if !IsValidURL(v.ImageURL) {
		errs[FieldImage] = "Image URL must be valid"
	}
	if v.Comics < 0 {
		errs[FieldComics] = "Comics count must be positive"
	}
	if v.Series < 0 {
		errs[FieldSeries] = "Series count must be positive"
	}
	if v.Stories < 0 {
		errs[FieldStories] = "Stories count must be positive"
	}

	return errs
}

// IsValidURL reports whether s is an absolute URL. Any scheme is accepted;
// web schemes additionally need a host, slashes around it are optional.
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if !hostSchemes[strings.ToLower(u.Scheme)] {
		return true
	}
	rest := strings.TrimLeft(s[len(u.Scheme)+1:], "/\\")
	if i := strings.IndexAny(rest, "/\\?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	return rest != ""
}

var hostSchemes = map[string]bool{
	"http": true, "https": true, "ws": true, "wss": true, "ftp": true,
}

// ParseCount parses a counter input. Anything unparsable counts as 0.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// FromFields prefills form values from existing hero fields
func FromFields(f domain.HeroFields) Values {
	return Values{
		Name:        f.Name,
		Description: f.Description,
		ImageURL:    f.Thumbnail.Path,
		Extension:   f.Thumbnail.Extension,
		Comics:      f.Comics.Available,
		Series:      f.Series.Available,
		Stories:     f.Stories.Available,
	}
}

// Fields converts form values into hero fields
func (v Values) Fields() domain.HeroFields {
	ext := strings.TrimPrefix(strings.TrimSpace(v.Extension), ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return domain.HeroFields{
		Name:        v.Name,
		Description: v.Description,
		Thumbnail: domain.Thumbnail{
			Path:      strings.TrimSpace(v.ImageURL),
			Extension: ext,
		},
		Comics:  domain.Availability{Available: v.Comics},
		Series:  domain.Availability{Available: v.Series},
		Stories: domain.Availability{Available: v.Stories},
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
