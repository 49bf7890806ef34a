package form

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/herodex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() Values {
	return Values{
		Name:        "Test",
		Description: "d",
		ImageURL:    "http://x",
		Extension:   "jpg",
		Comics:      1,
		Series:      2,
		Stories:     3,
	}
}

func TestValidateOK(t *testing.T) {
	assert.Empty(t, Validate(validValues()))
}

func TestValidateReportsAllErrors(t *testing.T) {
	v := validValues()
	v.Name = ""
	v.Description = "   "
	v.ImageURL = ""

	errs := Validate(v)
	assert.Len(t, errs, 3)
	assert.Equal(t, []string{FieldName, FieldDescription, FieldImage}, errs.Fields())
	assert.Equal(t, "Image URL is required", errs[FieldImage])
}

func TestValidateCounters(t *testing.T) {
	v := validValues()
	v.Comics = -1
	v.Stories = -5

	errs := Validate(v)
	assert.Equal(t, []string{FieldComics, FieldStories}, errs.Fields())
	assert.Contains(t, errs.Error(), "comics: Comics count must be positive")
}

func TestIsValidURL(t *testing.T) {
	valid := []string{
		"http://x",
		"https://i.annihil.us/u/prod/marvel/i/mg/c/e0/535fecbbb9784",
		"mailto:someone@example.com",
		" http://padded ",
		"file:///tmp/hero.jpg",
		"http:/x",
		"HTTPS://example.com/a.png",
		"data:image/png;base64,AAAA",
	}
	for _, s := range valid {
		assert.True(t, IsValidURL(s), s)
	}

	invalid := []string{"", "not a url", "/relative/path", "example.com/image", "http://", "http://user@/x", "https://?q"}
	for _, s := range invalid {
		assert.False(t, IsValidURL(s), s)
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 12, ParseCount("12"))
	assert.Equal(t, -3, ParseCount(" -3 "))
	assert.Equal(t, 0, ParseCount(""))
	assert.Equal(t, 0, ParseCount("abc"))
}

func TestValuesFields(t *testing.T) {
	v := validValues()
	v.Extension = ""
	v.ImageURL = " http://x "

	f := v.Fields()
	assert.Equal(t, domain.Thumbnail{Path: "http://x", Extension: DefaultExtension}, f.Thumbnail)
	assert.Equal(t, 2, f.Series.Available)
	assert.Equal(t, validValues(), FromFields(validValues().Fields()))
}

func TestSubmitBlockedByValidation(t *testing.T) {
	f := New(nil)
	saved := false

	err := f.Submit(context.Background(), func(context.Context, domain.HeroFields) error {
		saved = true
		return nil
	})

	assert.ErrorIs(t, err, ErrInvalid)
	assert.False(t, saved)
	assert.Len(t, f.Errors, 3)
	assert.False(t, f.Submitting)
}

func TestSubmitSaves(t *testing.T) {
	f := New(nil)
	f.Values = validValues()

	var got domain.HeroFields
	err := f.Submit(context.Background(), func(_ context.Context, fields domain.HeroFields) error {
		assert.True(t, f.Submitting)
		got = fields
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Test", got.Name)
	assert.False(t, f.Submitting)
}

func TestSubmitSaveFailureKeepsValues(t *testing.T) {
	f := New(nil)
	f.Values = validValues()
	boom := errors.New("boom")

	err := f.Submit(context.Background(), func(context.Context, domain.HeroFields) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, f.Submitting)
	assert.Equal(t, validValues(), f.Values)
}

func TestBeginWhileSubmitting(t *testing.T) {
	f := New(nil)
	f.Values = validValues()

	_, err := f.Begin()
	require.NoError(t, err)

	_, err = f.Begin()
	assert.ErrorIs(t, err, ErrInvalid)

	assert.True(t, f.Complete(nil))
	assert.False(t, f.Complete(errors.New("x")))
}

func TestLoadAndClearError(t *testing.T) {
	f := New(nil)
	_, err := f.Begin()
	require.ErrorIs(t, err, ErrInvalid)

	f.ClearError(FieldName)
	assert.NotContains(t, f.Errors, FieldName)
	assert.Contains(t, f.Errors, FieldDescription)

	hero := domain.Hero{ID: 1, HeroFields: validValues().Fields()}
	f.Load(hero, false)
	assert.Empty(t, f.Errors)
	assert.False(t, f.Editing)
	assert.Equal(t, "Test", f.Values.Name)
	assert.Equal(t, 3, f.Values.Stories)
}
