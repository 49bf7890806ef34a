package form

import (
	"context"
	"log/slog"

	"github.com/mmcdole/herodex/internal/domain"
)

// SaveFunc persists validated hero fields
type SaveFunc func(ctx context.Context, fields domain.HeroFields) error

// Form tracks one create/edit session: current values, field errors and
// whether a save is pending.
type Form struct {
	Values     Values
	Errors     Errors
	Editing    bool
	Submitting bool

	logger *slog.Logger
}

// New returns an empty form for creating a hero
func New(logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{
		Values: Values{Extension: DefaultExtension},
		Errors: Errors{},
		logger: logger,
	}
}

// Load prefills the form from an existing entry
func (f *Form) Load(e domain.Entry, editing bool) {
	f.Values = FromFields(e.GetFields())
	if f.Values.Extension == "" {
		f.Values.Extension = DefaultExtension
	}
	f.Errors = Errors{}
	f.Editing = editing
	f.Submitting = false
}

// ClearError drops the error of a field the user is editing
func (f *Form) ClearError(field string) {
	delete(f.Errors, field)
}

// Begin validates the form and marks it submitting. It returns the fields
// to save, or ErrInvalid with the field errors recorded on the form.
func (f *Form) Begin() (domain.HeroFields, error) {
	if f.Submitting {
		return domain.HeroFields{}, ErrInvalid
	}
	f.Errors = Validate(f.Values)
	if len(f.Errors) > 0 {
		return domain.HeroFields{}, ErrInvalid
	}
	f.Submitting = true
	return f.Values.Fields(), nil
}

// Complete ends a pending save. A failed save is logged and the form stays
// open; it returns true when the form can be closed.
func (f *Form) Complete(err error) bool {
	f.Submitting = false
	if err != nil {
		f.logger.Error("failed to save hero", "name", f.Values.Name, "error", err)
		return false
	}
	return true
}

// Submit validates and saves synchronously
func (f *Form) Submit(ctx context.Context, save SaveFunc) error {
	fields, err := f.Begin()
	if err != nil {
		return err
	}
	err = save(ctx, fields)
	f.Complete(err)
	return err
}
