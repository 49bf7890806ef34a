package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/herodex/internal/catalog"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/form"
	"github.com/mmcdole/herodex/internal/search"
	"github.com/spf13/cobra"
)

var errNotConfigured = errors.New("marvel API keys are not configured, run 'herodex setup' first")

// heroFlags are the editable fields shared by create and edit
type heroFlags struct {
	name        string
	description string
	image       string
	ext         string
	comics      int
	series      int
	stories     int
}

func (h *heroFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&h.name, "name", "", "hero name")
	cmd.Flags().StringVar(&h.description, "description", "", "hero description")
	cmd.Flags().StringVar(&h.image, "image", "", "image URL")
	cmd.Flags().StringVar(&h.ext, "ext", form.DefaultExtension, "image file extension")
	cmd.Flags().IntVar(&h.comics, "comics", 0, "number of comics")
	cmd.Flags().IntVar(&h.series, "series", 0, "number of series")
	cmd.Flags().IntVar(&h.stories, "stories", 0, "number of stories")
}

func (h *heroFlags) values() form.Values {
	return form.Values{
		Name:        h.name,
		Description: h.description,
		ImageURL:    h.image,
		Extension:   h.ext,
		Comics:      h.comics,
		Series:      h.series,
		Stories:     h.stories,
	}
}

// patch holds only the flags the user set. Base fills the parts of the
// thumbnail that were left alone.
func (h *heroFlags) patch(cmd *cobra.Command, base domain.HeroFields) domain.HeroPatch {
	changed := cmd.Flags().Changed
	next := h.values().Fields()

	var p domain.HeroPatch
	if changed("name") {
		p.Name = &next.Name
	}
	if changed("description") {
		p.Description = &next.Description
	}
	if changed("image") || changed("ext") {
		thumb := base.Thumbnail
		if changed("image") {
			thumb.Path = next.Thumbnail.Path
		}
		if changed("ext") {
			thumb.Extension = next.Thumbnail.Extension
		}
		p.Thumbnail = &thumb
	}
	if changed("comics") {
		p.Comics = &next.Comics
	}
	if changed("series") {
		p.Series = &next.Series
	}
	if changed("stories") {
		p.Stories = &next.Stories
	}
	return p
}

// withEnv opens the environment for the duration of fn
func withEnv(open envFunc, path func() string, fn func(e *env) error) error {
	e, err := open(path())
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

func newSearchCmd(open envFunc, path func() string) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search [prefix]",
		Short: "Search Marvel heroes by name prefix",
		Long: `Search the Marvel catalog. Without a prefix every hero is listed,
one page at a time.

Examples:
  herodex search spider
  herodex search --page 2
  herodex search hulk -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("page must be 1 or greater")
			}
			prefix := ""
			if len(args) == 1 {
				prefix = strings.TrimSpace(args[0])
			}

			return withEnv(open, path, func(e *env) error {
				if !e.cfg.IsConfigured() {
					return errNotConfigured
				}

				size := e.catalog.PageSize()
				result, err := e.client.Search(cmd.Context(), size, (page-1)*size, prefix)
				if err != nil {
					return fmt.Errorf("%s: %w", catalog.LoadErrorMessage, err)
				}

				entries := make([]domain.Entry, len(result.Results))
				for i, h := range result.Results {
					entries[i] = h
				}
				totalPages := catalog.TotalPages(result.Total, size)

				w := cmd.OutOrStdout()
				if f := outputFormat(cmd); f != formatText {
					return writeStructured(w, f, listing{
						Page:       page,
						TotalPages: totalPages,
						Total:      result.Total,
						Heroes:     toRecords(entries),
					})
				}

				writeTable(w, entries)
				if totalPages > 0 {
					fmt.Fprintf(w, "\npage %d of %d (%d heroes)\n", page, totalPages, result.Total)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	return cmd
}

func newShowCmd(open envFunc, path func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID...",
		Short: "Show heroes by id",
		Long: `Show every field of one or more heroes. Numeric ids are looked up
in the Marvel catalog, custom-<n> ids in the local collection.

Examples:
  herodex show 1009610
  herodex show 1009610 custom-1717171717171 -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(open, path, func(e *env) error {
				for _, id := range args {
					if !domain.IsCustomID(id) && !e.cfg.IsConfigured() {
						return errNotConfigured
					}
				}

				entries, err := e.catalog.LookupMany(cmd.Context(), args)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if f := outputFormat(cmd); f != formatText {
					if len(entries) == 1 {
						return writeStructured(w, f, toRecord(entries[0]))
					}
					return writeStructured(w, f, toRecords(entries))
				}

				for i, entry := range entries {
					if i > 0 {
						fmt.Fprintln(w)
					}
					writeDetail(w, entry)
				}
				return nil
			})
		},
	}
}

func newListCmd(open envFunc, path func() string) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List custom heroes",
		Long: `List the heroes in the local collection in the order they were
created. With --match, heroes are fuzzy-matched by name, best first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(open, path, func(e *env) error {
				local := e.catalog.LoadLocal()
				if match != "" {
					local = search.RankLocal(match, local)
				}

				entries := make([]domain.Entry, len(local))
				for i, h := range local {
					entries[i] = h
				}

				w := cmd.OutOrStdout()
				if f := outputFormat(cmd); f != formatText {
					return writeStructured(w, f, toRecords(entries))
				}
				writeTable(w, entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "fuzzy-match hero names")
	return cmd
}

func newCreateCmd(open envFunc, path func() string) *cobra.Command {
	var flags heroFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a custom hero",
		Long: `Create a hero in the local collection.

Example:
  herodex create --name "Squirrel Girl" --description "Unbeatable" \
    --image https://example.com/squirrel-girl --comics 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := flags.values()
			if errs := form.Validate(v); len(errs) > 0 {
				writeValidation(cmd.ErrOrStderr(), errs)
				return form.ErrInvalid
			}

			return withEnv(open, path, func(e *env) error {
				hero, err := e.catalog.CreateLocal(v.Fields())
				if err != nil {
					return fmt.Errorf("failed to create hero: %w", err)
				}
				return writeResult(cmd, hero, fmt.Sprintf("✓ Hero %q created with id %s", hero.Name, hero.ID))
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newEditCmd(open envFunc, path func() string) *cobra.Command {
	var flags heroFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a custom hero",
		Long: `Edit a hero in the local collection. Only the flags given are
changed. Marvel heroes are read-only; use 'herodex copy' first.

Example:
  herodex edit custom-1717171717171 --comics 13`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !domain.IsCustomID(id) {
				return fmt.Errorf("hero %s is read-only, copy it with 'herodex copy %s'", id, id)
			}

			return withEnv(open, path, func(e *env) error {
				existing, err := e.catalog.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}

				patch := flags.patch(cmd, existing.GetFields())
				if patch.IsEmpty() {
					return fmt.Errorf("nothing to change, pass at least one field flag")
				}

				if errs := form.Validate(form.FromFields(patch.Apply(existing.GetFields()))); len(errs) > 0 {
					writeValidation(cmd.ErrOrStderr(), errs)
					return form.ErrInvalid
				}

				hero, ok, err := e.catalog.UpdateLocal(id, patch)
				if err != nil {
					return fmt.Errorf("failed to update hero: %w", err)
				}
				if !ok {
					return fmt.Errorf("%w: %s", domain.ErrHeroNotFound, id)
				}
				return writeResult(cmd, hero, fmt.Sprintf("✓ Hero %q updated", hero.Name))
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newDeleteCmd(open envFunc, path func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a custom hero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !domain.IsCustomID(id) {
				return fmt.Errorf("hero %s is read-only and cannot be deleted", id)
			}

			return withEnv(open, path, func(e *env) error {
				ok, err := e.catalog.DeleteLocal(id)
				if err != nil {
					return fmt.Errorf("failed to delete hero: %w", err)
				}
				if !ok {
					return fmt.Errorf("%w: %s", domain.ErrHeroNotFound, id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Hero %s deleted\n", id)
				return nil
			})
		},
	}
}

func newCopyCmd(open envFunc, path func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "copy ID",
		Short: "Copy a Marvel hero into the local collection",
		Long: `Save an editable copy of a Marvel hero. The copy is named
"<name> (Copy)" and uses the large portrait image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if domain.IsCustomID(id) {
				return fmt.Errorf("hero %s is already a custom hero", id)
			}

			return withEnv(open, path, func(e *env) error {
				if !e.cfg.IsConfigured() {
					return errNotConfigured
				}

				entry, err := e.catalog.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				remote, ok := entry.(domain.Hero)
				if !ok {
					return fmt.Errorf("hero %s is not a Marvel hero", id)
				}

				hero, err := e.catalog.CopyRemoteAsLocal(remote)
				if err != nil {
					return fmt.Errorf("failed to copy hero: %w", err)
				}
				return writeResult(cmd, hero, fmt.Sprintf("✓ Copy of %q created with id %s", remote.Name, hero.ID))
			})
		},
	}
}

// writeResult prints a mutated hero in the requested format
func writeResult(cmd *cobra.Command, hero domain.CustomHero, message string) error {
	w := cmd.OutOrStdout()
	if f := outputFormat(cmd); f != formatText {
		return writeStructured(w, f, toRecord(hero))
	}
	fmt.Fprintln(w, message)
	return nil
}
