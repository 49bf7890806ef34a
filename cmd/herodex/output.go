package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/form"
	"github.com/mmcdole/herodex/internal/marvel"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// format is the output format of listing commands
type format string

const (
	formatText format = "text"
	formatJSON format = "json"
	formatYAML format = "yaml"
)

const (
	idWidth   = 20
	nameWidth = 32
	textWidth = 72
)

func outputFormat(cmd *cobra.Command) format {
	f, _ := cmd.Flags().GetString("output")
	return format(strings.ToLower(strings.TrimSpace(f)))
}

func validateFormat(f format) error {
	switch f {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format: %s", f)
}

// heroRecord is the structured form of an entry in json and yaml output
type heroRecord struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Custom      bool   `json:"custom" yaml:"custom"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Comics      int    `json:"comics" yaml:"comics"`
	Series      int    `json:"series" yaml:"series"`
	Stories     int    `json:"stories" yaml:"stories"`
}

// listing wraps a page of entries with its pagination
type listing struct {
	Page       int          `json:"page" yaml:"page"`
	TotalPages int          `json:"totalPages" yaml:"totalPages"`
	Total      int          `json:"total" yaml:"total"`
	Heroes     []heroRecord `json:"heroes" yaml:"heroes"`
}

func toRecord(e domain.Entry) heroRecord {
	f := e.GetFields()
	image, _ := marvel.DisplayImageURL(e, marvel.PortraitIncredible)
	return heroRecord{
		ID:          e.GetID(),
		Name:        f.Name,
		Description: f.Description,
		Custom:      e.IsLocal(),
		ImageURL:    image,
		Comics:      f.Comics.Available,
		Series:      f.Series.Available,
		Stories:     f.Stories.Available,
	}
}

func toRecords(entries []domain.Entry) []heroRecord {
	out := make([]heroRecord, len(entries))
	for i, e := range entries {
		out[i] = toRecord(e)
	}
	return out
}

// writeStructured encodes data as json or yaml
func writeStructured(w io.Writer, f format, data any) error {
	switch f {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case formatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("unsupported output format: %s", f)
}

// writeTable prints one line per entry
func writeTable(w io.Writer, entries []domain.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No heroes found")
		return
	}
	for _, e := range entries {
		f := e.GetFields()
		kind := "marvel"
		if e.IsLocal() {
			kind = "custom"
		}
		fmt.Fprintf(w, "%s %s %-6s %4d comics %4d series %4d stories\n",
			padding.String(truncate.String(e.GetID(), idWidth), idWidth),
			padding.String(truncate.StringWithTail(f.Name, nameWidth, "…"), nameWidth),
			kind,
			f.Comics.Available, f.Series.Available, f.Stories.Available,
		)
	}
}

// writeDetail prints every field of one entry
func writeDetail(w io.Writer, e domain.Entry) {
	f := e.GetFields()

	kind := "Marvel hero"
	if e.IsLocal() {
		kind = "Custom hero"
	}
	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		desc = "No description available for this hero."
	}

	fmt.Fprintln(w, f.Name)
	fmt.Fprintln(w, strings.Repeat("-", min(textWidth, max(len(f.Name), 8))))
	fmt.Fprintln(w, indent.String(wordwrap.String(desc, textWidth-2), 2))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  ID:      %s\n", e.GetID())
	fmt.Fprintf(w, "  Type:    %s\n", kind)
	if !e.IsLocal() {
		fmt.Fprintf(w, "  Source:  Marvel Comics API\n")
	}
	fmt.Fprintf(w, "  Comics:  %d\n", f.Comics.Available)
	fmt.Fprintf(w, "  Series:  %d\n", f.Series.Available)
	fmt.Fprintf(w, "  Stories: %d\n", f.Stories.Available)
	if image, ok := marvel.DisplayImageURL(e, marvel.PortraitIncredible); ok {
		fmt.Fprintf(w, "  Image:   %s\n", image)
	}
}

// writeValidation prints one line per invalid field
func writeValidation(w io.Writer, errs form.Errors) {
	fmt.Fprintln(w, "Invalid hero:")
	for _, field := range errs.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
	}
}
