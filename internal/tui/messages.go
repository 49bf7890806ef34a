package tui

import (
	"github.com/mmcdole/herodex/internal/catalog"
	"github.com/mmcdole/herodex/internal/domain"
)

// Message types for the TUI

// CatalogLoadedMsg carries the catalog state after a remote fetch
type CatalogLoadedMsg struct {
	State catalog.State
	Err   error
}

// HeroSavedMsg signals that the form's save finished
type HeroSavedMsg struct {
	Hero    domain.CustomHero
	Name    string
	Created bool
	Found   bool // false when an edited hero vanished
	Err     error
}

// HeroCopiedMsg signals that a remote hero was copied locally
type HeroCopiedMsg struct {
	Source string
	Hero   domain.CustomHero
	Err    error
}

// HeroDeletedMsg signals that a delete finished
type HeroDeletedMsg struct {
	ID      string
	Name    string
	Deleted bool
	Err     error
}

// ImageOpenedMsg signals that the image viewer was launched
type ImageOpenedMsg struct {
	Err error
}

// ClipboardMsg signals that text was copied to the clipboard
type ClipboardMsg struct {
	Text string
	Err  error
}

// ToastExpiredMsg asks the model to drop notifications that are due
type ToastExpiredMsg struct {
	ID string
}

// TickMsg advances the loading spinner
type TickMsg struct{}
