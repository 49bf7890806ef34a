package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/herodex/internal/catalog"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/notify"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// ImageOpener launches an external viewer for an image URL
type ImageOpener interface {
	Open(url string) error
}

func catalogCmd(svc *catalog.Service, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := op(ctx)
		return CatalogLoadedMsg{State: svc.State(), Err: err}
	}
}

// InitializeCmd loads local heroes and the first remote page
func InitializeCmd(svc *catalog.Service) tea.Cmd {
	return catalogCmd(svc, svc.Initialize)
}

// SearchCmd issues a fresh name-prefix search
func SearchCmd(svc *catalog.Service, text string) tea.Cmd {
	return catalogCmd(svc, func(ctx context.Context) error {
		return svc.SetSearch(ctx, text)
	})
}

// LoadMoreCmd appends the next remote page
func LoadMoreCmd(svc *catalog.Service) tea.Cmd {
	return catalogCmd(svc, svc.LoadMore)
}

// RefreshCmd reloads local heroes and the current search
func RefreshCmd(svc *catalog.Service) tea.Cmd {
	return catalogCmd(svc, svc.Refresh)
}

// ResetCmd clears the search and reloads the first page
func ResetCmd(svc *catalog.Service) tea.Cmd {
	return catalogCmd(svc, svc.Reset)
}

// SaveHeroCmd creates a hero, or updates it when id is set
func SaveHeroCmd(svc *catalog.Service, id string, fields domain.HeroFields) tea.Cmd {
	return func() tea.Msg {
		if id == "" {
			hero, err := svc.CreateLocal(fields)
			return HeroSavedMsg{Hero: hero, Name: fields.Name, Created: true, Found: true, Err: err}
		}
		hero, ok, err := svc.UpdateLocal(id, domain.PatchFrom(fields))
		return HeroSavedMsg{Hero: hero, Name: fields.Name, Found: ok, Err: err}
	}
}

// CopyHeroCmd saves a local copy of a remote hero
func CopyHeroCmd(svc *catalog.Service, hero domain.Hero) tea.Cmd {
	return func() tea.Msg {
		copied, err := svc.CopyRemoteAsLocal(hero)
		return HeroCopiedMsg{Source: hero.Name, Hero: copied, Err: err}
	}
}

// DeleteHeroCmd deletes a local hero
func DeleteHeroCmd(svc *catalog.Service, id, name string) tea.Cmd {
	return func() tea.Msg {
		ok, err := svc.DeleteLocal(id)
		return HeroDeletedMsg{ID: id, Name: name, Deleted: ok, Err: err}
	}
}

// OpenImageCmd opens url in the image viewer
func OpenImageCmd(opener ImageOpener, url string) tea.Cmd {
	return func() tea.Msg {
		return ImageOpenedMsg{Err: opener.Open(url)}
	}
}

// CopyToClipboardCmd copies text to the system clipboard
func CopyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Text: text, Err: clipboard.WriteAll(text)}
	}
}

// ExpireToastCmd fires once n is due. Sticky notifications never expire.
func ExpireToastCmd(n notify.Notification) tea.Cmd {
	if n.Sticky() {
		return nil
	}
	return tea.Tick(n.Duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: n.ID}
	})
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}
