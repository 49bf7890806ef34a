package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/marvel"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPageSize is the number of remote heroes requested per fetch
	DefaultPageSize = 20

	// LoadErrorMessage is the user-facing message for a failed remote load
	LoadErrorMessage = "Failed to load heroes from Marvel"

	// CopySuffix is appended to the name of a copied remote hero
	CopySuffix = " (Copy)"

	lookupConcurrency = 4
)

// ErrSuperseded is returned when a remote response arrives after a newer
// request was issued. The response is dropped without touching state.
var ErrSuperseded = errors.New("response superseded by a newer request")

// State is a snapshot of the catalog view
type State struct {
	Remote     []domain.Hero
	Local      []domain.CustomHero
	Merged     []domain.Entry
	Loading    bool
	Err        string
	SearchText string
	Page       int
	TotalPages int
	HasMore    bool
}

func initialState() State {
	return State{
		Remote:  []domain.Hero{},
		Local:   []domain.CustomHero{},
		Merged:  []domain.Entry{},
		HasMore: true,
	}
}

// Service merges remote search results with local records and owns the
// pagination, search and error state shown by the presentation layer.
type Service struct {
	client   domain.CatalogClient
	store    domain.LocalStore
	pageSize int
	logger   *slog.Logger

	mu    sync.Mutex
	state State
	seq   uint64 // latest issued remote request
}

// NewService creates a catalog service. pageSize <= 0 means DefaultPageSize.
func NewService(client domain.CatalogClient, store domain.LocalStore, pageSize int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		client:   client,
		store:    store,
		pageSize: pageSize,
		logger:   logger,
		state:    initialState(),
	}
}

// PageSize returns the number of remote heroes requested per fetch
func (s *Service) PageSize() int {
	return s.pageSize
}

// State returns a copy of the current state
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Remote = append([]domain.Hero(nil), s.state.Remote...)
	st.Local = append([]domain.CustomHero(nil), s.state.Local...)
	st.Merged = append([]domain.Entry(nil), s.state.Merged...)
	return st
}

// Initialize loads local records, then the first remote page with no filter
func (s *Service) Initialize(ctx context.Context) error {
	s.reloadLocal()
	return s.fetch(ctx, 0, "", false)
}

// SetSearch replaces the remote list with page 0 of a name-prefix search
func (s *Service) SetSearch(ctx context.Context, text string) error {
	s.mu.Lock()
	s.state.SearchText = text
	s.mu.Unlock()

	return s.fetch(ctx, 0, text, false)
}

// LoadMore appends the next remote page. It is a no-op when there are no
// more pages or a fetch is already in flight.
func (s *Service) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if !s.state.HasMore || s.state.Loading {
		s.mu.Unlock()
		return nil
	}
	page := s.state.Page + 1
	query := s.state.SearchText
	s.mu.Unlock()

	return s.fetch(ctx, page, query, true)
}

// Refresh reloads local records and re-issues the current search at page 0
func (s *Service) Refresh(ctx context.Context) error {
	s.reloadLocal()

	s.mu.Lock()
	query := s.state.SearchText
	s.mu.Unlock()

	return s.fetch(ctx, 0, query, false)
}

// Reset clears the search and remote list, then reloads page 0
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.state.Remote = []domain.Hero{}
	s.state.Page = 0
	s.state.TotalPages = 0
	s.state.HasMore = true
	s.state.SearchText = ""
	s.merge()
	s.mu.Unlock()

	return s.fetch(ctx, 0, "", false)
}

// CreateLocal stores a new local hero and refreshes the merged list
func (s *Service) CreateLocal(fields domain.HeroFields) (domain.CustomHero, error) {
	hero, err := s.store.Create(fields)
	if err != nil {
		s.logger.Error("failed to create custom hero", "error", err)
		return domain.CustomHero{}, err
	}
	s.reloadLocal()
	return hero, nil
}

// UpdateLocal applies patch to a local hero. Returns false when absent.
func (s *Service) UpdateLocal(id string, patch domain.HeroPatch) (domain.CustomHero, bool, error) {
	hero, ok, err := s.store.Update(id, patch)
	if err != nil {
		s.logger.Error("failed to update custom hero", "id", id, "error", err)
		return domain.CustomHero{}, false, err
	}
	if ok {
		s.reloadLocal()
	}
	return hero, ok, nil
}

// DeleteLocal removes a local hero. Returns false when absent.
func (s *Service) DeleteLocal(id string) (bool, error) {
	ok, err := s.store.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete custom hero", "id", id, "error", err)
		return false, err
	}
	if ok {
		s.reloadLocal()
	}
	return ok, nil
}

// CopyRemoteAsLocal saves an editable local copy of a remote hero
func (s *Service) CopyRemoteAsLocal(hero domain.Hero) (domain.CustomHero, error) {
	return s.CreateLocal(CopyFields(hero))
}

// CopyFields derives the fields of a local copy of a remote hero
func CopyFields(hero domain.Hero) domain.HeroFields {
	f := hero.HeroFields
	f.Name = hero.Name + CopySuffix
	f.Thumbnail = domain.Thumbnail{
		Path:      strings.TrimRight(hero.Thumbnail.Path, "/") + "/" + marvel.PortraitUncanny,
		Extension: hero.Thumbnail.Extension,
	}
	return f
}

// GetByID resolves an id against the merged list, then the local store for
// "custom-" ids, then the remote catalog for numeric ids.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	for _, e := range s.state.Merged {
		if e.GetID() == id {
			s.mu.Unlock()
			return e, nil
		}
	}
	s.mu.Unlock()

	if domain.IsCustomID(id) {
		hero, ok := s.store.GetByID(id)
		if !ok {
			return nil, domain.ErrHeroNotFound
		}
		return hero, nil
	}

	n, ok := domain.ParseRemoteID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}

	hero, err := s.client.GetHero(ctx, n)
	if err != nil {
		return nil, err
	}
	return *hero, nil
}

// LookupMany resolves several ids concurrently. Results keep the input
// order; the first failure cancels the rest.
func (s *Service) LookupMany(ctx context.Context, ids []string) ([]domain.Entry, error) {
	results := make([]domain.Entry, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			e, err := s.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			results[i] = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// fetch requests one remote page and applies it unless a newer request
// was issued while it was in flight.
func (s *Service) fetch(ctx context.Context, page int, query string, appendResults bool) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	result, err := s.client.Search(ctx, s.pageSize, page*s.pageSize, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.logger.Debug("discarding stale response", "seq", seq, "latest", s.seq, "page", page, "query", query)
		return ErrSuperseded
	}

	s.state.Loading = false
	if err != nil {
		s.logger.Error("failed to load heroes", "page", page, "query", query, "error", err)
		s.state.Err = LoadErrorMessage
		return err
	}

	if appendResults {
		s.state.Remote = append(s.state.Remote, result.Results...)
	} else {
		s.state.Remote = append([]domain.Hero{}, result.Results...)
	}
	s.state.Page = page
	s.state.TotalPages = TotalPages(result.Total, s.pageSize)
	s.state.HasMore = page+1 < s.state.TotalPages
	s.merge()

	s.logger.Debug("loaded heroes", "page", page, "total", result.Total, "count", len(result.Results))
	return nil
}

// LoadLocal reloads local records without touching the remote list
func (s *Service) LoadLocal() []domain.CustomHero {
	s.reloadLocal()

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CustomHero(nil), s.state.Local...)
}

func (s *Service) reloadLocal() {
	local := s.store.ListAll()

	s.mu.Lock()
	s.state.Local = local
	s.merge()
	s.mu.Unlock()
}

// merge rebuilds Merged as remote followed by local. Caller holds mu.
func (s *Service) merge() {
	merged := make([]domain.Entry, 0, len(s.state.Remote)+len(s.state.Local))
	for _, h := range s.state.Remote {
		merged = append(merged, h)
	}
	for _, h := range s.state.Local {
		merged = append(merged, h)
	}
	s.state.Merged = merged
}

// TotalPages returns ceil(total/pageSize)
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
