package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/herodex/internal/domain"
)

// DefaultRecordsKey is the key holding the local hero array
const DefaultRecordsKey = "marvel-custom-heroes"

const maxIDAttempts = 8

// errIDExhausted is returned when the generator keeps handing out taken ids
var errIDExhausted = errors.New("could not allocate a unique hero id")

// RecordStore keeps user-authored heroes as one JSON array under a single key.
// Every operation reads the whole array; every mutation writes it back.
type RecordStore struct {
	kv     domain.KeyValueStore
	key    string
	ids    domain.IDGenerator
	logger *slog.Logger
}

var _ domain.LocalStore = (*RecordStore)(nil)

// NewRecordStore creates a record store. Empty key means DefaultRecordsKey,
// nil ids means timestamp-based identifiers.
func NewRecordStore(kv domain.KeyValueStore, key string, ids domain.IDGenerator, logger *slog.Logger) *RecordStore {
	if logger == nil {
		logger = slog.Default()
	}
	if key == "" {
		key = DefaultRecordsKey
	}
	if ids == nil {
		ids = NewTimestampIDs(nil)
	}
	return &RecordStore{kv: kv, key: key, ids: ids, logger: logger}
}

// ListAll returns the stored heroes in storage order.
// Missing or unreadable data yields an empty list.
func (s *RecordStore) ListAll() []domain.CustomHero {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("failed to read custom heroes", "key", s.key, "error", err)
		return []domain.CustomHero{}
	}
	if !ok || len(data) == 0 {
		return []domain.CustomHero{}
	}

	var heroes []domain.CustomHero
	if err := json.Unmarshal(data, &heroes); err != nil {
		s.logger.Warn("failed to parse custom heroes", "key", s.key, "error", err)
		return []domain.CustomHero{}
	}
	if heroes == nil {
		return []domain.CustomHero{}
	}
	return heroes
}

// Create appends a new hero with a fresh identifier
func (s *RecordStore) Create(fields domain.HeroFields) (domain.CustomHero, error) {
	heroes := s.ListAll()

	id, err := s.allocateID(heroes)
	if err != nil {
		return domain.CustomHero{}, err
	}

	hero := domain.CustomHero{
		ID:         id,
		HeroFields: fields,
		Custom:     true,
	}

	heroes = append(heroes, hero)
	if err := s.persist(heroes); err != nil {
		return domain.CustomHero{}, err
	}

	s.logger.Debug("created custom hero", "id", hero.ID, "name", hero.Name)
	return hero, nil
}

// Update merges patch over the hero with the given id.
// Returns false when no hero matches; nothing is written in that case.
func (s *RecordStore) Update(id string, patch domain.HeroPatch) (domain.CustomHero, bool, error) {
	heroes := s.ListAll()

	idx := indexOf(heroes, id)
	if idx == -1 {
		return domain.CustomHero{}, false, nil
	}

	heroes[idx].HeroFields = patch.Apply(heroes[idx].HeroFields)
	if err := s.persist(heroes); err != nil {
		return domain.CustomHero{}, false, err
	}

	s.logger.Debug("updated custom hero", "id", id)
	return heroes[idx], true, nil
}

// Delete removes the hero with the given id.
// Succeeds only if the stored array got shorter.
func (s *RecordStore) Delete(id string) (bool, error) {
	heroes := s.ListAll()

	kept := make([]domain.CustomHero, 0, len(heroes))
	for _, h := range heroes {
		if h.ID != id {
			kept = append(kept, h)
		}
	}

	if len(kept) == len(heroes) {
		return false, nil
	}

	if err := s.persist(kept); err != nil {
		return false, err
	}

	s.logger.Debug("deleted custom hero", "id", id)
	return true, nil
}

// GetByID returns the hero with the given id
func (s *RecordStore) GetByID(id string) (domain.CustomHero, bool) {
	heroes := s.ListAll()
	if idx := indexOf(heroes, id); idx != -1 {
		return heroes[idx], true
	}
	return domain.CustomHero{}, false
}

func (s *RecordStore) allocateID(heroes []domain.CustomHero) (string, error) {
	for range maxIDAttempts {
		id := s.ids.NewID()
		if indexOf(heroes, id) == -1 {
			return id, nil
		}
	}
	return "", errIDExhausted
}

func (s *RecordStore) persist(heroes []domain.CustomHero) error {
	data, err := json.Marshal(heroes)
	if err != nil {
		return fmt.Errorf("failed to encode custom heroes: %w", err)
	}
	if err := s.kv.Put(s.key, data); err != nil {
		s.logger.Error("failed to save custom heroes", "key", s.key, "error", err)
		return fmt.Errorf("failed to save custom heroes: %w", err)
	}
	return nil
}

func indexOf(heroes []domain.CustomHero, id string) int {
	for i, h := range heroes {
		if h.ID == id {
			return i
		}
	}
	return -1
}
