package domain

import "context"

// CatalogClient is the remote character catalog (implemented by the Marvel client).
type CatalogClient interface {
	// Search returns one page of heroes, optionally filtered by name prefix
	Search(ctx context.Context, limit, offset int, namePrefix string) (*Page, error)

	// GetHero looks up a single hero. Returns ErrHeroNotFound when absent.
	GetHero(ctx context.Context, id int) (*Hero, error)
}

// KeyValueStore is the persisted key-value boundary.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists
	Get(key string) ([]byte, bool, error)

	// Put replaces the value stored under key
	Put(key string, value []byte) error

	Close() error
}

// LocalStore owns the user-authored heroes.
// Every mutation persists the full record array.
type LocalStore interface {
	ListAll() []CustomHero
	Create(fields HeroFields) (CustomHero, error)
	Update(id string, patch HeroPatch) (CustomHero, bool, error)
	Delete(id string) (bool, error)
	GetByID(id string) (CustomHero, bool)
}

// IDGenerator issues identifiers for new local heroes.
type IDGenerator interface {
	NewID() string
}
