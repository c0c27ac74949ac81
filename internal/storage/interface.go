package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/offday/internal/models"
)

var (
	ErrNotFound            = errors.New("catalog not found")
	ErrNotInitialized      = errors.New("storage not initialized, run 'offday init' first")
	ErrEmbeddedCredentials = errors.New("connection string must not contain a password")
)

// CatalogInfo describes a stored catalog without loading its courses.
type CatalogInfo struct {
	ID        string
	Name      string
	Courses   int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Catalogs
	// SaveCatalog stores cat under cat.Name, replacing any catalog of that name,
	// including a deleted one.
	SaveCatalog(cat models.Catalog) (CatalogInfo, error)
	GetCatalog(name string) (models.Catalog, error)
	ListCatalogs(includeDeleted bool) ([]CatalogInfo, error)
	DeleteCatalog(name string) error
	RestoreCatalog(name string) error

	// Utils
	GetConfigPath() string
}
