package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/offday/internal/backup"
	"github.com/julianstephens/offday/internal/config"
	"github.com/julianstephens/offday/internal/keyring"
	"github.com/julianstephens/offday/internal/logger"
	"github.com/julianstephens/offday/internal/storage"
	"github.com/julianstephens/offday/internal/storage/postgres"
	"github.com/julianstephens/offday/internal/storage/sqlite"
)

type Context struct {
	// Store is nil when the configured backend could not be opened; StoreErr then says why.
	Store    storage.Provider
	StoreErr error
	Config   config.Config
	Out      io.Writer
	Ctx      context.Context
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// LoadStore returns the configured store after checking it is initialised and its
// schema is supported.
func (c *Context) LoadStore() (storage.Provider, error) {
	if c.StoreErr != nil {
		return nil, c.StoreErr
	}
	if c.Store == nil {
		return nil, storage.ErrNotInitialized
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	return c.Store, nil
}

// PerformAutomaticBackup backs up a SQLite store before a destructive change. Failures
// are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	if _, err := backup.NewManager(store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// OpenStore picks the backend for a db setting: "keyring" reads a PostgreSQL connection
// string from the OS keyring, a postgres:// URL or key=value DSN selects PostgreSQL, and
// anything else is a SQLite file path.
func OpenStore(db string) (storage.Provider, error) {
	if db == keyring.Source {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		logger.Debug("Using PostgreSQL store", "source", keyring.Source)
		return postgres.New(connStr), nil
	}

	if isPostgres(db) {
		if err := postgres.ValidateConnString(db); err != nil {
			return nil, fmt.Errorf("%w (store it with 'offday keyring set' and set db = \"keyring\", or use PGPASSWORD or .pgpass)", err)
		}
		logger.Debug("Using PostgreSQL store", "source", "config")
		return postgres.New(db), nil
	}

	path := config.ExpandPath(db)
	logger.Debug("Using SQLite store", "path", path)
	return sqlite.NewStore(path), nil
}

func isPostgres(db string) bool {
	return postgres.IsConnString(db) || strings.Contains(db, "host=") || strings.Contains(db, "dbname=")
}
