package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/offday/internal/backup"
	"github.com/julianstephens/offday/internal/keyring"
	"github.com/julianstephens/offday/internal/storage/sqlite"
	"github.com/julianstephens/offday/internal/validation"
)

type DoctorCmd struct{}

// schemaReporter is implemented by stores that run migrations.
type schemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}

type check struct {
	name string
	run  func(*Context) error
	// warnOnly checks print a warning instead of failing the run.
	warnOnly bool
	// needsStore checks are skipped when the store cannot be loaded.
	needsStore bool
}

var doctorChecks = []check{
	{name: "Configuration", run: checkConfig},
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsStore: true},
	{name: "Catalogs valid", run: checkCatalogs, needsStore: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true, needsStore: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	storeOK := true
	for _, c := range doctorChecks {
		if c.needsStore && !storeOK {
			ctx.printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
		if c.name == "Database reachable" && err != nil {
			storeOK = false
		}
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *Context) error {
	if err := ctx.Config.Validate(); err != nil {
		return err
	}
	if ctx.Config.File == "" {
		ctx.printf("   Using built-in defaults (no config file found)\n")
	} else {
		ctx.printf("   Config file: %s\n", ctx.Config.File)
	}
	return nil
}

func checkDBReachable(ctx *Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := store.(*sqlite.Store); ok {
		var one int
		if err := s.GetDB().QueryRow("SELECT 1").Scan(&one); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	reporter, ok := ctx.Store.(schemaReporter)
	if !ok {
		return nil
	}
	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'offday init')", current, latest)
	}
	return nil
}

func checkCatalogs(ctx *Context) error {
	infos, err := ctx.Store.ListCatalogs(false)
	if err != nil {
		return fmt.Errorf("failed to list catalogs: %w", err)
	}
	var bad []string
	for _, info := range infos {
		cat, err := ctx.Store.GetCatalog(info.Name)
		if err != nil {
			return fmt.Errorf("failed to read catalog %q: %w", info.Name, err)
		}
		if validation.ValidateCatalog(cat).HasErrors() {
			bad = append(bad, info.Name)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("catalogs with errors: %v (see 'offday validate --catalog NAME')", bad)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	backups, err := backup.NewManager(store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'offday backup create'")
	}
	return nil
}

func checkKeyring(ctx *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
