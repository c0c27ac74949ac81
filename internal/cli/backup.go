package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/offday/internal/backup"
	"github.com/julianstephens/offday/internal/constants"
	"github.com/julianstephens/offday/internal/logger"
	"github.com/julianstephens/offday/internal/storage/sqlite"
)

var errBackupUnsupported = errors.New("backups are only supported for the SQLite store; use pg_dump for PostgreSQL")

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

func backupManager(ctx *Context) (*backup.Manager, error) {
	if ctx.StoreErr != nil {
		return nil, ctx.StoreErr
	}
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, errBackupUnsupported
	}
	if _, err := ctx.LoadStore(); err != nil {
		return nil, err
	}
	return backup.NewManager(store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	ctx.printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	ctx.printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path := mgr.Resolve(c.BackupFile)

	if !c.Yes {
		ok, err := confirm(ctx.context(), "Replace the current database with "+filepath.Base(path)+"?",
			"A backup of the current database is taken first.")
		if err != nil {
			return quietAbort(err)
		}
		if !ok {
			ctx.println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database before restore", "error", err)
	}
	saved, err := mgr.Restore(path)
	if err != nil {
		return err
	}
	if saved != "" {
		ctx.printf("Created backup of current database: %s\n", filepath.Base(saved))
	}
	ctx.println("✓ Database restored successfully!")
	return nil
}

func confirm(ctx context.Context, title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Value(&ok),
	)).WithTheme(huh.ThemeDracula()).RunWithContext(ctx)
	return ok, err
}
