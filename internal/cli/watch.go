package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/offday/internal/catalog"
	"github.com/julianstephens/offday/internal/entry"
	"github.com/julianstephens/offday/internal/logger"
	"github.com/julianstephens/offday/internal/watch"
)

type WatchCmd struct {
	Path        string `arg:"" help:"Catalog file to watch (.json or .toml)." type:"existingfile"`
	SearchFlags `embed:""`
	OutputFlags `embed:""`
}

func (c *WatchCmd) Run(ctx *Context) error {
	format, err := c.OutputFlags.format(ctx.Config)
	if err != nil {
		return err
	}

	target := 0
	if c.OffDays != nil {
		target = *c.OffDays
	} else if target, err = entry.OffDays(ctx.context(), entry.Options{}); err != nil {
		return quietAbort(err)
	}

	w, err := watch.NewWatcher(c.Path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", c.Path, err)
	}

	c.refresh(ctx, format, target)
	ctx.printf("\nWatching %s for changes (Ctrl+C to stop)...\n", w.Path)

	return w.Run(ctx.context(), func(change watch.Change) error {
		if change.Kind == watch.ChangeRemoved {
			ctx.printf("\n%s was removed; waiting for it to come back...\n", c.Path)
			return nil
		}
		ctx.printf("\n=== %s changed at %s ===\n", c.Path, time.Now().Format("15:04:05"))
		c.refresh(ctx, format, target)
		return nil
	})
}

// refresh reloads the file and prints a new result. Problems are reported and the
// watch continues, since the next save may fix them.
func (c *WatchCmd) refresh(ctx *Context, format string, target int) {
	cat, err := catalog.Load(c.Path)
	if err == nil {
		err = checkCatalog(cat)
	}
	if err == nil {
		_, err = search(ctx, cat, c.SearchFlags, format, target)
	}
	if err != nil {
		logger.Warn("Watch refresh failed", "path", c.Path, "error", err)
		ctx.printf("Error: %v\n", err)
	}
}
