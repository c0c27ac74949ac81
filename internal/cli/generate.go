package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/offday/internal/catalog"
	"github.com/julianstephens/offday/internal/config"
	"github.com/julianstephens/offday/internal/constants"
	"github.com/julianstephens/offday/internal/entry"
	"github.com/julianstephens/offday/internal/logger"
	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/render"
	"github.com/julianstephens/offday/internal/scheduler"
	"github.com/julianstephens/offday/internal/tui"
	"github.com/julianstephens/offday/internal/validation"
)

// SourceFlags select where a catalog comes from. With neither flag set the catalog
// is entered interactively.
type SourceFlags struct {
	Catalog string `help:"Name of a stored catalog." short:"c" xor:"source"`
	File    string `help:"Catalog file (.json or .toml)." short:"f" type:"path" xor:"source"`
}

func (f SourceFlags) load(ctx *Context) (models.Catalog, error) {
	switch {
	case f.File != "":
		return catalog.Load(f.File)
	case f.Catalog != "":
		store, err := ctx.LoadStore()
		if err != nil {
			return models.Catalog{}, err
		}
		return store.GetCatalog(f.Catalog)
	default:
		return entry.NewCatalog(ctx.context(), "untitled", entry.Options{})
	}
}

// SearchFlags override the [search] config section for one run.
type SearchFlags struct {
	OffDays     *int           `help:"Number of OFF days wanted. Prompted for when omitted." name:"off-days" short:"o"`
	Order       []string       `help:"Course order, comma separated. Defaults to catalog order." sep:","`
	MaxBranches *int64         `help:"Stop after visiting this many search nodes (0 = no limit)." name:"max-branches"`
	Timeout     *time.Duration `help:"Stop the search after this long (0 = no limit)."`
	Parallel    *int           `help:"Explore the first course's groups with this many goroutines."`
}

func (f SearchFlags) scheduler(cfg config.Config) *scheduler.Scheduler {
	maxBranches, timeout, parallel := cfg.Search.MaxBranches, cfg.Search.Timeout, cfg.Search.Parallel
	if f.MaxBranches != nil {
		maxBranches = *f.MaxBranches
	}
	if f.Timeout != nil {
		timeout = *f.Timeout
	}
	if f.Parallel != nil {
		parallel = *f.Parallel
	}
	return scheduler.New(
		scheduler.WithMaxBranches(maxBranches),
		scheduler.WithTimeout(timeout),
		scheduler.WithParallel(parallel),
	)
}

func (f SearchFlags) order(cat models.Catalog) []models.CourseID {
	if len(f.Order) == 0 {
		return cat.CourseOrder()
	}
	order := make([]models.CourseID, 0, len(f.Order))
	for _, id := range f.Order {
		order = append(order, models.CourseID(strings.TrimSpace(id)))
	}
	return order
}

type OutputFlags struct {
	Format string `help:"Output format: grid, json or csv. Defaults to output.format from config."`
}

func (f OutputFlags) format(cfg config.Config) (string, error) {
	switch f.Format {
	case "":
		return cfg.Output.Format, nil
	case constants.FormatGrid, constants.FormatJSON, constants.FormatCSV:
		return f.Format, nil
	default:
		return "", fmt.Errorf("unknown format %q (want grid, json or csv)", f.Format)
	}
}

// checkCatalog refuses catalogs the scheduler cannot use and logs the rest of the report.
func checkCatalog(cat models.Catalog) error {
	result := validation.ValidateCatalog(cat)
	if result.HasErrors() {
		return fmt.Errorf("catalog %q is invalid:\n%s", cat.Name, strings.TrimRight(result.FormatReport(), "\n"))
	}
	for _, p := range result.Problems {
		logger.Warn("Catalog warning", "catalog", cat.Name, "type", p.Type, "problem", p.Description)
	}
	return nil
}

// search runs one query and writes the result in the requested format.
func search(ctx *Context, cat models.Catalog, flags SearchFlags, format string, target int) (scheduler.Result, error) {
	res, err := flags.scheduler(ctx.Config).Search(ctx.context(), cat, flags.order(cat), target)
	if err != nil {
		return scheduler.Result{}, err
	}
	if err := writeResult(ctx.out(), res, cat, ctx.Config, format); err != nil {
		return res, err
	}
	return res, nil
}

func writeResult(w io.Writer, res scheduler.Result, cat models.Catalog, cfg config.Config, format string) error {
	switch format {
	case constants.FormatJSON:
		return render.JSON(w, res.Solutions, cat, jsonOptions(cfg), res.Truncated)
	case constants.FormatCSV:
		return render.CSV(w, res.Solutions)
	}

	if len(res.Solutions) == 0 {
		fmt.Fprintf(w, "\n%s\n", constants.NoSolutionMessage)
	} else {
		fmt.Fprintf(w, "\nFound %d schedule(s) matching criteria:\n", len(res.Solutions))
		if err := render.Text(w, res.Solutions, cat, gridOptions(cfg)); err != nil {
			return err
		}
	}
	if res.Truncated {
		fmt.Fprintf(w, "\nWarning: search stopped after %d branches; more schedules may exist.\n", res.Branches)
	}
	return nil
}

func gridOptions(cfg config.Config) render.GridOptions {
	if cfg.Grid.EndHour == 0 {
		return render.DefaultGridOptions()
	}
	return render.GridOptions{StartHour: cfg.Grid.StartHour, EndHour: cfg.Grid.EndHour}
}

func jsonOptions(cfg config.Config) render.GridOptions {
	if cfg.Output.JSONEndHour == 0 {
		return render.DefaultJSONOptions()
	}
	return render.GridOptions{StartHour: cfg.Grid.StartHour, EndHour: cfg.Output.JSONEndHour}
}

type GenerateCmd struct {
	SourceFlags `embed:""`
	SearchFlags `embed:""`
	OutputFlags `embed:""`
}

func (c *GenerateCmd) Run(ctx *Context) error {
	format, err := c.OutputFlags.format(ctx.Config)
	if err != nil {
		return err
	}
	cat, err := c.SourceFlags.load(ctx)
	if err != nil {
		return err
	}
	if err := checkCatalog(cat); err != nil {
		return err
	}

	if c.OffDays != nil {
		_, err := search(ctx, cat, c.SearchFlags, format, *c.OffDays)
		return err
	}

	// Without --off-days, keep asking until the user quits.
	for {
		target, err := entry.OffDays(ctx.context(), entry.Options{})
		if err != nil {
			return quietAbort(err)
		}
		if _, err := search(ctx, cat, c.SearchFlags, format, target); err != nil {
			return err
		}
		again, err := entry.Again(ctx.context(), entry.Options{})
		if err != nil || !again {
			return quietAbort(err)
		}
	}
}

type BrowseCmd struct {
	SourceFlags `embed:""`
	SearchFlags `embed:""`
}

func (c *BrowseCmd) Run(ctx *Context) error {
	cat, err := c.SourceFlags.load(ctx)
	if err != nil {
		return err
	}
	if err := checkCatalog(cat); err != nil {
		return err
	}

	target := 0
	if c.OffDays != nil {
		target = *c.OffDays
	} else if target, err = entry.OffDays(ctx.context(), entry.Options{}); err != nil {
		return quietAbort(err)
	}

	res, err := c.SearchFlags.scheduler(ctx.Config).Search(ctx.context(), cat, c.SearchFlags.order(cat), target)
	if err != nil {
		return err
	}
	return tui.Run(res, cat, gridOptions(ctx.Config), target)
}

// quietAbort turns a cancelled prompt into a clean exit.
func quietAbort(err error) error {
	if errors.Is(err, entry.ErrAborted) {
		return nil
	}
	return err
}
