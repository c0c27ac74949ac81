package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/offday/internal/catalog"
	"github.com/julianstephens/offday/internal/entry"
	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/storage"
	"github.com/julianstephens/offday/internal/validation"
)

type CatalogCmd struct {
	New     CatalogNewCmd     `cmd:"" help:"Enter a new catalog interactively."`
	Import  CatalogImportCmd  `cmd:"" help:"Import a catalog file into the store."`
	Export  CatalogExportCmd  `cmd:"" help:"Write a stored catalog to a file."`
	List    CatalogListCmd    `cmd:"" help:"List stored catalogs." default:"1"`
	Show    CatalogShowCmd    `cmd:"" help:"Print a stored catalog."`
	Delete  CatalogDeleteCmd  `cmd:"" help:"Delete a stored catalog."`
	Restore CatalogRestoreCmd `cmd:"" help:"Restore a deleted catalog."`
}

// findCatalog looks name up among all stored catalogs, deleted ones included.
func findCatalog(store storage.Provider, name string) (storage.CatalogInfo, bool, error) {
	infos, err := store.ListCatalogs(true)
	if err != nil {
		return storage.CatalogInfo{}, false, err
	}
	for _, info := range infos {
		if info.Name == name {
			return info, true, nil
		}
	}
	return storage.CatalogInfo{}, false, nil
}

// checkReplace refuses to overwrite a stored catalog, live or deleted, unless force is set.
func checkReplace(store storage.Provider, name string, force bool) (bool, error) {
	info, found, err := findCatalog(store, name)
	if err != nil || !found {
		return false, err
	}
	if force {
		return true, nil
	}
	if info.DeletedAt != nil {
		return true, fmt.Errorf("deleted catalog %q still exists, use --force to replace it or 'offday catalog restore %s'", name, name)
	}
	return true, fmt.Errorf("catalog %q already exists, use --force to replace it", name)
}

// saveCatalog validates cat and stores it. Replacing a catalog, including a deleted
// one, needs force and takes a backup first.
func saveCatalog(ctx *Context, cat models.Catalog, force bool) (storage.CatalogInfo, error) {
	if err := checkCatalog(cat); err != nil {
		return storage.CatalogInfo{}, err
	}
	store, err := ctx.LoadStore()
	if err != nil {
		return storage.CatalogInfo{}, err
	}

	exists, err := checkReplace(store, cat.Name, force)
	if err != nil {
		return storage.CatalogInfo{}, err
	}
	if exists {
		ctx.PerformAutomaticBackup()
	}
	return store.SaveCatalog(cat)
}

type CatalogNewCmd struct {
	Name  string `arg:"" help:"Name of the new catalog."`
	Force bool   `help:"Replace an existing catalog with the same name."`
}

func (c *CatalogNewCmd) Run(ctx *Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return err
	}
	// Fail before the prompts rather than after them.
	if _, err := checkReplace(store, c.Name, c.Force); err != nil {
		return err
	}
	cat, err := entry.NewCatalog(ctx.context(), c.Name, entry.Options{})
	if err != nil {
		return quietAbort(err)
	}
	info, err := saveCatalog(ctx, cat, c.Force)
	if err != nil {
		return err
	}
	ctx.printf("✓ Saved catalog %q with %d course(s)\n", info.Name, info.Courses)
	return nil
}

type CatalogImportCmd struct {
	Path  string `arg:"" help:"Catalog file (.json or .toml)." type:"existingfile"`
	Name  string `help:"Store under this name instead of the one in the file."`
	Force bool   `help:"Replace an existing catalog with the same name."`
}

func (c *CatalogImportCmd) Run(ctx *Context) error {
	cat, err := catalog.Load(c.Path)
	if err != nil {
		return err
	}
	if c.Name != "" {
		cat.Name = c.Name
	}
	info, err := saveCatalog(ctx, cat, c.Force)
	if err != nil {
		return err
	}
	ctx.printf("✓ Imported catalog %q with %d course(s)\n", info.Name, info.Courses)
	return nil
}

type CatalogExportCmd struct {
	Name string `arg:"" help:"Stored catalog to export."`
	Path string `arg:"" help:"Destination file; the extension picks JSON or TOML." type:"path"`
}

func (c *CatalogExportCmd) Run(ctx *Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return err
	}
	cat, err := store.GetCatalog(c.Name)
	if err != nil {
		return err
	}
	if err := catalog.Save(c.Path, cat); err != nil {
		return err
	}
	ctx.printf("✓ Exported catalog %q to %s\n", cat.Name, c.Path)
	return nil
}

type CatalogListCmd struct {
	All bool `help:"Include deleted catalogs." short:"a"`
}

var listHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var listCellStyle = lipgloss.NewStyle().Padding(0, 1)

func (c *CatalogListCmd) Run(ctx *Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return err
	}
	infos, err := store.ListCatalogs(c.All)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		ctx.println("No catalogs found. Add one with 'offday catalog new' or 'offday catalog import'.")
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		status := "active"
		if info.DeletedAt != nil {
			status = "deleted"
		}
		rows = append(rows, []string{
			info.Name,
			strconv.Itoa(info.Courses),
			info.UpdatedAt.Local().Format("2006-01-02 15:04"),
			status,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Courses", "Updated", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return listCellStyle
		})
	ctx.println(t.Render())
	return nil
}

type CatalogShowCmd struct {
	Name   string `arg:"" help:"Stored catalog to print."`
	Format string `help:"text, json or toml." default:"text" enum:"text,json,toml"`
}

func (c *CatalogShowCmd) Run(ctx *Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return err
	}
	cat, err := store.GetCatalog(c.Name)
	if err != nil {
		return err
	}

	switch c.Format {
	case "json":
		return catalog.Encode(ctx.out(), catalog.FormatJSON, cat)
	case "toml":
		return catalog.Encode(ctx.out(), catalog.FormatTOML, cat)
	}

	ctx.printf("Catalog: %s\n", cat.Name)
	for _, course := range cat.Courses {
		ctx.printf("\n%s\n", course.ID)
		for _, g := range course.Groups {
			ctx.printf("  %s: %s\n", g.ID, strings.Join(validation.FormatPattern(g), "; "))
		}
	}
	return nil
}

type CatalogDeleteCmd struct {
	Name string `arg:"" help:"Stored catalog to delete."`
}

func (c *CatalogDeleteCmd) Run(ctx *Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return err
	}
	info, found, err := findCatalog(store, c.Name)
	if err != nil {
		return err
	}
	if !found || info.DeletedAt != nil {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, c.Name)
	}
	ctx.PerformAutomaticBackup()
	if err := store.DeleteCatalog(c.Name); err != nil {
		return err
	}
	ctx.printf("✓ Deleted catalog %q (restore with 'offday catalog restore %s')\n", c.Name, c.Name)
	return nil
}

type CatalogRestoreCmd struct {
	Name string `arg:"" help:"Deleted catalog to restore."`
}

func (c *CatalogRestoreCmd) Run(ctx *Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return err
	}
	if err := store.RestoreCatalog(c.Name); err != nil {
		return err
	}
	ctx.printf("✓ Restored catalog %q\n", c.Name)
	return nil
}
