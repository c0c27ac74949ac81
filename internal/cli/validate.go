package cli

import (
	"fmt"

	"github.com/julianstephens/offday/internal/catalog"
	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/validation"
)

type ValidateCmd struct {
	Path    string `arg:"" optional:"" help:"Catalog file to check." type:"path"`
	Catalog string `help:"Stored catalog to check." short:"c"`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	var cat models.Catalog
	var err error
	switch {
	case c.Path != "":
		cat, err = catalog.Load(c.Path)
	case c.Catalog != "":
		store, loadErr := ctx.LoadStore()
		if loadErr != nil {
			return loadErr
		}
		cat, err = store.GetCatalog(c.Catalog)
	default:
		return fmt.Errorf("give a catalog file or --catalog NAME")
	}
	if err != nil {
		return err
	}

	result := validation.ValidateCatalog(cat)
	ctx.printf("Catalog %q: %d course(s)\n", cat.Name, len(cat.Courses))
	ctx.printf("%s", result.FormatReport())
	if !result.HasProblems() {
		ctx.println()
	}
	if result.HasErrors() {
		return fmt.Errorf("catalog %q has errors", cat.Name)
	}
	return nil
}
