package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	DBPath      DebugDBPathCmd      `cmd:"" name:"db-path" help:"Show the store location."`
	DumpCatalog DebugDumpCatalogCmd `cmd:"" help:"Dump a stored catalog's parsed form as JSON."`
	Config      DebugConfigCmd      `cmd:"" help:"Show the effective configuration."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	if ctx.StoreErr != nil {
		return ctx.StoreErr
	}
	return ctx.writeJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpCatalogCmd struct {
	Name string `arg:"" help:"Stored catalog to dump."`
}

func (cmd *DebugDumpCatalogCmd) Run(ctx *Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	cat, err := store.GetCatalog(cmd.Name)
	if err != nil {
		return err
	}
	return ctx.writeJSON(cat)
}

type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *Context) error {
	return ctx.writeJSON(ctx.Config)
}

func (c *Context) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(data))
	return nil
}
