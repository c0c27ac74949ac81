package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if ctx.StoreErr != nil {
		return ctx.StoreErr
	}
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	ctx.printf("Initialized offday storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
