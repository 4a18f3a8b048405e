package cli

import (
	"context"
	"os"
)

func (a *App) export(ctx context.Context) error {
	path, err := a.backup.ExportToFile(ctx, a.config.ExportDir)
	if err != nil {
		return err
	}
	printlnFn("Exported to", path)
	return nil
}

func (a *App) importFile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: import <file>")
		return nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	count, err := a.lib.Import(ctx, data)
	if err != nil {
		return err
	}
	printlnFn("Imported", count, "prompt(s).")
	return nil
}

func (a *App) backupUpload(ctx context.Context) error {
	if err := a.backup.Upload(ctx); err != nil {
		return err
	}
	printlnFn("Backup uploaded.")
	return nil
}
