package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mlukyanov/promptstash/internal/client/models"
)

// folders handles the folder subcommands: ls (default), add, rm <n>.
func (a *App) folders(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.listFolders()
	}
	switch args[0] {
	case "ls":
		return a.listFolders()
	case "add":
		return a.addFolder(ctx)
	case "rm":
		return a.removeFolder(ctx, args[1:])
	default:
		return fmt.Errorf("usage: folders [ls|add|rm <number>]")
	}
}

func (a *App) listFolders() error {
	folders := a.lib.ListFolders()
	if len(folders) == 0 {
		printlnFn("No folders.")
		return nil
	}
	for i, f := range folders {
		printlnFn(fmt.Sprintf("%3d %s (%s)", i+1, f.Name, f.Color))
	}
	return nil
}

func (a *App) addFolder(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Folder name", a.out())
	if err != nil {
		return err
	}
	color, err := GetSimpleText(a.reader, "Color (blue, green, purple, orange, pink, gray)", a.out())
	if err != nil {
		return err
	}

	f, err := a.lib.AddFolder(ctx, name, models.FolderColor(color))
	if err != nil {
		return err
	}
	printlnFn("Added folder:", f.Name)
	return nil
}

func (a *App) removeFolder(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: folders rm <number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("not a number: %s", args[0])
	}
	folders := a.lib.ListFolders()
	if n < 1 || n > len(folders) {
		return fmt.Errorf("no folder %d", n)
	}
	f := folders[n-1]

	ok, err := a.lib.RemoveFolder(ctx, f.ID)
	if err != nil {
		return err
	}
	if ok {
		printlnFn("Removed folder:", f.Name, "(its prompts are now unfiled)")
	}
	return nil
}

// pickFolder offers the folder list and returns the chosen folder id, or
// empty for unfiled.
func (a *App) pickFolder() (string, error) {
	folders := a.lib.ListFolders()
	if len(folders) == 0 {
		return "", nil
	}
	for i, f := range folders {
		printlnFn(fmt.Sprintf("%3d %s", i+1, f.Name))
	}
	choice, err := GetSimpleText(a.reader, "Folder number (empty for none)", a.out())
	if err != nil {
		return "", err
	}
	if choice == "" {
		return "", nil
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(folders) {
		printlnFn("No such folder, leaving unfiled.")
		return "", nil
	}
	return folders[n-1].ID, nil
}

// folderName resolves a folder id for display. Dangling references render as
// unfiled.
func (a *App) folderName(id string) string {
	for _, f := range a.lib.ListFolders() {
		if f.ID == id {
			return f.Name
		}
	}
	return "(unfiled)"
}
