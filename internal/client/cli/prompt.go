package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mlukyanov/promptstash/internal/client/library"
	"github.com/mlukyanov/promptstash/internal/client/models"
)

// currentListing returns the prompts in display order under the active
// filter and sort mode. Commands addressing prompts by number resolve
// against this listing.
func (a *App) currentListing() []models.Prompt {
	prompts := a.lib.ListPrompts(a.filter)
	library.SortPrompts(prompts, a.sort)
	return prompts
}

// resolveArg turns a 1-based listing number into a prompt.
func (a *App) resolveArg(args []string) (models.Prompt, error) {
	if len(args) == 0 {
		return models.Prompt{}, fmt.Errorf("usage: <command> <number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return models.Prompt{}, fmt.Errorf("not a number: %s", args[0])
	}
	listing := a.currentListing()
	if n < 1 || n > len(listing) {
		return models.Prompt{}, fmt.Errorf("no prompt %d (listing has %d)", n, len(listing))
	}
	return listing[n-1], nil
}

func (a *App) addPrompt(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out())
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Body", a.out())
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category", a.out())
	if err != nil {
		return err
	}
	tags, err := GetTags(a.reader, a.out())
	if err != nil {
		return err
	}
	folderID, err := a.pickFolder()
	if err != nil {
		return err
	}

	p, err := a.lib.AddPrompt(ctx, title, body, category, tags, folderID, false)
	if err != nil {
		printlnFn("Warning: prompt added but not saved locally:", err.Error())
		return nil
	}
	printlnFn("Added:", p.Title)
	return nil
}

// list shows the catalogue. Optional args set the filter (all, favorites, or
// a folder id) and the sort mode for this and subsequent listings.
func (a *App) list(args []string) error {
	for _, arg := range args {
		switch arg {
		case library.FilterAll, library.FilterFavorites:
			a.filter = arg
		case string(library.SortDateDesc), string(library.SortDateAsc),
			string(library.SortAlphabetical), string(library.SortCategory),
			string(library.SortMostUsed), string(library.SortLastUsed):
			a.sort = library.SortMode(arg)
		default:
			a.filter = arg
		}
	}

	listing := a.currentListing()
	if len(listing) == 0 {
		printlnFn("No prompts.")
		return nil
	}
	for i, p := range listing {
		printlnFn(formatPromptLine(i+1, p))
	}
	return nil
}

func formatPromptLine(n int, p models.Prompt) string {
	star := " "
	if p.Starred {
		star = "*"
	}
	state := ""
	if p.SyncState == models.SyncStatePending {
		state = " [pending]"
	}
	tags := ""
	if len(p.Tags) > 0 {
		tags = " #" + strings.Join(p.Tags, " #")
	}
	return fmt.Sprintf("%3d %s %s (%s, used %d)%s%s", n, star, p.Title, p.Category, p.UseCount, tags, state)
}

func (a *App) show(args []string) error {
	p, err := a.resolveArg(args)
	if err != nil {
		return err
	}
	printlnFn("Title:   ", p.Title)
	printlnFn("Category:", p.Category)
	if len(p.Tags) > 0 {
		printlnFn("Tags:    ", strings.Join(p.Tags, ", "))
	}
	if p.FolderID != "" {
		printlnFn("Folder:  ", a.folderName(p.FolderID))
	}
	printlnFn("Created: ", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	printlnFn("Used:    ", p.UseCount, "times")
	printlnFn("")
	printlnFn(p.Body)
	return nil
}

// copyPrompt prints the body for pasting and records the use.
func (a *App) copyPrompt(ctx context.Context, args []string) error {
	p, err := a.resolveArg(args)
	if err != nil {
		return err
	}
	printlnFn(p.Body)
	return a.lib.RecordUse(ctx, p.ID)
}

func (a *App) star(ctx context.Context, args []string) error {
	p, err := a.resolveArg(args)
	if err != nil {
		return err
	}
	starred, err := a.lib.ToggleStar(ctx, p.ID)
	if err != nil {
		return err
	}
	if starred != nil && *starred {
		printlnFn("Starred:", p.Title)
	} else {
		printlnFn("Unstarred:", p.Title)
	}
	return nil
}

// edit re-prompts every field, empty input keeping the current value.
func (a *App) edit(ctx context.Context, args []string) error {
	p, err := a.resolveArg(args)
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", p.Title), a.out())
	if err != nil {
		return err
	}
	if title == "" {
		title = p.Title
	}
	body, err := GetMultiline(a.reader, "Body (empty keeps current)", a.out())
	if err != nil {
		return err
	}
	if body == "" {
		body = p.Body
	}
	category, err := GetSimpleText(a.reader, fmt.Sprintf("Category [%s]", p.Category), a.out())
	if err != nil {
		return err
	}
	if category == "" {
		category = p.Category
	}

	ok, err := a.lib.UpdatePrompt(ctx, p.ID, title, body, category, p.Tags, p.FolderID, p.Starred)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Prompt no longer exists.")
		return nil
	}
	printlnFn("Updated:", title)
	return nil
}

func (a *App) deletePrompt(ctx context.Context, args []string) error {
	p, err := a.resolveArg(args)
	if err != nil {
		return err
	}
	ok, err := a.lib.RemovePrompt(ctx, p.ID)
	if err != nil {
		return err
	}
	if ok {
		printlnFn("Deleted:", p.Title)
	}
	return nil
}

func (a *App) search(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: search <query>")
	}
	query := strings.Join(args, " ")
	matches := a.lib.Search(query)
	if len(matches) == 0 {
		printlnFn("No matches.")
		return nil
	}
	library.SortPrompts(matches, a.sort)
	for i, p := range matches {
		printlnFn(formatPromptLine(i+1, p))
	}
	return nil
}

func (a *App) stats() {
	s := a.lib.Stats()
	printlnFn("Prompts:  ", s.TotalPrompts)
	printlnFn("Uses:     ", s.TotalUses)
	printlnFn("Favorites:", s.Favorites)
	printlnFn("Folders:  ", s.Folders)
	if len(s.TopPrompts) > 0 {
		printlnFn("Most used:")
		for _, p := range s.TopPrompts {
			printlnFn(fmt.Sprintf("  %s (%d)", p.Title, p.UseCount))
		}
	}
	if len(s.Categories) > 0 {
		printlnFn("Categories:")
		for _, c := range s.Categories {
			printlnFn(fmt.Sprintf("  %s: %d", c.Category, c.Count))
		}
	}
}

func (a *App) theme(ctx context.Context, args []string) error {
	s := a.lib.Settings()
	if len(args) == 0 {
		printlnFn("Theme:", string(s.Theme))
		return nil
	}
	switch models.Theme(args[0]) {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
		s.Theme = models.Theme(args[0])
	default:
		return fmt.Errorf("unknown theme: %s", args[0])
	}
	return a.lib.UpdateSettings(ctx, s)
}
