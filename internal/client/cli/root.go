package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the interactive loop until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {

	printlnFn("Welcome to promptstash (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	for {
		fmt.Printf("ps %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		if !a.dispatch(ctx, scanner.Text()) {
			return
		}
	}
}

// dispatch executes one command line. Returns false when the loop should end.
// Handler errors are printed, never fatal: the loop stays up.
func (a *App) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := parts[0]
	args := parts[1:]

	var err error
	switch cmd {
	case "help":
		a.help()
	case "add":
		err = a.addPrompt(ctx)
	case "l", "list":
		err = a.list(args)
	case "show":
		err = a.show(args)
	case "copy":
		err = a.copyPrompt(ctx, args)
	case "star":
		err = a.star(ctx, args)
	case "edit":
		err = a.edit(ctx, args)
	case "delete":
		err = a.deletePrompt(ctx, args)
	case "search":
		err = a.search(args)
	case "folders":
		err = a.folders(ctx, args)
	case "stats":
		a.stats()
	case "theme":
		err = a.theme(ctx, args)
	case "export":
		err = a.export(ctx)
	case "import":
		err = a.importFile(ctx, args)
	case "backup":
		err = a.backupUpload(ctx)
	case "register":
		err = a.register(ctx)
	case "login":
		err = a.login(ctx)
	case "logout":
		err = a.logout(ctx)
	case "sync":
		err = a.syncNow(ctx)
	case "status":
		printlnFn("sync:", string(a.sync.Status()))
	case "exit", "quit":
		printlnFn("Bye!")
		return false
	default:
		printlnFn("Unknown command:", cmd)
	}

	if err != nil {
		printlnFn("Error:", err.Error())
	}
	return true
}

func (a *App) help() {
	printlnFn("Prompts:  add, (l)ist [all|favorites|<folder-id>] [sort], show <n>, copy <n>, star <n>, edit <n>, delete <n>, search <query>")
	printlnFn("Folders:  folders [add|rm <n>|ls]")
	printlnFn("Data:     export, import <file>, backup, stats, theme [light|dark|system]")
	if a.isLoggedIn() {
		printlnFn("Account:  logout, sync, status")
	} else {
		printlnFn("Account:  register, login, status")
	}
	printlnFn("Other:    help, exit")
}
