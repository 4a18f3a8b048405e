// Package cli provides the interactive command-line client.
//
// It wires configuration, local storage, the remote gateway, and an
// interactive REPL that supports online/offline operation. Every mutation is
// applied locally first; synchronization happens in the background and never
// blocks a command.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and the per-command handlers for details.
package cli
