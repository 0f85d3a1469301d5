/*
Package main implements an interactive manager for a Wubi-style input-method
dictionary.

The tool owns two text tables: a character file mapping each character to its
code, and a word dictionary mapping codes to ranked candidate lists. It can
generate codes for new words from the character table, merge third-party
dictionary files of unknown encoding and layout, and export the dictionary in
Rime format.

# Usage

Run interactively:

	choein

Any *.txt file placed in the inbox directory (default "update/") is analyzed
and offered as a replacement for the managed tables at startup; the inbox is
emptied afterwards. A non-empty batch file (default "batch_add.txt") is
offered for bulk word entry.

Run as a msgpack IPC server for an input-method frontend:

	choein -serve

# Flags

	-config string
	    Path to the TOML config file (default "config.toml")
	-serve
	    Answer dictionary queries over msgpack stdin/stdout instead of
	    running the interactive menu
	-d  Enable debug logging
	-version
	    Show the version and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/generated/choein/internal/cli"
	"github.com/generated/choein/internal/logger"
	"github.com/generated/choein/internal/utils"
	"github.com/generated/choein/pkg/config"
	"github.com/generated/choein/pkg/dict"
	"github.com/generated/choein/pkg/importer"
	"github.com/generated/choein/pkg/server"
)

const (
	Version = "1.2.0"
	AppName = "choein"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "config.toml", "Path to the TOML config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	serveMode := flag.Bool("serve", false, "Run the msgpack IPC server instead of the menu")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.SetDebug(*debugMode)

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: %s", utils.GetAbsolutePath(*configPath))

	if err := utils.EnsureDir(cfg.Paths.DataDir); err != nil {
		log.Fatalf("Cannot create data directory %s: %v", cfg.Paths.DataDir, err)
	}

	store := dict.NewStore(cfg.Paths.CharFile(), cfg.Paths.WordFile())

	if *serveMode {
		runServer(store)
		return
	}

	prompter := cli.NewPrompter()

	log.Info("Loading dictionary data...")
	if err := store.Load(); err != nil {
		log.Errorf("Some sources are missing, continuing with partial state: %v", err)
	}
	log.Infof("Data loaded (characters: %d, codes: %d)", len(store.Chars), len(store.Words))

	upgraded, err := importer.ProcessInbox(cfg.Paths.InboxDir, store, prompter)
	if err != nil {
		log.Errorf("Inbox processing failed: %v", err)
	}
	if upgraded {
		prompter.Pause("\n--- Upgrade done, press Enter to open the menu ---")
	}

	if utils.FileNonEmpty(cfg.Paths.BatchFile) {
		if prompter.Confirm(fmt.Sprintf("Batch file '%s' has pending words, run batch entry now? (y/n): ", cfg.Paths.BatchFile)) {
			cli.BatchMode(store, prompter, cfg.Paths.BatchFile)
			prompter.Pause("\n--- Batch entry done, press Enter for the menu ---")
		}
	}

	cli.NewMenu(store, cfg, prompter).Run()
}

// runServer loads the tables and serves queries; logs move to stderr so
// stdout stays a clean msgpack stream.
func runServer(store *dict.Store) {
	log.SetOutput(os.Stderr)
	srvLog := logger.NewStderr("ipc")
	if err := store.Load(); err != nil {
		srvLog.Errorf("Some sources are missing, serving partial state: %v", err)
	}
	srv := server.NewServer(store)
	if err := srv.Start(); err != nil {
		srvLog.Fatalf("Server error: %v", err)
	}
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Printf("[ %s ] Wubi dictionary manager", AppName)
	l.Print("", "version", Version)
	l.Print("use -h or --help to see available options")
}
