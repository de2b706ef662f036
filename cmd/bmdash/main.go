package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/bmdash/internal/config"
	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/exporter"
	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/logging"
	"github.com/nikbrunner/bmdash/internal/state"
	"github.com/nikbrunner/bmdash/internal/storage"
	"github.com/nikbrunner/bmdash/internal/tui"
	"github.com/nikbrunner/bmdash/internal/watcher"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "html":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "state":
			if len(os.Args) >= 3 && os.Args[2] == "reset" {
				runStateReset()
				return
			}
			runStateShow()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `bmdash - browser bookmarks as a tabbed dashboard

Usage:
  bmdash                Open interactive dashboard
  bmdash html [path]    Render the dashboard to a standalone HTML page
  bmdash state          Print persisted collapse state
  bmdash state reset    Forget all collapse state
  bmdash help           Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    tab/S-tab   Next/previous tab
    1-9         Jump to tab

  Actions:
    Enter/Space Collapse/expand group, open bookmark
    o           Open bookmark in browser
    Y           Copy URL to clipboard

  Other:
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/bmdash/config.toml (override with $BMDASH_CONFIG)
  Env vars with prefix BMDASH_, e.g. BMDASH_BOOKMARKS_PATH
`
	fmt.Print(help)
}

// env is the wiring shared by every command.
type env struct {
	cfg      config.Config
	logger   *zap.Logger
	backend  storage.Storage
	store    *state.Store
	provider importer.FileProvider
	opts     dashboard.Options
}

func setup() *env {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	backend, err := storage.Open(cfg.State.Backend, cfg.State.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening state storage: %v\n", err)
		os.Exit(1)
	}

	if db, ok := backend.(*storage.SQLiteStorage); ok {
		version, err := db.SchemaVersion()
		if err != nil {
			logger.Warn("read state schema version", zap.Error(err))
		} else {
			logger.Debug("state schema", zap.Int("version", version))
		}
	}

	logger.Info("starting",
		zap.String("bookmarks", cfg.Bookmarks.Path),
		zap.String("state_backend", cfg.State.Backend),
		zap.String("state_path", cfg.State.Path))

	return &env{
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		store:    state.New(backend, state.WithLogger(logger)),
		provider: importer.FileProvider{Path: cfg.Bookmarks.Path, Format: cfg.Bookmarks.Format},
		opts: dashboard.Options{
			FaviconEndpoint: cfg.Favicon.Endpoint,
			FaviconSize:     cfg.Favicon.Size,
		},
	}
}

// close flushes pending state writes and releases the backend.
func (e *env) close() {
	e.store.Wait()
	if err := e.backend.Close(); err != nil {
		e.logger.Warn("close state storage", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// runTUI runs the full interactive dashboard.
func runTUI() {
	e := setup()
	defer e.close()

	params := tui.AppParams{
		Provider: e.provider,
		Store:    e.store,
		Logger:   e.logger,
		Options:  e.opts,
	}

	if e.cfg.Watch {
		w, err := watcher.New(e.cfg.Bookmarks.Path, watcher.WithLogger(e.logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
			os.Exit(1)
		}
		if err := w.Start(); err != nil {
			// The dashboard still works without live reload.
			e.logger.Warn("watch bookmarks", zap.Error(err))
		} else {
			defer w.Stop()
			params.Changes = w.Changed()
		}
	}

	app := tui.NewApp(params)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		e.close()
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runExport renders the dashboard to a static HTML file.
func runExport(outputPath string) {
	e := setup()
	defer e.close()

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting export path: %v\n", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	states := e.store.Load(ctx)
	root, err := e.provider.Tree(ctx)
	if err != nil {
		e.close()
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	d := dashboard.Build(root, e.store, e.opts)
	html, err := exporter.ExportHTML(d)
	if err != nil {
		e.close()
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		e.close()
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	cards := 0
	for _, p := range d.Panels {
		cards += p.CardCount()
	}
	fmt.Printf("Exported %d tabs and %d bookmarks to %s (%d collapse states)\n",
		len(d.Tabs), cards, outputPath, len(states))
}

// runStateShow prints the persisted collapse flags, one per line.
func runStateShow() {
	e := setup()
	defer e.close()

	states := e.store.Load(context.Background())
	if len(states) == 0 {
		fmt.Println("No collapse state saved")
		return
	}

	ids := make([]string, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		flag := "expanded"
		if states[id] {
			flag = "collapsed"
		}
		fmt.Printf("%s\t%s\n", id, flag)
	}
}

// runStateReset clears every collapse flag.
func runStateReset() {
	e := setup()
	defer e.close()

	e.store.Load(context.Background())
	e.store.Reset()
	fmt.Println("Collapse state cleared")
}
