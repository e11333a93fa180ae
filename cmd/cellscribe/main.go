// Package main is the entry point for the cellscribe CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/dshills/cellscribe/internal/awareness"
	"github.com/dshills/cellscribe/internal/backend"
	"github.com/dshills/cellscribe/internal/config"
	"github.com/dshills/cellscribe/internal/diff"
	"github.com/dshills/cellscribe/internal/engine"
	"github.com/dshills/cellscribe/internal/live"
	"github.com/dshills/cellscribe/internal/notebook"
	"github.com/dshills/cellscribe/internal/script"
	"github.com/dshills/cellscribe/internal/tui"
	"github.com/dshills/cellscribe/internal/typing"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	ConfigPath  string
	File        string
	Cell        string
	Content     string
	ContentFile string
	SpeedMS     int
	PaceScript  string

	Add      bool
	Above    bool
	CellType string
	Insert   int
	Delete   bool
	Read     bool
	IDAt     int

	Session bool
	Watch   bool
	Listen  string

	Prompt string
	Model  string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.SpeedMS >= 0 {
		cfg.TypingSpeedMS = opts.SpeedMS
	}
	if opts.PaceScript != "" {
		cfg.PaceScript = opts.PaceScript
	}
	if opts.Listen != "" {
		cfg.ListenAddr = opts.Listen
	}

	if opts.File == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		return 2
	}

	content, err := resolveContent(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var pacers []typing.Pacer

	// A config reload rescales delays of an in-flight replay, unless the
	// pace was pinned on the command line.
	if opts.SpeedMS < 0 {
		var paceMS atomic.Int64
		paceMS.Store(int64(cfg.TypingSpeedMS))
		if w, err := config.Watch(opts.ConfigPath, func(c config.Config) {
			paceMS.Store(int64(c.TypingSpeedMS))
		}); err == nil {
			defer w.Close()
		}
		pacers = append(pacers, reloadPacer(cfg.TypingSpeed(), func() time.Duration {
			return time.Duration(paceMS.Load()) * time.Millisecond
		}))
	}

	if cfg.PaceScript != "" {
		pacer, err := script.Load(cfg.PaceScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer pacer.Close()
		pacers = append(pacers, pacer.Delay)
	}

	simOpts := []typing.Option{typing.WithHighlightCap(cfg.HighlightCap())}
	if len(pacers) > 0 {
		simOpts = append(simOpts, typing.WithPacer(chainPacers(pacers...)))
	}

	var hub *awareness.Hub
	if cfg.ListenAddr != "" {
		hub = awareness.NewHub()
		go hub.Run()
		defer hub.Stop()
		go serveHub(cfg.ListenAddr, hub)
	}

	reg := live.NewRegistry()
	sim := typing.New(simOpts...)
	newEngine := func(extra ...awareness.Publisher) *engine.Engine {
		engOpts := []engine.Option{engine.WithSimulator(sim)}
		var pubs []awareness.Publisher
		if hub != nil {
			pubs = append(pubs, hub)
		}
		pubs = append(pubs, extra...)
		if pub := awareness.Combine(pubs...); pub != nil {
			engOpts = append(engOpts, engine.WithPublisher(pub))
		}
		return engine.New(backend.NewResolver(reg), engOpts...)
	}
	eng := newEngine()

	switch {
	case opts.Add:
		return runAdd(eng, opts, content, cfg.TypingSpeed())
	case opts.Insert >= 0:
		return runInsert(eng, opts, content, cfg.TypingSpeed())
	case opts.Delete:
		return runDelete(eng, opts)
	case opts.Read:
		return runRead(eng, opts)
	case opts.IDAt >= 0:
		return runIDAt(eng, opts)
	case opts.Session:
		return runSession(newEngine, reg, opts, content, cfg.TypingSpeed())
	default:
		return runWrite(eng, opts, content, cfg.TypingSpeed())
	}
}

// reloadPacer rescales simulator delays when the configured typing speed
// changes while a replay is running. Delays stay proportional to the
// simulator's own schedule (highlight caps, doubled replace pauses).
func reloadPacer(initial time.Duration, current func() time.Duration) typing.Pacer {
	return func(_ diff.OpTag, d time.Duration) time.Duration {
		if initial <= 0 || d <= 0 {
			return d
		}
		cur := current()
		if cur < 0 || cur == initial {
			return d
		}
		return time.Duration(int64(d) * int64(cur) / int64(initial))
	}
}

// chainPacers applies pacers in order, each adjusting the previous result.
func chainPacers(pacers ...typing.Pacer) typing.Pacer {
	return func(tag diff.OpTag, d time.Duration) time.Duration {
		for _, p := range pacers {
			d = p(tag, d)
		}
		return d
	}
}

func runWrite(eng *engine.Engine, opts options, content string, pace time.Duration) int {
	if opts.Cell == "" {
		fmt.Fprintln(os.Stderr, "Error: -cell is required")
		return 2
	}
	res, err := eng.WriteCell(opts.File, opts.Cell, content, pace)
	if err != nil {
		return reportError(err)
	}
	fmt.Printf("wrote cell %s (%s)\n", res.CellID, res.Mode)
	return 0
}

// runSession loads the notebook into a live document so the write replays
// with typing, then flushes the result back to disk. In watch mode the view
// joins the awareness broadcast, so it renders the replay cursor and the
// deletion selection alongside the text.
func runSession(newEngine func(...awareness.Publisher) *engine.Engine, reg *live.Registry, opts options, content string, pace time.Duration) int {
	if opts.Cell == "" {
		fmt.Fprintln(os.Stderr, "Error: -cell is required")
		return 2
	}

	flat := backend.NewResolver(nil)
	att, err := flat.Attach(opts.File)
	if err != nil {
		return reportError(err)
	}
	cells, err := att.Cells()
	if err != nil {
		return reportError(err)
	}
	doc := live.NewDocument(cells)
	reg.Open(opts.File, doc)
	defer reg.Close(opts.File)

	var view *tui.View
	if opts.Watch {
		ident, err := notebook.Resolve(cells, notebook.ParseReference(opts.Cell))
		if err != nil {
			return reportError(err)
		}
		_, cell := doc.FindCell(ident.ID)
		view, err = tui.Open(cell.Source, fmt.Sprintf("%s · cell %s", opts.File, ident.ID))
		if err != nil {
			return reportError(err)
		}
		defer view.Close()
	}

	eng := newEngine()
	if view != nil {
		eng = newEngine(view)
	}

	res, err := eng.WriteCell(opts.File, opts.Cell, content, pace)
	if err != nil {
		return reportError(err)
	}

	// Flush every cell source back; the document was loaded from this file
	// so indexes line up.
	for i, cell := range doc.Snapshot() {
		if err := att.SetSource(i, cell.Source); err != nil {
			return reportError(err)
		}
	}

	if view == nil {
		fmt.Printf("wrote cell %s (%s, cursor %d)\n", res.CellID, res.Mode, res.Cursor)
	}
	return 0
}

func runAdd(eng *engine.Engine, opts options, content string, pace time.Duration) int {
	ct := notebook.ParseCellType(opts.CellType)
	id, err := eng.AddCell(opts.File, content, opts.Cell, opts.Above, ct, pace)
	if err != nil {
		return reportError(err)
	}
	fmt.Println(id)
	return 0
}

func runInsert(eng *engine.Engine, opts options, content string, pace time.Duration) int {
	id, err := eng.InsertCell(opts.File, content, opts.Insert, notebook.ParseCellType(opts.CellType), pace)
	if err != nil {
		return reportError(err)
	}
	fmt.Println(id)
	return 0
}

func runDelete(eng *engine.Engine, opts options) int {
	if opts.Cell == "" {
		fmt.Fprintln(os.Stderr, "Error: -cell is required")
		return 2
	}
	if err := eng.DeleteCell(opts.File, opts.Cell); err != nil {
		return reportError(err)
	}
	return 0
}

func runRead(eng *engine.Engine, opts options) int {
	if opts.Cell == "" {
		fmt.Fprintln(os.Stderr, "Error: -cell is required")
		return 2
	}
	cell, err := eng.ReadCell(opts.File, opts.Cell)
	if err != nil {
		return reportError(err)
	}
	fmt.Println(cell.Source)
	return 0
}

func runIDAt(eng *engine.Engine, opts options) int {
	id, err := eng.CellIDAt(opts.File, opts.IDAt)
	if err != nil {
		return reportError(err)
	}
	fmt.Println(id)
	return 0
}

// resolveContent picks the cell content source: -content, -content-file, or
// a generated completion for -prompt.
func resolveContent(opts options) (string, error) {
	switch {
	case opts.Prompt != "":
		return generateContent(opts.Prompt, opts.Model)
	case opts.ContentFile != "":
		data, err := os.ReadFile(opts.ContentFile)
		if err != nil {
			return "", fmt.Errorf("reading content file: %w", err)
		}
		return string(data), nil
	default:
		return opts.Content, nil
	}
}

// generateContent asks the model for cell content. The API key comes from
// the ANTHROPIC_API_KEY environment variable.
func generateContent(prompt, model string) (string, error) {
	client := anthropic.NewClient()
	msg, err := client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func serveHub(addr string, hub *awareness.Hub) {
	mux := http.NewServeMux()
	mux.HandleFunc("/awareness", hub.ServeWS)
	if err := http.ListenAndServe(addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "awareness server: %v\n", err)
	}
}

func reportError(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	switch {
	case errors.Is(err, engine.ErrValidation):
		return 2
	case errors.Is(err, engine.ErrNotFound):
		return 3
	case errors.Is(err, engine.ErrMutation):
		return 4
	case errors.Is(err, engine.ErrBackendUnavailable):
		return 5
	default:
		return 1
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.File, "file", "", "Notebook file")
	flag.StringVar(&opts.File, "f", "", "Notebook file (shorthand)")
	flag.StringVar(&opts.Cell, "cell", "", "Cell reference: index or id")
	flag.StringVar(&opts.Content, "content", "", "Cell content")
	flag.StringVar(&opts.ContentFile, "content-file", "", "Read cell content from a file")
	flag.IntVar(&opts.SpeedMS, "speed", -1, "Typing pace in milliseconds (overrides config)")
	flag.StringVar(&opts.PaceScript, "pace-script", "", "Lua pacing script (overrides config)")

	flag.BoolVar(&opts.Add, "add", false, "Add a new cell relative to -cell")
	flag.BoolVar(&opts.Above, "above", false, "Place the added cell above the reference")
	flag.StringVar(&opts.CellType, "type", "code", "Cell type: code, markdown, raw")
	flag.IntVar(&opts.Insert, "insert", -1, "Insert an empty cell at index")
	flag.BoolVar(&opts.Delete, "delete", false, "Delete the referenced cell")
	flag.BoolVar(&opts.Read, "read", false, "Print the referenced cell's source")
	flag.IntVar(&opts.IDAt, "id", -1, "Print the id of the cell at index")

	flag.BoolVar(&opts.Session, "session", false, "Replay the write against an in-process live document")
	flag.BoolVar(&opts.Watch, "watch", false, "Show the replay in a terminal view (implies -session)")
	flag.StringVar(&opts.Listen, "listen", "", "Serve awareness updates on this address")

	flag.StringVar(&opts.Prompt, "prompt", "", "Generate cell content from a prompt")
	flag.StringVar(&opts.Model, "model", "claude-sonnet-4-5", "Model for -prompt")

	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cellscribe - collaborative notebook cell writer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cellscribe [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cellscribe -f nb.ipynb -cell 0 -content 'x = 1'       Overwrite cell 0\n")
		fmt.Fprintf(os.Stderr, "  cellscribe -f nb.ipynb -cell 0 -session -watch        Watch the typing replay\n")
		fmt.Fprintf(os.Stderr, "  cellscribe -f nb.ipynb -add -cell 0 -content 'y = 2'  Add a cell below cell 0\n")
		fmt.Fprintf(os.Stderr, "  cellscribe -f nb.ipynb -read -cell 1                  Print cell 1\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("cellscribe %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if opts.Watch {
		opts.Session = true
	}
	return opts
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/cellscribe/cellscribe.toml"
	}
	return "cellscribe.toml"
}
