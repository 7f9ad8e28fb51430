// Package main is the inkstone command: decode a markup document,
// report its statistics, and optionally re-emit normalized markup.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dshills/inkstone/internal/config"
	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/layout"
	"github.com/dshills/inkstone/internal/markup"
	"github.com/dshills/inkstone/internal/stats"
	"github.com/dshills/inkstone/internal/viewport"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

type options struct {
	configPath  string
	topWords    int
	emit        bool
	layoutPlan  bool
	verbose     bool
	showVersion bool
}

func run() int {
	opts, args := parseFlags()

	if opts.showVersion {
		fmt.Printf("inkstone %s\n", version)
		return 0
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: inkstone [flags] <file>")
		flag.PrintDefaults()
		return 2
	}

	log := newLogger(opts.verbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Error().Err(err).Msg("loading configuration")
		return 1
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("opening document")
		return 1
	}
	defer f.Close()

	doc, err := markup.Decode(f)
	if err != nil {
		if pe, ok := markup.IsParseError(err); ok {
			log.Error().
				Str("file", path).
				Int("line", pe.Line).
				Int("col", pe.Col).
				Msg(pe.Msg)
		} else {
			log.Error().Err(err).Str("file", path).Msg("decoding document")
		}
		return 1
	}
	log.Debug().Int("paragraphs", doc.ParagraphCount()).Msg("document decoded")

	if opts.emit {
		if err := markup.Encode(os.Stdout, doc); err != nil {
			log.Error().Err(err).Msg("encoding document")
			return 1
		}
		return 0
	}

	collector := stats.Attach(doc)
	counts := collector.Counts()
	fmt.Printf("paragraphs: %d\n", counts.Paragraphs)
	fmt.Printf("words:      %d\n", counts.Words)
	fmt.Printf("characters: %d\n", counts.Characters)

	if opts.topWords > 0 {
		fmt.Println("top words:")
		for _, wc := range collector.TopWords(opts.topWords) {
			fmt.Printf("  %-20s %d\n", wc.Word, wc.Count)
		}
	}

	if opts.layoutPlan {
		printLayoutSummary(doc, cfg)
	}
	return 0
}

// printLayoutSummary lays the document out at the configured wrap
// width with monospace metrics and reports its geometry.
func printLayoutSummary(doc *document.Document, cfg config.Config) {
	mgr := viewport.NewManager(doc, layout.NewFixedMetrics(), viewport.Options{
		EstimatedLineHeight: cfg.Layout.EstimatedLineHeight,
		BufferParagraphs:    cfg.Layout.BufferParagraphs,
		CacheSize:           cfg.Layout.MaxCachedLayouts,
	})
	defer mgr.Detach()
	mgr.SetSize(cfg.Editor.WrapWidth, cfg.Editor.WrapWidth)

	lines := 0
	for i := 0; i < doc.ParagraphCount(); i++ {
		lines += mgr.Layout(i).LineCount()
	}
	fmt.Printf("wrap width: %.0f\n", cfg.Editor.WrapWidth)
	fmt.Printf("lines:      %d\n", lines)
	fmt.Printf("height:     %.0f\n", mgr.Scroll().TotalHeight())
}

func parseFlags() (options, []string) {
	var opts options
	flag.StringVar(&opts.configPath, "config", defaultConfigPath(), "path to configuration file")
	flag.IntVar(&opts.topWords, "top", 0, "list the N most frequent words")
	flag.BoolVar(&opts.emit, "emit", false, "re-emit normalized markup to stdout")
	flag.BoolVar(&opts.layoutPlan, "layout", false, "report layout geometry at the configured wrap width")
	flag.BoolVar(&opts.verbose, "v", false, "verbose logging")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.Parse()
	return opts, flag.Args()
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "inkstone.toml"
	}
	return home + "/.config/inkstone/inkstone.toml"
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
