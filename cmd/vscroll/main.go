// Command vscroll scrolls through a directory of Markdown notes, or an
// endless synthetic feed, keeping only a small window of rendered items.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/treykane/vscroll/internal/app"
	"github.com/treykane/vscroll/internal/config"
	"github.com/treykane/vscroll/internal/feed"
	"github.com/treykane/vscroll/internal/logging"
)

var log = logging.New("main")

// cliOptions holds the flags that are not config overrides.
type cliOptions struct {
	save bool
	help bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	cfg, opts, err := parseFlags(cfg, args)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}
	if opts.help {
		printUsage(out)
		return 0
	}

	cfg, err = cfg.Normalize()
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	if opts.save {
		if err := config.Save(cfg); err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}
	}

	src, err := buildSource(cfg)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	m := app.New(cfg, src)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

// loadConfig reads the saved configuration, falling back to the defaults
// when none has been saved yet.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNotConfigured) {
		log.Debug("no saved config, using defaults")
		return config.Default()
	}
	return cfg, err
}

// parseFlags applies command-line overrides on top of cfg. Only flags that
// were given change the configuration.
func parseFlags(cfg config.Config, args []string) (config.Config, cliOptions, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, cliOptions{help: true}, nil
		}
		return cfg, cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cfg, cliOptions{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	var opts cliOptions
	opts.save, _ = fs.GetBool("save")
	opts.help, _ = fs.GetBool("help")

	if fs.Changed("notes-dir") {
		cfg.NotesDir, _ = fs.GetString("notes-dir")
	}
	if fs.Changed("synthetic") {
		cfg.Synthetic, _ = fs.GetBool("synthetic")
	}
	if fs.Changed("style") {
		cfg.GlamourStyle, _ = fs.GetString("style")
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"initial", &cfg.InitialIndex},
		{"batch", &cfg.BatchSize},
		{"buffer", &cfg.BufferSize},
		{"threshold", &cfg.ScrollThreshold},
	}
	for _, f := range ints {
		if fs.Changed(f.name) {
			*f.dst, _ = fs.GetInt(f.name)
		}
	}
	if fs.Changed("min") {
		v, _ := fs.GetInt("min")
		cfg.MinIndex = &v
	}
	if fs.Changed("max") {
		v, _ := fs.GetInt("max")
		cfg.MaxIndex = &v
	}
	return cfg, opts, nil
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("vscroll", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("notes-dir", "", "Directory of Markdown notes to scroll")
	fs.Bool("synthetic", false, "Scroll an endless generated feed instead of notes")
	fs.Int("initial", 0, "Index of the first item shown")
	fs.Int("min", 0, "Lowest index to render (requires --max)")
	fs.Int("max", 0, "Highest index to render (requires --min)")
	fs.Int("batch", 0, "Items rendered per fill batch")
	fs.Int("buffer", 0, "Items kept beyond each edge of the viewport")
	fs.Int("threshold", 0, "Rows scrolled before the direction changes")
	fs.String("style", "", "Glamour style for rendered Markdown")
	fs.Bool("save", false, "Save the resulting configuration")
	fs.BoolP("help", "h", false, "Show help")
	return fs
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: vscroll [flags]")
	fmt.Fprintln(out)
	fmt.Fprint(out, newFlagSet().FlagUsages())
}

// buildSource picks the item source for cfg.
func buildSource(cfg config.Config) (feed.Source, error) {
	if cfg.Synthetic {
		return feed.SyntheticSource{}, nil
	}
	src, err := feed.NewDirSource(cfg.NotesDir)
	if err != nil {
		return nil, fmt.Errorf("open notes: %w", err)
	}
	log.Info("loaded notes", "dir", cfg.NotesDir, "count", src.Len())
	return src, nil
}
