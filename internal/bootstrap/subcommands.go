package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazystrings/internal/buildinfo"
	"github.com/chmouel/lazystrings/internal/config"
	"github.com/chmouel/lazystrings/internal/log"
	"github.com/chmouel/lazystrings/internal/resource"
)

var errNoFiles = errors.New("no resource files configured, pass --resource or set files in the config file")

// loadCLIConfig loads the configuration and layers the command line on top:
// --resource files are appended, then --config overrides apply.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
	}

	cfg.AddFiles(cmd.StringSlice("resource")...)

	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}

	setupDebugLog(cmd.String("debug-log"), cfg.DebugLog)
	log.Printf("config: %d resource file(s), theme %q", len(cfg.Files), cfg.Theme)
	return cfg, nil
}

// loadStore loads every configured file. Parse failures are reported on
// stderr and do not stop the command.
func loadStore(cmd *urfavecli.Command) (*resource.Store, error) {
	cfg, err := loadCLIConfigFunc(cmd)
	if err != nil {
		return nil, err
	}
	paths := cfg.ResourcePaths()
	if len(paths) == 0 {
		return nil, errNoFiles
	}

	store := resource.NewStore(paths, resource.WithLogger(log.Printf))
	report, err := store.Load()
	if err != nil {
		fmt.Fprintf(errWriter(cmd), "Warning: %v\n", err)
	}
	for _, missing := range report.Missing {
		log.Printf("missing resource file %s", missing)
	}
	if report.Rejected > 0 {
		fmt.Fprintf(errWriter(cmd), "Warning: skipped %d string(s) without a name\n", report.Rejected)
	}
	return store, nil
}

func listCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "list",
		Usage: "List string entries",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:  "file",
				Value: resource.AllFiles,
				Usage: "Only show entries of this file, e.g. values-fr/strings.xml",
			},
			&urfavecli.StringFlag{
				Name:  "name",
				Usage: "Only show entries with this exact name (takes precedence over --file)",
			},
			&urfavecli.BoolFlag{
				Name:  "untranslatable",
				Usage: "Only show entries marked translatable=\"false\"",
			},
			&urfavecli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
		},
		Action: runList,
	}
}

func runList(_ context.Context, cmd *urfavecli.Command) error {
	store, err := loadStore(cmd)
	if err != nil {
		return err
	}

	view := resource.FilterByFile(store, cmd.String("file"))
	if name := cmd.String("name"); name != "" {
		view = resource.FilterByName(store, name)
	}
	entries := view.Entries()
	if cmd.Bool("untranslatable") {
		entries = lo.Filter(entries, func(e *resource.Entry, _ int) bool { return !e.Translatable })
	}

	if cmd.Bool("json") {
		return outputListJSON(cmd.Root().Writer, entries)
	}
	return outputList(cmd.Root().Writer, entries)
}

type listEntry struct {
	File         string `json:"file"`
	Name         string `json:"name"`
	Text         string `json:"text"`
	Translatable bool   `json:"translatable"`
}

func outputListJSON(w io.Writer, entries []*resource.Entry) error {
	out := lo.Map(entries, func(e *resource.Entry, _ int) listEntry {
		return listEntry{File: e.SourceFile(), Name: e.Name, Text: e.Text, Translatable: e.Translatable}
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// outputList prints entries in aligned columns.
func outputList(w io.Writer, entries []*resource.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tNAME\tTEXT\t")
	for _, e := range entries {
		text := strings.ReplaceAll(e.Text, "\n", `\n`)
		if !e.Translatable {
			text += "\t(untranslatable)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", e.SourceFile(), e.Name, text)
	}
	return tw.Flush()
}

func setCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "set",
		Usage: "Change the text of one entry and save (the previous file is kept as .bak)",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:     "file",
				Usage:    "File identifier of the entry, e.g. values-fr/strings.xml",
				Required: true,
			},
			&urfavecli.StringFlag{
				Name:     "name",
				Usage:    "Name of the entry",
				Required: true,
			},
			&urfavecli.StringFlag{
				Name:     "text",
				Usage:    "New text",
				Required: true,
			},
		},
		Action: runSet,
	}
}

func runSet(_ context.Context, cmd *urfavecli.Command) error {
	store, err := loadStore(cmd)
	if err != nil {
		return err
	}

	file, name := cmd.String("file"), cmd.String("name")
	entry, ok := lo.Find(store.Entries(), func(e *resource.Entry) bool {
		return e.SourceFile() == file && e.Name == name
	})
	if !ok {
		return fmt.Errorf("no entry named %q in %s", name, file)
	}
	if !entry.Translatable {
		return fmt.Errorf("%s in %s is marked translatable=\"false\"", name, file)
	}

	text := cmd.String("text")
	if entry.Text == text {
		fmt.Fprintf(cmd.Root().Writer, "%s/%s unchanged\n", file, name)
		return nil
	}
	store.SetText(entry, text)
	if err := store.SaveFile(file); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	fmt.Fprintf(cmd.Root().Writer, "Updated %s in %s\n", name, file)
	return nil
}

func filesCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:   "files",
		Usage:  "Show the configured resource files with their entry counts",
		Action: runFiles,
	}
}

func runFiles(_ context.Context, cmd *urfavecli.Command) error {
	store, err := loadStore(cmd)
	if err != nil {
		return err
	}
	counts := store.CountByFile()

	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tENTRIES\tPATH\t")
	for _, path := range store.Paths() {
		id := resource.SourceID(path)
		count := strconv.Itoa(counts[id])
		if _, err := os.Stat(path); err != nil {
			count = "missing"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", id, count, path)
	}
	return tw.Flush()
}

func versionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "version",
		Usage: "Print version and build information",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			fmt.Fprintln(cmd.Root().Writer, buildinfo.Get().String())
			return nil
		},
	}
}

func errWriter(cmd *urfavecli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
