package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutputDrift is returned by --check when the output file is stale.
var ErrOutputDrift = errors.New("output is out of date")

type options struct {
	glob       bool
	extension  string
	dir        string
	configPath string
	check      bool
	verbose    bool
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, templatePath, outputPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := app.resolveOptions()
	if err != nil {
		return err
	}
	logger := newLogger(app.stderr, opts.verbose)

	tmpl, err := os.Open(templatePath)
	if err != nil {
		return fmt.Errorf("open template: %w", err)
	}
	defer tmpl.Close()

	asm := &Assembler{
		Glob:      opts.glob,
		Extension: opts.extension,
		Dir:       opts.dir,
		Logger:    logger,
	}
	res, err := asm.Assemble(tmpl)
	if err != nil {
		return fmt.Errorf("read template %s: %w", templatePath, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data := res.Bytes()

	if opts.check {
		if err := checkOutput(outputPath, data); err != nil {
			return err
		}
		logger.Info("Output is up to date", Output(outputPath))
		return nil
	}
	if err := writeOutput(outputPath, app.stdout, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Debug("Wrote output",
		Template(templatePath),
		Output(outputPath),
		Lines(len(res.Lines)),
		slog.Int("markers", res.Markers),
		slog.Int("sources", res.Sources),
		slog.Int("blocks", res.Blocks))
	return nil
}

// resolveOptions layers the config file under the flags that were not set
// explicitly.
func (app *cliApp) resolveOptions() (options, error) {
	opts := app.opts
	if opts.configPath != "" {
		cfg, err := loadConfig(opts.configPath)
		if err != nil {
			return opts, err
		}
		if cfg.Glob != nil && !app.flagChanged("glob") {
			opts.glob = *cfg.Glob
		}
		if cfg.Extension != nil && !app.flagChanged("ext") {
			opts.extension = *cfg.Extension
		}
		if cfg.Dir != nil && !app.flagChanged("dir") {
			opts.dir = *cfg.Dir
		}
	}
	ext, err := normalizeExtension(opts.extension)
	if err != nil {
		return opts, err
	}
	opts.extension = ext
	return opts, nil
}

func (app *cliApp) flagChanged(name string) bool {
	return app.changed != nil && app.changed(name)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func checkOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		return errors.New("--check requires an output file")
	}
	current, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrOutputDrift)
		}
		return err
	}
	if !bytes.Equal(current, data) {
		return fmt.Errorf("%s: %w", path, ErrOutputDrift)
	}
	return nil
}

var legacyLongFlagSet = map[string]struct{}{
	"glob":    {},
	"ext":     {},
	"dir":     {},
	"config":  {},
	"check":   {},
	"verbose": {},
}

// normalizeLegacyArgs accepts single-dash long flags (-glob, -ext=swift) by
// rewriting them to their double-dash form.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || len(arg) <= 2 {
			converted = append(converted, arg)
			continue
		}
		name := arg[1:]
		if idx := strings.Index(name, "="); idx > 0 {
			name = name[:idx]
		}
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "-"+arg)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}
