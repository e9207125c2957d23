package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	markerPattern     = regexp.MustCompile(`@parse\(([A-Za-z0-9_./]+)\)`)
	globMarkerPattern = regexp.MustCompile(`@parse\(([A-Za-z0-9_./*]+)\)`)
)

const defaultExtension = "swift"

// Assembler inlines the documentation blocks referenced by @parse markers
// into a template.
type Assembler struct {
	// Glob expands marker patterns against the filesystem. When false the
	// pattern is taken as a literal path.
	Glob bool
	// Extension is the file extension the link rewrite looks for.
	Extension string
	// Dir is the directory marker paths are resolved against. Empty means
	// the working directory.
	Dir    string
	Logger *slog.Logger
}

// Result is the assembled document plus a few counters for logging.
type Result struct {
	Lines   []string
	Markers int
	Sources int
	Blocks  int
}

// Bytes joins the lines with newlines. No trailing newline is added.
func (r Result) Bytes() []byte {
	return []byte(strings.Join(r.Lines, "\n"))
}

// Assemble reads the template from r and returns the output lines. Only
// template read errors are returned; unreadable sources are logged and
// skipped.
func (a *Assembler) Assemble(r io.Reader) (Result, error) {
	var res Result
	ext := a.Extension
	if ext == "" {
		ext = defaultExtension
	}
	lk := newLinker(ext)
	re := markerPattern
	if a.Glob {
		re = globMarkerPattern
	}

	lr := newLineReader(r)
	for {
		line, ok, err := lr.next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		line = trimRight(line)
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			res.Lines = append(res.Lines, line)
			continue
		}
		res.Markers++
		pattern := line[loc[2]:loc[3]]
		for _, candidate := range a.candidates(pattern) {
			res.Sources++
			header := line[:loc[0]] + baseName(candidate) + line[loc[1]:]
			res.Lines = append(res.Lines, header)

			block, ok := a.readBlock(candidate)
			if !ok {
				continue
			}
			res.Blocks++
			for _, bl := range block {
				res.Lines = append(res.Lines, lk.link(bl))
			}
		}
	}
	return res, nil
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *Assembler) resolve(p string) string {
	if a.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.Dir, p)
}

// candidates returns the marker-relative paths a pattern stands for.
func (a *Assembler) candidates(pattern string) []string {
	if !a.Glob {
		return []string{pattern}
	}
	matches, err := filepath.Glob(a.resolve(pattern))
	if err != nil {
		a.logger().Debug("Invalid glob pattern", Pattern(pattern), Error(err))
		return nil
	}
	if len(matches) == 0 {
		a.logger().Debug("Glob matched no files", Pattern(pattern))
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, a.relative(m))
	}
	return out
}

func (a *Assembler) relative(match string) string {
	if a.Dir == "" {
		return filepath.ToSlash(match)
	}
	rel, err := filepath.Rel(a.Dir, match)
	if err != nil {
		return filepath.ToSlash(match)
	}
	return filepath.ToSlash(rel)
}

// readBlock reports false when the source contributes nothing beyond its
// header line.
func (a *Assembler) readBlock(candidate string) ([]string, bool) {
	f, err := os.Open(a.resolve(candidate))
	if err != nil {
		a.logger().Debug("Skipping unreadable source", Source(candidate), Error(err))
		return nil, false
	}
	defer f.Close()
	block, err := ExtractBlock(f)
	if err != nil {
		a.logger().Debug("Skipping unreadable source", Source(candidate), Error(err))
		return nil, false
	}
	if block == nil {
		a.logger().Debug("Source has no doc block", Source(candidate))
		return nil, false
	}
	return block, true
}

// baseName returns the segment after the last slash.
func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
