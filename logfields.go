package main

import "log/slog"

// Log attribute keys shared by every record the tool emits.
const (
	KeyTemplate = "template"
	KeyOutput   = "output"
	KeySource   = "source"
	KeyPattern  = "pattern"
	KeyLines    = "lines"
	KeyError    = "error"
)

func Template(p string) slog.Attr { return slog.String(KeyTemplate, p) }
func Output(p string) slog.Attr   { return slog.String(KeyOutput, p) }
func Source(p string) slog.Attr   { return slog.String(KeySource, p) }
func Pattern(p string) slog.Attr  { return slog.String(KeyPattern, p) }
func Lines(n int) slog.Attr       { return slog.Int(KeyLines, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
