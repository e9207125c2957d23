package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// unpackArchive writes every file of testdata/<name> except want.md into a
// fresh directory and returns that directory with the expected output.
func unpackArchive(t *testing.T, name string) (string, string) {
	t.Helper()
	ar, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	dir := t.TempDir()
	var want string
	for _, f := range ar.Files {
		if f.Name == "want.md" {
			want = strings.TrimSuffix(string(f.Data), "\n")
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
	return dir, want
}

func assembleFile(t *testing.T, asm *Assembler, path string) Result {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	res, err := asm.Assemble(f)
	require.NoError(t, err)
	return res
}

func TestAssembleArchives(t *testing.T) {
	cases := []struct {
		archive string
		glob    bool
	}{
		{"sample.txtar", false},
		{"sample.txtar", true},
		{"glob.txtar", true},
		{"preamble.txtar", false},
	}
	for _, tc := range cases {
		name := strings.TrimSuffix(tc.archive, ".txtar")
		if tc.glob {
			name += "/glob"
		}
		t.Run(name, func(t *testing.T) {
			dir, want := unpackArchive(t, tc.archive)
			asm := &Assembler{Glob: tc.glob, Dir: dir}
			res := assembleFile(t, asm, filepath.Join(dir, "template.md"))
			assert.Equal(t, want, string(res.Bytes()))
		})
	}
}

func TestAssembleCounters(t *testing.T) {
	dir, _ := unpackArchive(t, "glob.txtar")
	res := assembleFile(t, &Assembler{Glob: true, Dir: dir}, filepath.Join(dir, "template.md"))
	assert.Equal(t, 1, res.Markers)
	assert.Equal(t, 3, res.Sources)
	assert.Equal(t, 2, res.Blocks)
}

func TestAssembleWithoutMarkersIsIdentity(t *testing.T) {
	tmpl := "# Title\n\nPlain text with Foo.swift left alone.\n@parse without parens\n\n- item"
	res, err := (&Assembler{}).Assemble(strings.NewReader(tmpl))
	require.NoError(t, err)
	assert.Equal(t, tmpl, string(res.Bytes()))
	assert.Zero(t, res.Markers)
}

func TestAssembleStripsTrailingWhitespace(t *testing.T) {
	res, err := (&Assembler{}).Assemble(strings.NewReader("a  \r\nb\t\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Lines)
}

func TestAssembleCustomExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	src := "/*\n\nUses Helper.ext and foo_bar.ext, not Other.swift.\n*/\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "Sample.ext"), []byte(src), 0o644))

	asm := &Assembler{Extension: "ext", Dir: dir}
	res, err := asm.Assemble(strings.NewReader("See @parse(docs/Sample.ext) for details.\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"See Sample.ext for details.",
		"Uses [Helper.ext](#helperext) and [foo_bar.ext](#foo_barext), not Other.swift.",
	}, res.Lines)
}

func TestAssembleReplacesFirstMarkerOnly(t *testing.T) {
	res, err := (&Assembler{Dir: t.TempDir()}).Assemble(strings.NewReader("@parse(a/One.swift) @parse(b/Two.swift)"))
	require.NoError(t, err)
	assert.Equal(t, []string{"One.swift @parse(b/Two.swift)"}, res.Lines)
}

func TestAssembleLiteralModeIgnoresWildcards(t *testing.T) {
	line := "@parse(src/*.swift)"
	res, err := (&Assembler{Dir: t.TempDir()}).Assemble(strings.NewReader(line))
	require.NoError(t, err)
	assert.Equal(t, []string{line}, res.Lines)
	assert.Zero(t, res.Markers)
}

func TestAssembleGlobWithoutMatchesDropsLine(t *testing.T) {
	res, err := (&Assembler{Glob: true, Dir: t.TempDir()}).Assemble(strings.NewReader("before\n- @parse(none/*.swift)\nafter\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"before", "after"}, res.Lines)
	assert.Equal(t, 1, res.Markers)
	assert.Zero(t, res.Sources)
}

func TestAssembleLogsSkippedSources(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	asm := &Assembler{Dir: t.TempDir(), Logger: logger}
	res, err := asm.Assemble(strings.NewReader("@parse(Missing.swift)"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Missing.swift"}, res.Lines)
	assert.Contains(t, logs.String(), "Skipping unreadable source")
	assert.Contains(t, logs.String(), "source=Missing.swift")
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "HexColor.swift", baseName("src/util/HexColor.swift"))
	assert.Equal(t, "HexColor.swift", baseName("HexColor.swift"))
	assert.Equal(t, "", baseName("src/util/"))
}
