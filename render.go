package main

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode"
)

const (
	blockOpen  = "/*"
	blockClose = "*/"
)

// ExtractBlock reads the leading documentation block of a source file.
//
// The block must open with a line holding only "/*" followed by a blank
// line. Every following line up to a line equal to "*/" belongs to the
// block; the terminator itself is dropped. A stream that ends before the
// terminator yields everything read so far. A stream that does not start
// with the preamble yields a nil slice and no error.
func ExtractBlock(r io.Reader) ([]string, error) {
	lr := newLineReader(r)
	first, ok, err := lr.next()
	if err != nil || !ok || strings.TrimSpace(first) != blockOpen {
		return nil, err
	}
	second, ok, err := lr.next()
	if err != nil || !ok || strings.TrimSpace(second) != "" {
		return nil, err
	}
	lines := []string{}
	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return lines, nil
		}
		line = trimRight(line)
		if line == blockClose {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// LinkFilenames rewrites every file name ending in ext into a Markdown link
// pointing at the file's anchor, e.g. "Foo.swift" -> "[Foo.swift](#fooswift)".
func LinkFilenames(line, ext string) string {
	return newLinker(ext).link(line)
}

// Anchor returns the heading anchor for a file name.
func Anchor(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), ".", "")
}

type linker struct {
	re *regexp.Regexp
}

func newLinker(ext string) linker {
	return linker{re: regexp.MustCompile(`[A-Za-z0-9_]+\.` + regexp.QuoteMeta(ext))}
}

func (l linker) link(line string) string {
	return l.re.ReplaceAllStringFunc(line, func(name string) string {
		return "[" + name + "](#" + Anchor(name) + ")"
	})
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// lineReader yields lines without their terminator. Unlike bufio.Scanner it
// has no line length limit.
type lineReader struct {
	br *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReader(r)}
}

func (lr *lineReader) next() (string, bool, error) {
	line, err := lr.br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if line == "" {
			return "", false, nil
		}
	}
	return strings.TrimSuffix(line, "\n"), true, nil
}
