package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional --config YAML file. Pointer fields tell
// "unset" apart from zero values so flags can take precedence.
type fileConfig struct {
	Glob      *bool   `yaml:"glob"`
	Extension *string `yaml:"extension"`
	Dir       *string `yaml:"dir"`
}

var extensionPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// normalizeExtension strips a leading dot and rejects anything the link
// pattern could not match as a plain extension.
func normalizeExtension(ext string) (string, error) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if !extensionPattern.MatchString(ext) {
		return "", fmt.Errorf("invalid extension %q", ext)
	}
	return ext, nil
}
