package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	fmtAuto = "auto"
	fmtJSON = "json"
	fmtYAML = "yaml"
)

// detectFormat guesses a file's format from its extension, defaulting to json
func detectFormat(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return fmtYAML
	default:
		return fmtJSON
	}
}

func loadFile(name, format string) (interface{}, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if format == fmtAuto {
		format = detectFormat(name)
	}

	var v interface{}
	switch format {
	case fmtYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	case fmtJSON:
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return v, nil
}

func dump(w io.Writer, v interface{}, format string) error {
	switch format {
	case fmtYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case fmtJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func saveFile(name string, v interface{}, format string) error {
	if format == fmtAuto {
		format = detectFormat(name)
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := dump(f, v, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
