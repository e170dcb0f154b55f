// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/toeirei/entities-service/internal/configstore"
	"github.com/toeirei/entities-service/internal/i18n"
)

type outputFormat string

const (
	outputText outputFormat = "text"
	outputYAML outputFormat = "yaml"
	outputJSON outputFormat = "json"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case outputText, outputYAML, outputJSON:
		return f, nil
	}
	return "", fmt.Errorf("%s", i18n.T("config.unknown_output", s))
}

// renderEntries prints entries in file order. Text output renders keys in
// bold when w is a terminal; the renderer drops styling otherwise.
func renderEntries(w io.Writer, format outputFormat, entries []configstore.Entry) error {
	switch format {
	case outputYAML:
		doc := make(yaml.MapSlice, 0, len(entries))
		for _, e := range entries {
			doc = append(doc, yaml.MapItem{Key: e.Key.String(), Value: e.Value})
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case outputJSON:
		return writeJSONObject(w, entries)
	}

	keyStyle := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: %s\n", keyStyle.Render(e.Key.String()), e.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONObject writes entries as one indented JSON object, keeping their
// order.
func writeJSONObject(w io.Writer, entries []configstore.Entry) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key.String())
		if err != nil {
			return err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return err
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(entries) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}
