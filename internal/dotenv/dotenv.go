// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package dotenv edits KEY=VALUE environment files in place. Unlike a plain
// map round-trip it keeps every line it does not touch (comments, blank
// lines, unknown keys) in its original position. Values are read with
// godotenv over the whole document, so ${VAR} references see earlier lines.
package dotenv

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// Entry is one KEY=VALUE assignment as seen by a reader.
type Entry struct {
	Name  string
	Value string
}

type line struct {
	raw  string
	name string // empty for comments, blanks and lines godotenv rejects
}

// Document is an ordered, line-preserving view of a dotenv file.
type Document struct {
	lines []line
}

// ErrUnrepresentable is returned by FormatLine for a value that no quoting
// style would read back unchanged.
var ErrUnrepresentable = errors.New("value cannot be written to a dotenv file")

// bareValue matches values that can be written without quotes and read back
// unchanged.
var bareValue = regexp.MustCompile(`^[A-Za-z0-9_./:@%+,?&=~-]+$`)

// Parse splits data into lines and classifies each one. It never fails:
// lines godotenv cannot interpret are kept verbatim and ignored on read.
func Parse(data []byte) *Document {
	doc := &Document{}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return doc
	}
	for _, raw := range strings.Split(text, "\n") {
		doc.lines = append(doc.lines, line{raw: raw, name: lineName(raw)})
	}
	return doc
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

func lineName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	values, err := godotenv.Unmarshal(raw)
	if err != nil || len(values) != 1 {
		return ""
	}
	for name := range values {
		return name
	}
	return ""
}

// values resolves every assignment in one pass, the way a reader of the
// whole file sees it. Later assignments win.
func (d *Document) values() map[string]string {
	var buf bytes.Buffer
	for _, l := range d.lines {
		if l.name == "" {
			continue
		}
		buf.WriteString(l.raw)
		buf.WriteByte('\n')
	}
	if values, err := godotenv.Unmarshal(buf.String()); err == nil {
		return values
	}
	values := make(map[string]string)
	for _, l := range d.lines {
		if l.name == "" {
			continue
		}
		if v, err := godotenv.Unmarshal(l.raw); err == nil {
			values[l.name] = v[l.name]
		}
	}
	return values
}

// Lookup returns the value of the last assignment to name.
func (d *Document) Lookup(name string) (string, bool) {
	for _, l := range d.lines {
		if l.name == name {
			return d.values()[name], true
		}
	}
	return "", false
}

// Entries lists assignments in file order. A name assigned more than once
// is reported at its first position with its last value.
func (d *Document) Entries() []Entry {
	values := d.values()
	var out []Entry
	seen := map[string]bool{}
	for _, l := range d.lines {
		if l.name == "" || seen[l.name] {
			continue
		}
		seen[l.name] = true
		out = append(out, Entry{Name: l.name, Value: values[l.name]})
	}
	return out
}

// Skipped returns the 1-based numbers of lines that are neither blank, a
// comment nor an assignment godotenv accepts.
func (d *Document) Skipped() []int {
	var out []int
	for i, l := range d.lines {
		trimmed := strings.TrimSpace(l.raw)
		if l.name != "" || trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, i+1)
	}
	return out
}

// Set assigns value to name. The first existing assignment is rewritten in
// place and any later duplicates are dropped; otherwise the assignment is
// appended.
func (d *Document) Set(name, value string) error {
	raw, err := FormatLine(name, value)
	if err != nil {
		return err
	}
	kept := d.lines[:0]
	replaced := false
	for _, l := range d.lines {
		if l.name != name {
			kept = append(kept, l)
			continue
		}
		if !replaced {
			kept = append(kept, line{raw: raw, name: name})
			replaced = true
		}
	}
	d.lines = kept
	if !replaced {
		d.lines = append(d.lines, line{raw: raw, name: name})
	}
	return nil
}

// Unset removes every assignment to name and reports whether one existed.
func (d *Document) Unset(name string) bool {
	kept := d.lines[:0]
	removed := false
	for _, l := range d.lines {
		if l.name == name {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	d.lines = kept
	return removed
}

// Bytes renders the document, one line per entry, newline terminated.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, l := range d.lines {
		buf.WriteString(l.raw)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// FormatLine renders a single assignment. Simple values are written bare;
// otherwise single quotes, godotenv's double quoting and finally an
// unquoted line are tried in turn, and the first one that reads back as
// value wins.
func FormatLine(name, value string) (string, error) {
	if bareValue.MatchString(value) {
		return name + "=" + value, nil
	}
	var candidates []string
	if !strings.ContainsAny(value, "'\n\r") {
		candidates = append(candidates, name+"='"+value+"'")
	}
	if quoted, err := godotenv.Marshal(map[string]string{name: value}); err == nil {
		candidates = append(candidates, quoted)
	}
	if !strings.ContainsAny(value, "$\n\r") {
		candidates = append(candidates, name+"="+value)
	}
	for _, raw := range candidates {
		if readsBack(raw, name, value) {
			return raw, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnrepresentable, name)
}

func readsBack(raw, name, value string) bool {
	if strings.ContainsAny(raw, "\n\r") {
		return false
	}
	values, err := godotenv.Unmarshal(raw)
	if err != nil || len(values) != 1 {
		return false
	}
	got, ok := values[name]
	return ok && got == value
}

// WriteFile replaces path with the rendered document. The content is written
// to a temporary file in the same directory and renamed over the target, so
// a failed write never leaves a truncated file behind. An existing file keeps
// its permissions; a new one gets perm.
func WriteFile(path string, doc *Document, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(doc.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
