// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package dotenv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse_EntriesSkipCommentsAndBlanks(t *testing.T) {
	doc := Parse([]byte("# comment\nA=1\n\nB=\"x y\"\nexport C=z\nnot a line\n"))

	got := doc.Entries()
	want := []Entry{{"A", "1"}, {"B", "x y"}, {"C", "z"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSet_RewritesInPlaceAndKeepsOtherLines(t *testing.T) {
	doc := Parse([]byte("# comment\nA=1\n\nB=2\n"))
	if err := doc.Set("A", "changed"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, want := string(doc.Bytes()), "# comment\nA=changed\n\nB=2\n"; got != want {
		t.Fatalf("unexpected document:\n%q\nwant:\n%q", got, want)
	}

	if err := doc.Set("C", "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, want := string(doc.Bytes()), "# comment\nA=changed\n\nB=2\nC=3\n"; got != want {
		t.Fatalf("unexpected document after append:\n%q", got)
	}
}

func TestSet_CollapsesDuplicates(t *testing.T) {
	doc := Parse([]byte("A=1\nB=2\nA=3\n"))

	entries := doc.Entries()
	if len(entries) != 2 || entries[0] != (Entry{"A", "3"}) || entries[1] != (Entry{"B", "2"}) {
		t.Fatalf("expected first position with last value, got %v", entries)
	}
	if v, ok := doc.Lookup("A"); !ok || v != "3" {
		t.Fatalf("Lookup(A) = %q, %v", v, ok)
	}

	if err := doc.Set("A", "4"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := string(doc.Bytes()); got != "A=4\nB=2\n" {
		t.Fatalf("expected duplicates collapsed, got %q", got)
	}
}

func TestUnset(t *testing.T) {
	doc := Parse([]byte("A=1\nB=2\nA=3\n"))
	if !doc.Unset("A") {
		t.Fatal("expected Unset to report removal")
	}
	if doc.Unset("A") {
		t.Fatal("expected second Unset to be a no-op")
	}
	if got := string(doc.Bytes()); got != "B=2\n" {
		t.Fatalf("unexpected document: %q", got)
	}
	if _, ok := doc.Lookup("A"); ok {
		t.Fatal("expected A to be gone")
	}
}

func TestFormatLine(t *testing.T) {
	cases := []struct {
		value string
		bare  bool
	}{
		{"https://example.org/meta", true},
		{"mongodb+srv://user@cluster0.example.net/?retryWrites=true", true},
		{"007", true},
		{"", false},
		{"hello world", false},
		{"p@ss word#1", false},
		{`secret # with "quote"`, false},
		{`"q"`, false},
		{`trail\`, false},
		{"it's", false},
		{`it's "x"`, false},
		{"$HOME", false},
		{" padded ", false},
		{"#hash", false},
		{"line1\nline2", false},
	}
	for _, c := range cases {
		t.Run(c.value, func(t *testing.T) {
			raw, err := FormatLine("K", c.value)
			if err != nil {
				t.Fatalf("FormatLine: %v", err)
			}
			if c.bare && raw != "K="+c.value {
				t.Fatalf("expected bare line, got %q", raw)
			}
			doc := Parse([]byte(raw + "\n"))
			if v, ok := doc.Lookup("K"); !ok || v != c.value {
				t.Fatalf("round trip: got %q (%v), want %q", v, ok, c.value)
			}
		})
	}
}

func TestFormatLine_Unrepresentable(t *testing.T) {
	raw, err := FormatLine("K", "line1\nline2\\")
	if !errors.Is(err, ErrUnrepresentable) {
		t.Fatalf("expected ErrUnrepresentable, got %q, %v", raw, err)
	}

	doc := Parse([]byte("A=1\n"))
	if err := doc.Set("K", "line1\nline2\\"); !errors.Is(err, ErrUnrepresentable) {
		t.Fatalf("Set: expected ErrUnrepresentable, got %v", err)
	}
	if got := string(doc.Bytes()); got != "A=1\n" {
		t.Fatalf("document changed by a failed Set: %q", got)
	}
}

func TestEntries_ExpandReferencesToEarlierLines(t *testing.T) {
	t.Setenv("MONGO_USER", "from-env")
	doc := Parse([]byte("MONGO_USER=bob\nBASE_URL=http://${MONGO_USER}.example\nQUOTED=\"$MONGO_USER\"\nLITERAL='${MONGO_USER}'\n"))

	want := []Entry{
		{"MONGO_USER", "bob"},
		{"BASE_URL", "http://bob.example"},
		{"QUOTED", "bob"},
		{"LITERAL", "${MONGO_USER}"},
	}
	got := doc.Entries()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if v, _ := doc.Lookup("BASE_URL"); v != "http://bob.example" {
		t.Fatalf("Lookup(BASE_URL) = %q", v)
	}
}

func TestSkipped(t *testing.T) {
	doc := Parse([]byte("# comment\nA=1\n\nnot a line\nB=\"open\n"))
	got := doc.Skipped()
	if len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Fatalf("expected lines [4 5] skipped, got %v", got)
	}
}

func TestWriteFile_ReplacesContentAndKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("A=1\n"), 0o640); err != nil {
		t.Fatalf("seed: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := doc.Set("B", "2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := WriteFile(path, doc, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "A=1\nB=2\n" {
		t.Fatalf("unexpected content: %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if os.PathSeparator == '/' && info.Mode().Perm() != 0o640 {
		t.Fatalf("expected mode 0640 preserved, got %v", info.Mode().Perm())
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v", leftovers)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
