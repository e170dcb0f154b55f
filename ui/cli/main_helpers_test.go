// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toeirei/entities-service/internal/config"
	"github.com/toeirei/entities-service/internal/configstore"
	"github.com/toeirei/entities-service/internal/i18n"
)

// setupTestStore points both store files at a fresh temp tree laid out like
// an installation (<root>/.env and <root>/bin/.env) and isolates the
// environment.
func setupTestStore(t *testing.T) configstore.Paths {
	t.Helper()

	root := t.TempDir()
	binDir := filepath.Join(root, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	paths := configstore.Paths{
		CLI:     filepath.Join(binDir, configstore.DotenvName),
		Service: filepath.Join(root, configstore.DotenvName),
	}

	prev := pathsFunc
	pathsFunc = func() (configstore.Paths, error) { return paths, nil }
	t.Cleanup(func() { pathsFunc = prev })

	t.Setenv("NO_COLOR", "1")
	for _, key := range configstore.Keys() {
		t.Setenv(config.EnvVar(key), "")
		_ = os.Unsetenv(config.EnvVar(key))
	}
	i18n.Init("en")
	t.Cleanup(func() { i18n.Init("en") })
	return paths
}

// executeCommand runs a fresh root command with args and stdin and returns
// everything written to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	return out.String(), err
}

// mustExecute is executeCommand for commands expected to succeed.
func mustExecute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := executeCommand(t, stdin, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

func readStore(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func assertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, stat err: %v", path, err)
	}
}
