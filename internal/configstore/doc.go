// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package configstore persists the entities service configuration options
// in one of two dotenv files, the CLI-local one or the one shared with the
// service. Callers pick the file with a Mode on every call.
//
// Every mutation is a whole-file read, in-memory edit and whole-file
// rewrite. There is no locking: concurrent writers to the same file get
// last-writer-wins results.
package configstore
