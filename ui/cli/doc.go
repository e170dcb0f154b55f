// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the entities-service command line using Cobra.
// Commands parse and validate arguments, ask for missing input and print
// results; persistence is delegated to internal/configstore.
package cli
