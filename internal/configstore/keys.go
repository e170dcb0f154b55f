// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package configstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toeirei/entities-service/util/slicest"
)

// ConfigKey is one of the fixed configuration options. The zero value is
// not a valid key.
type ConfigKey int

const (
	BaseURL ConfigKey = iota + 1
	MongoURI
	MongoUser
	MongoPassword
)

type keyInfo struct {
	id          string
	description string
	sensitive   bool
	def         string
}

var keyTable = map[ConfigKey]keyInfo{
	BaseURL:       {id: "base_url", description: "Base URL, where the service is running.", def: "http://onto-ns.com/meta"},
	MongoURI:      {id: "mongo_uri", description: "URI for the MongoDB cluster/server.", def: "mongodb://localhost:27017"},
	MongoUser:     {id: "mongo_user", description: "Username for connecting to the MongoDB."},
	MongoPassword: {id: "mongo_password", description: "Password for connecting to the MongoDB.", sensitive: true},
}

var keyOrder = []ConfigKey{BaseURL, MongoURI, MongoUser, MongoPassword}

var keysByEnvName = slicest.ToMap(keyOrder, func(k ConfigKey) (string, ConfigKey) {
	return k.EnvName(), k
})

// Keys returns every configuration option in declaration order.
func Keys() []ConfigKey {
	out := make([]ConfigKey, len(keyOrder))
	copy(out, keyOrder)
	return out
}

// String returns the lower-case identifier used on the command line.
func (k ConfigKey) String() string {
	if info, ok := keyTable[k]; ok {
		return info.id
	}
	return fmt.Sprintf("ConfigKey(%d)", int(k))
}

// EnvName is the name the key is stored under in a dotenv file.
func (k ConfigKey) EnvName() string {
	return strings.ToUpper(k.String())
}

// Description is the help text shown for k.
func (k ConfigKey) Description() string { return keyTable[k].description }

// Sensitive reports whether values of k are masked when displayed.
func (k ConfigKey) Sensitive() bool { return keyTable[k].sensitive }

// Default is the value the service assumes when k is set nowhere.
func (k ConfigKey) Default() string { return keyTable[k].def }

// Valid reports whether k is a member of the fixed key set.
func (k ConfigKey) Valid() bool {
	_, ok := keyTable[k]
	return ok
}

// ErrNotRecognized matches any *NotRecognizedError.
var ErrNotRecognized = errors.New("configuration option not recognized")

// NotRecognizedError is returned by ParseKey for names outside the key set.
type NotRecognizedError struct {
	Name string
}

func (e *NotRecognizedError) Error() string {
	ids := slicest.Map(keyOrder, ConfigKey.String)
	return fmt.Sprintf("invalid configuration option %q (choose from %s)", e.Name, strings.Join(ids, ", "))
}

func (e *NotRecognizedError) Is(target error) bool { return target == ErrNotRecognized }

// ParseKey maps a command-line name to its key, ignoring case.
func ParseKey(name string) (ConfigKey, error) {
	for _, k := range keyOrder {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, &NotRecognizedError{Name: name}
}

// keyFromEnvName maps a stored dotenv name to its key. Stored names are
// matched exactly.
func keyFromEnvName(name string) (ConfigKey, bool) {
	k, ok := keysByEnvName[name]
	return k, ok
}
