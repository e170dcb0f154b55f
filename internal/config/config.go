// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config resolves the settings the entities service runs with.
// Values come from, in increasing precedence: built-in defaults, a dotenv
// store file and ENTITY_SERVICE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/toeirei/entities-service/internal/configstore"
)

// EnvPrefix is prepended (with an underscore) to every key to form its
// environment variable name.
const EnvPrefix = "entity_service"

// ErrInvalidSetting is wrapped by every validation failure from Load.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings is the resolved service configuration.
type Settings struct {
	BaseURL       string `mapstructure:"base_url"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoUser     string `mapstructure:"mongo_user"`
	MongoPassword string `mapstructure:"mongo_password"`
}

// Lookup returns the resolved value of key.
func (s Settings) Lookup(key configstore.ConfigKey) string {
	switch key {
	case configstore.BaseURL:
		return s.BaseURL
	case configstore.MongoURI:
		return s.MongoURI
	case configstore.MongoUser:
		return s.MongoUser
	case configstore.MongoPassword:
		return s.MongoPassword
	}
	return ""
}

// EnvVar is the environment variable that overrides key.
func EnvVar(key configstore.ConfigKey) string {
	return strings.ToUpper(EnvPrefix + "_" + key.String())
}

// Load resolves the settings. path names a dotenv store file; it may be
// empty or point at a file that does not exist, in which case only
// defaults and the environment apply.
func Load(path string) (Settings, error) {
	var s Settings
	v := viper.New()

	// 1. Defaults
	for _, key := range configstore.Keys() {
		if def := key.Default(); def != "" {
			v.SetDefault(key.String(), def)
		}
	}

	// 2. Store file
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return s, fmt.Errorf("read %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return s, err
		}
	}

	// 3. Environment. Keys without a default or file entry are unknown to
	// AutomaticEnv, so every key is bound explicitly.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configstore.Keys() {
		if err := v.BindEnv(key.String()); err != nil {
			return s, err
		}
	}

	if err := v.Unmarshal(&s, viper.DecodeHook(trimSpaceHook())); err != nil {
		return s, err
	}
	return s, validate(&s)
}

// trimSpaceHook strips surrounding whitespace from every string value.
func trimSpaceHook() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if from != reflect.String || to != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(data.(string)), nil
	}
}

func validate(s *Settings) error {
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	u, err := url.Parse(s.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url %q is not an http(s) URL", ErrInvalidSetting, s.BaseURL)
	}

	scheme, _, ok := strings.Cut(s.MongoURI, "://")
	if !ok || (scheme != "mongodb" && scheme != "mongodb+srv") {
		return fmt.Errorf("%w: mongo_uri %q must use the mongodb or mongodb+srv scheme", ErrInvalidSetting, s.MongoURI)
	}
	return nil
}
