// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msgidx/msgidx/internal/log"
)

// FileName is the config file looked up in the user config directory.
const FileName = "msgidx.yaml"

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Namespace: optional dotted prefix tried before the plain key, usually
//     the running subcommand (e.g. "diff" makes "collisions" resolve
//     "diff.collisions" first).
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// Load reads the YAML configuration file and populates the global Config. A
// namespace may be supplied; it is stored on the result and used by the typed
// getters.
func Load(namespace ...string) (Type, error) {
	path, err := File()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data,
	}
	if len(namespace) == 1 {
		Config.Namespace = namespace[0]
	}

	return Config, nil
}

// File returns the path of the YAML config file. MSGIDX_CFG_FILE wins when
// set; otherwise msgidx.yaml in os.UserConfigDir is used. The file must exist
// and must not be a directory.
func File() (string, error) {
	if cfgPath := os.Getenv("MSGIDX_CFG_FILE"); cfgPath != "" {
		info, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("config file not found at MSGIDX_CFG_FILE path: %s", cfgPath)
		}
		if info.IsDir() {
			return "", fmt.Errorf("MSGIDX_CFG_FILE points to a directory: %s", cfgPath)
		}
		log.Debugf("using config file from MSGIDX_CFG_FILE: %s", cfgPath)
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", errors.New("no config file found in standard locations")
}

// GetBool returns the boolean value for the given dotted key path, or the
// single default when the key is missing.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, errors.New("value is not a bool")
	}
	return b, nil
}

// GetInt returns the integer value for the given dotted key path, or the
// single default when the key is missing. YAML numbers may decode as int,
// int64 or float64.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

// GetString returns the string value for the given dotted key path, or the
// single default when the key is missing.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}
	return s, nil
}

// GetStringSlice returns the string slice value for the given dotted key path,
// or the single default when the key is missing.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("slice element is not a string")
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, errors.New("value is not a slice")
	}
}

// lookup lazily loads the config and resolves key, trying the namespaced form
// first.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		ns := Config.Namespace
		if _, err := Load(); err == nil {
			Config.Namespace = ns
		}
	}
	return Config.get(key)
}

// get walks the configuration tree using a dotted key path (e.g.
// "diff.collisions"). When Namespace is set, Namespace + "." + kspec is tried
// before kspec.
func (cfg *Type) get(kspec string) (any, error) {
	var candidateKeys []string
	if cfg.Namespace != "" {
		candidateKeys = append(candidateKeys, cfg.Namespace+"."+kspec)
	}
	candidateKeys = append(candidateKeys, kspec)

	for _, key := range candidateKeys {
		if val, ok := walk(cfg.Data, strings.Split(key, ".")); ok {
			return val, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

func walk(data map[string]interface{}, keys []string) (any, bool) {
	var current interface{} = data
	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if current, ok = m[key]; !ok {
			return nil, false
		}
	}
	return current, true
}
