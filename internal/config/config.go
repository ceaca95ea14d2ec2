// Package config loads the optional YAML defaults file referenced by
// the CLI's --config flag, the way recentfile/serializer.go loads a
// recentfile: read bytes, unmarshal into a typed struct, wrap errors.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a --config file. Any field left unset
// keeps the CLI's flag/env default.
type File struct {
	Addr    string `yaml:"addr"`
	Manager string `yaml:"manager"`
	Hash    string `yaml:"hash"`
}

// Load reads and parses a YAML config file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &f, nil
}

// Merge overlays non-empty fields of f onto the given addr/manager/hash,
// giving precedence to whichever of those three is already non-empty;
// only empty arguments are replaced by the file's values.
func (f *File) Merge(addr, manager, hash string) (string, string, string) {
	if addr == "" {
		addr = f.Addr
	}
	if manager == "" {
		manager = f.Manager
	}
	if hash == "" {
		hash = f.Hash
	}
	return addr, manager, hash
}
