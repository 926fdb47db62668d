package config

import (
	"os"
	"strings"
)

// Source is a read-only key/value configuration source.
type Source interface {
	// Lookup returns the value for key and whether it was present.
	Lookup(key string) (string, bool)
}

// Env reads values from the process environment.
type Env struct{}

var _ Source = Env{}

// Lookup implements Source.
func (Env) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource is a Source backed by a map.
type MapSource map[string]string

var _ Source = MapSource{}

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Get returns the trimmed value for key, or an empty string if the key is
// missing or src is nil.
func Get(src Source, key string) string {
	if src == nil {
		return ""
	}
	v, _ := src.Lookup(key)
	return strings.TrimSpace(v)
}

// FirstNonBlank returns the first non-blank value of key across sources,
// each paired with the key to read from it.
func FirstNonBlank(lookups ...Lookup) string {
	for _, l := range lookups {
		if v := Get(l.Source, l.Key); v != "" {
			return v
		}
	}
	return ""
}

// Lookup pairs a Source with the key to read from it.
type Lookup struct {
	Source Source
	Key    string
}
