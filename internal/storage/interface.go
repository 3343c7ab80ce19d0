package storage

import "errors"

// ErrNotFound is returned by Get when a key has never been written or was removed.
var ErrNotFound = errors.New("storage: key not found")

// Provider is a string-to-string key/value store holding one snapshot per key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Values
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Lookup reads key from p, reporting absence separately from failure.
func Lookup(p Provider, key string) (value string, present bool, err error) {
	v, err := p.Get(key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
