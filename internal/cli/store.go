package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/hearth/internal/keyring"
	"github.com/julianstephens/hearth/internal/storage"
	"github.com/julianstephens/hearth/internal/storage/postgres"
	"github.com/julianstephens/hearth/internal/storage/sqlite"
)

// KeyringTarget as the --db value reads the connection string from the OS keyring.
const KeyringTarget = "keyring"

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// OpenStore picks the storage backend for target: the OS keyring, a
// PostgreSQL connection string, a .json file or, by default, a SQLite file.
func OpenStore(target string) (storage.Provider, error) {
	target = strings.TrimSpace(target)

	if target == KeyringTarget {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring, use 'hearth keyring set' to store one")
			}
			return nil, err
		}
		// Passwords are acceptable here since the keyring is encrypted
		if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("invalid connection string in keyring: %w", err)
		}
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(target) || strings.Contains(target, "host=") {
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed, store it with 'hearth keyring set' and pass --db=%s, or use .pgpass", KeyringTarget)
			}
			return nil, err
		}
		return postgres.New(target), nil
	}

	path := ExpandHome(target)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}
