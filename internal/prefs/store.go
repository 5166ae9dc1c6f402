// Package prefs is the persistent key-value store behind the app's flags and
// the saved session. It is constructed once at startup and passed by reference
// to every screen that needs it. Keys live in named partitions, each persisted
// as its own YAML file under the config directory.
package prefs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Partition names.
const (
	PartitionApp     = "AppPrefs"     // tutorial_completed, dark_mode
	PartitionCovered = "CoveredPrefs" // login flags and saved user fields
)

// Keys in PartitionApp.
const (
	KeyTutorialCompleted = "tutorial_completed"
	KeyDarkMode          = "dark_mode"
)

// Keys in PartitionCovered.
const (
	KeySkippedLogin = "skipped_login"
	KeyUserLoggedIn = "user_logged_in"
	KeyUserName     = "user_name"
	KeyUserEmail    = "user_email"
	KeyUserPhotoURL = "user_photo_url"
	KeyLoginMethod  = "login_method"
	KeyRefreshToken = "refresh_token"
)

type Store struct {
	dir string

	mu         sync.Mutex
	partitions map[string]*viper.Viper
}

// Open loads (or creates) the store rooted at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir, partitions: make(map[string]*viper.Viper)}, nil
}

func (s *Store) partition(name string) *viper.Viper {
	if v, ok := s.partitions[name]; ok {
		return v
	}
	v := viper.New()
	v.SetConfigFile(s.path(name))
	// A missing partition file just means defaults everywhere.
	_ = v.ReadInConfig()
	s.partitions[name] = v
	return v
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

func (s *Store) Bool(partition, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partition(partition).GetBool(key)
}

func (s *Store) SetBool(partition, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.partition(partition)
	v.Set(key, value)
	return v.WriteConfigAs(s.path(partition))
}

func (s *Store) String(partition, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partition(partition).GetString(key)
}

func (s *Store) SetString(partition, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.partition(partition)
	v.Set(key, value)
	return v.WriteConfigAs(s.path(partition))
}

// SetStrings writes several string keys in one save.
func (s *Store) SetStrings(partition string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.partition(partition)
	for key, value := range values {
		v.Set(key, value)
	}
	return v.WriteConfigAs(s.path(partition))
}

// Keys lists every key currently set in a partition.
func (s *Store) Keys(partition string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partition(partition).AllKeys()
}

// Clear removes every key in a partition and persists the empty state.
func (s *Store) Clear(partition string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(s.path(partition))
	s.partitions[partition] = v

	if err := os.Remove(s.path(partition)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
