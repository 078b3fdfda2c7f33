package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"stable-wallet/pkg/types"
)

const DefaultStoreFileName = ".stable-wallet-wallets.json"

// Store is the directory of provider wallet handles, one per
// (user, network) pair. Handles are created on first use and looked up
// thereafter; the file survives restarts.
type Store struct {
	filePath string
	mu       sync.RWMutex
	handles  map[string]types.WalletHandle
}

type storeFile struct {
	Handles map[string]types.WalletHandle `json:"handles"`
}

func storeKey(userID, networkKey string) string {
	return userID + "/" + networkKey
}

// NewStore creates a store backed by the given file path, defaulting to
// the home directory.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultStoreFileName)
	}

	store := &Store{
		filePath: filePath,
		handles:  make(map[string]types.WalletHandle),
	}

	// Load existing handles if the file exists
	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load wallet handles: %w", err)
		}
	}

	return store, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal wallet handles: %w", err)
	}

	if file.Handles != nil {
		s.handles = file.Handles
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(storeFile{Handles: s.handles}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet handles: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to temporary file first, then rename for atomic write
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write wallet handles: %w", err)
	}
	return os.Rename(tempFile, s.filePath)
}

// Get looks up the handle for a (user, network) pair
func (s *Store) Get(userID, networkKey string) (types.WalletHandle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handle, ok := s.handles[storeKey(userID, networkKey)]
	return handle, ok
}

// Put records a handle for a user. An existing handle for the same
// (user, network) pair is superseded.
func (s *Store) Put(userID string, handle types.WalletHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handles[storeKey(userID, handle.NetworkKey)] = handle
	return s.save()
}

// List returns all handles for a user
func (s *Store) List(userID string) []types.WalletHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handles := make([]types.WalletHandle, 0)
	for key, handle := range s.handles {
		if key == storeKey(userID, handle.NetworkKey) {
			handles = append(handles, handle)
		}
	}
	return handles
}
