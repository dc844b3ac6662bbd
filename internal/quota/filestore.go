package quota

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/kapu/creator-pulse-go/pkg/errors"
)

// FileStore keeps counters in a JSON file mapping ISO date -> platform ->
// count. Every read evicts date keys other than the requested one, which
// doubles as the midnight quota reset and keeps the file from growing.
// Persistence is whole-file read-modify-write with no cross-process locking;
// deleting the file simply resets usage to zero.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type usageFile map[string]map[string]int

func (fs *FileStore) load() (usageFile, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return usageFile{}, nil
		}
		return nil, errors.NewPersistenceError("failed to read quota file", "read", fs.path, err)
	}

	var usage usageFile
	if err := json.Unmarshal(data, &usage); err != nil {
		// A corrupt file is treated as empty rather than blocking requests.
		return usageFile{}, nil
	}
	return usage, nil
}

func (fs *FileStore) save(usage usageFile) error {
	data, err := json.MarshalIndent(usage, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("failed to encode quota state", "write", fs.path, err)
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return errors.NewPersistenceError("failed to write quota file", "write", fs.path, err)
	}
	return nil
}

// purge drops every date key except keep. Returns true when anything was
// evicted.
func purge(usage usageFile, keep string) bool {
	changed := false
	for date := range usage {
		if date != keep {
			delete(usage, date)
			changed = true
		}
	}
	return changed
}

func (fs *FileStore) Usage(_ context.Context, date, platform string) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	usage, err := fs.load()
	if err != nil {
		return 0, err
	}

	if purge(usage, date) {
		// Best-effort cleanup; a failed write here must not fail the read.
		_ = fs.save(usage)
	}

	return usage[date][platform], nil
}

func (fs *FileStore) Increment(_ context.Context, date, platform string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	usage, err := fs.load()
	if err != nil {
		return err
	}

	purge(usage, date)
	if usage[date] == nil {
		usage[date] = map[string]int{}
	}
	usage[date][platform]++

	return fs.save(usage)
}
