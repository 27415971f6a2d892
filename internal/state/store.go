package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/vdev-tools/vdev/internal/errors"
	"github.com/vdev-tools/vdev/internal/logging"
)

const recordSuffix = ".json"

// Record is the persisted selection for one integration.
type Record struct {
	Integration string `json:"integration"`
	Active      string `json:"active,omitempty"`
	ActivatedAt string `json:"activatedAt,omitempty"`
}

// Reader answers which environment of an integration is active.
// ok is false when none is.
type Reader interface {
	Active(integration string) (environment string, ok bool, err error)
}

// Store is a Reader that can also change the selection.
type Store interface {
	Reader
	Activate(integration, environment string) error
	Deactivate(integration string) error
	List() ([]Record, error)
}

// FileStore keeps one JSON record per integration in a directory.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

// Dir returns the directory records are stored in.
func (s *FileStore) Dir() string {
	return s.dir
}

func validateKey(integration string) error {
	if integration == "" {
		return fmt.Errorf("integration name cannot be empty")
	}
	if integration == "." || integration == ".." || strings.ContainsAny(integration, `/\`) {
		return fmt.Errorf("invalid integration name %q", integration)
	}
	return nil
}

func (s *FileStore) recordPath(integration string) (string, error) {
	if err := validateKey(integration); err != nil {
		return "", errors.ValidationError(err.Error())
	}
	return securejoin.SecureJoin(s.dir, integration+recordSuffix)
}

// Active implements Reader.
func (s *FileStore) Active(integration string) (string, bool, error) {
	record, ok, err := s.read(integration)
	if err != nil || !ok || record.Active == "" {
		return "", false, err
	}
	return record.Active, true, nil
}

// read loads the record of integration; ok is false when there is none.
func (s *FileStore) read(integration string) (Record, bool, error) {
	path, err := s.recordPath(integration)
	if err != nil {
		return Record{}, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, errors.StateReadError(integration, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, false, errors.StateReadError(integration, err)
	}
	if record.Integration != "" && record.Integration != integration {
		logging.Warn("active-environment record names another integration",
			"integration", integration, "recorded", record.Integration, "path", path)
	}
	record.Integration = integration
	return record, true, nil
}

// Activate records environment as the active one, replacing any previous
// selection.
func (s *FileStore) Activate(integration, environment string) error {
	if environment == "" {
		return errors.ValidationError("environment name cannot be empty")
	}
	path, err := s.recordPath(integration)
	if err != nil {
		return err
	}

	record := Record{
		Integration: integration,
		Active:      environment,
		ActivatedAt: s.now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.StateWriteError(integration, err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return errors.StateWriteError(integration, err)
	}
	logging.Debug("activated environment", "integration", integration, "environment", environment, "path", path)
	return nil
}

// Deactivate removes the record. Deactivating an integration with no
// active environment is a no-op.
func (s *FileStore) Deactivate(integration string) error {
	path, err := s.recordPath(integration)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.StateWriteError(integration, err)
	}
	return nil
}

// List returns every readable record with an active environment, sorted by
// integration. Unreadable records are skipped with a warning.
func (s *FileStore) List() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state directory: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != recordSuffix {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), recordSuffix)
		record, ok, err := s.read(name)
		if err != nil {
			logging.Warn("skipping unreadable state record", "integration", name, "error", err)
			continue
		}
		if !ok || record.Active == "" {
			continue
		}
		records = append(records, record)
	}

	slices.SortFunc(records, func(a, b Record) int {
		return strings.Compare(a.Integration, b.Integration)
	})
	return records, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".record-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set record permissions: %w", err)
	}
	return os.Rename(tmpName, path)
}
