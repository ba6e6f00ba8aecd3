package ignite

import (
	"path/filepath"
	"strings"

	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/filesys"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// markerFileName is the on-disk file recording which engine backend a data
// directory was last opened with (spec §6).
const markerFileName = "engine"

// verifyOrWriteEngineMarker enforces spec §6's "refusing to open a
// directory with a mismatched engine is mandatory": if the marker file
// already exists and names a different engine than kind, it fails before
// any segment or database file is touched. Otherwise it creates the data
// directory (if needed) and writes the marker for the first time.
func verifyOrWriteEngineMarker(dataDir string, kind options.EngineKind) error {
	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create data directory").WithPath(dataDir)
	}

	markerPath := filepath.Join(dataDir, markerFileName)
	exists, err := filesys.Exists(markerPath)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat engine marker").WithPath(markerPath)
	}

	if !exists {
		if err := filesys.WriteFile(markerPath, 0644, []byte(kind)); err != nil {
			return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write engine marker").WithPath(markerPath)
		}
		return nil
	}

	contents, err := filesys.ReadFile(markerPath)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read engine marker").WithPath(markerPath)
	}

	recorded := options.EngineKind(strings.TrimSpace(string(contents)))
	if recorded != kind {
		return errors.NewStorageError(nil, errors.ErrorCodeEngineMismatch, "data directory was opened with a different engine").
			WithPath(dataDir).
			WithDetail("recordedEngine", string(recorded)).
			WithDetail("requestedEngine", string(kind))
	}
	return nil
}
