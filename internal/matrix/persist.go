package matrix

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pipesmith/pipesmith/internal/errors"
)

// Load reads a matrix from a JSON file. A missing file is reported as
// ErrMatrixNotFound so callers can map it to a user-input error.
func Load(path string) (Matrix, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from a CLI flag, reading it is the point
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrMatrixNotFound, path)
		}
		return nil, errors.Wrapf(err, "failed to read matrix file %s", path)
	}

	var m Matrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse matrix file %s", path)
	}
	return m, nil
}

// WriteFile persists the matrix as an indented JSON array of entries.
func (m Matrix) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode matrix")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- matrix files are shareable artifacts
		return errors.Wrapf(err, "failed to write matrix file %s", path)
	}
	return nil
}
