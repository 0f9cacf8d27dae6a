package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clemence/poliscope/internal/dataset"
)

// WriteDataset serializes the dataset into users.csv, politicians.csv and
// matrix.json under the provided directory.
func WriteDataset(ds Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := dataset.WriteAnnotatedUsers(filepath.Join(dir, "users.csv"), ds.Users); err != nil {
		return err
	}
	if err := dataset.WriteAnnotatedPoliticians(filepath.Join(dir, "politicians.csv"), ds.Politicians); err != nil {
		return err
	}
	return ds.Artifact.Save(filepath.Join(dir, "matrix.json"))
}
