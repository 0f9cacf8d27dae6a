package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func smallConfig() Config {
	return Config{
		NumUsers:       50,
		NumPoliticians: 8,
		FollowDensity:  0.2,
		PopularitySkew: 2.0,
		ForeignShare:   0.2,
		Seed:           7,
	}
}

func TestGenerateShapes(t *testing.T) {
	ds, err := New(smallConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(ds.Users) != 50 || len(ds.Politicians) != 8 {
		t.Fatalf("unexpected sizes: %d users, %d politicians", len(ds.Users), len(ds.Politicians))
	}
	if len(ds.Artifact.Matrix.RowIDs) != 50 || len(ds.Artifact.Matrix.ColIDs) != 8 {
		t.Fatalf("matrix shape does not match the tables")
	}
	if err := ds.Artifact.Validate(); err != nil {
		t.Fatalf("generated artifact invalid: %v", err)
	}
	for i, user := range ds.Users {
		if user.ID != ds.Artifact.Matrix.RowIDs[i] {
			t.Fatalf("row %d id mismatch: %q vs %q", i, user.ID, ds.Artifact.Matrix.RowIDs[i])
		}
	}
	for _, p := range ds.Politicians {
		if p.Twitter == "" || p.Party == "" {
			t.Fatalf("politician missing attributes: %+v", p)
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	first, err := New(smallConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := New(smallConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for i := range first.Users {
		if first.Users[i].Name != second.Users[i].Name ||
			first.Users[i].RawLocation != second.Users[i].RawLocation {
			t.Fatalf("user %d differs across runs with the same seed", i)
		}
	}
	for i := range first.Artifact.Matrix.Cells {
		for j := range first.Artifact.Matrix.Cells[i] {
			if first.Artifact.Matrix.Cells[i][j] != second.Artifact.Matrix.Cells[i][j] {
				t.Fatalf("cell (%d,%d) differs across runs with the same seed", i, j)
			}
		}
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(smallConfig()).Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWriteDataset(t *testing.T) {
	ds, err := New(smallConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	dir := t.TempDir()
	if err := WriteDataset(ds, dir); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}

	for _, name := range []string{"users.csv", "politicians.csv", "matrix.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "users.csv"))
	if err != nil {
		t.Fatalf("read users.csv: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,name,location") {
		t.Fatalf("unexpected users.csv header: %.60s", data)
	}
}
