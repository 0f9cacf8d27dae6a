package matrix

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/clemence/poliscope/internal/domain"
)

func testArtifact(t *testing.T) *Artifact {
	t.Helper()
	m := mustBipartite(t, []string{"u1", "u2", "u3"}, []string{"a", "b"})
	follow(t, m, "u1", "a")
	follow(t, m, "u2", "a", "b")
	follow(t, m, "u3", "b")

	a, err := NewArtifact(m, []float64{0.1, -0.2, 0.3}, []float64{1.5, -1.5})
	if err != nil {
		t.Fatalf("NewArtifact: %v", err)
	}
	return a
}

func TestNewArtifactRejectsMisalignedStartValues(t *testing.T) {
	m := mustBipartite(t, []string{"u1"}, []string{"a"})
	_, err := NewArtifact(m, []float64{0.1, 0.2}, []float64{1.0})
	var integrity *domain.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrity.Check != "artifact/row-alignment" {
		t.Fatalf("unexpected check %q", integrity.Check)
	}
}

func TestArtifactSaveLoadRoundTrip(t *testing.T) {
	a := testArtifact(t)
	path := filepath.Join(t.TempDir(), "matrix.json")

	if err := a.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}

	if loaded.RunID != a.RunID {
		t.Fatalf("run id changed: %q vs %q", loaded.RunID, a.RunID)
	}
	if len(loaded.Matrix.RowIDs) != 3 || len(loaded.Matrix.ColIDs) != 2 {
		t.Fatalf("unexpected shape %dx%d", len(loaded.Matrix.RowIDs), len(loaded.Matrix.ColIDs))
	}
	if !loaded.Matrix.Get("u2", "b") || loaded.Matrix.Get("u1", "b") {
		t.Fatal("cell values did not survive the round trip")
	}
	if loaded.RowStart[1] != -0.2 || loaded.ColStart[1] != -1.5 {
		t.Fatalf("starting values did not survive: %v / %v", loaded.RowStart, loaded.ColStart)
	}
}

func TestArtifactTrimKeepsStartValuesAligned(t *testing.T) {
	a := testArtifact(t)

	trimmed, err := a.SelectRows([]string{"u2", "u3"})
	if err != nil {
		t.Fatalf("SelectRows: %v", err)
	}
	if err := trimmed.Validate(); err != nil {
		t.Fatalf("trimmed artifact invalid: %v", err)
	}
	if len(trimmed.RowStart) != 2 || trimmed.RowStart[0] != -0.2 || trimmed.RowStart[1] != 0.3 {
		t.Fatalf("row starting values misaligned after trim: %v", trimmed.RowStart)
	}

	trimmed, err = trimmed.FilterColsBySum(2)
	if err != nil {
		t.Fatalf("FilterColsBySum: %v", err)
	}
	if len(trimmed.Matrix.ColIDs) != 0 && len(trimmed.ColStart) != len(trimmed.Matrix.ColIDs) {
		t.Fatalf("column starting values misaligned: %d vs %d",
			len(trimmed.ColStart), len(trimmed.Matrix.ColIDs))
	}
}

func TestLoadArtifactRejectsCorruptCells(t *testing.T) {
	a := testArtifact(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "matrix.json")
	if err := a.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Truncate a cell row by rewriting the artifact with a bad payload.
	corrupt := filepath.Join(dir, "corrupt.json")
	writeCorrupt(t, path, corrupt)

	if _, err := LoadArtifact(corrupt); err == nil {
		t.Fatal("expected corrupt artifact to be rejected")
	}
}

// writeCorrupt rewrites the artifact at src with a cell row list that no
// longer matches the row ids.
func writeCorrupt(t *testing.T, src, dst string) {
	t.Helper()

	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var file map[string]any
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	file["cells"] = []string{"01"}

	out, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("encode corrupt artifact: %v", err)
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		t.Fatalf("write corrupt artifact: %v", err)
	}
}
