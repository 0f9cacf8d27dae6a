package matrix

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clemence/poliscope/internal/domain"
)

// Artifact is the persisted model state: the bipartite matrix together with
// the latent-trait starting values, one per user row and one per politician
// column. The vectors must stay aligned with the matrix through every trim
// step; Validate is re-run after each one.
type Artifact struct {
	RunID     string
	CreatedAt time.Time
	Matrix    *Bipartite
	RowStart  []float64
	ColStart  []float64
}

// NewArtifact wraps a matrix and its starting values into a validated
// artifact with a fresh run id.
func NewArtifact(m *Bipartite, rowStart, colStart []float64) (*Artifact, error) {
	a := &Artifact{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Matrix:    m,
		RowStart:  rowStart,
		ColStart:  colStart,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks matrix/starting-value alignment.
func (a *Artifact) Validate() error {
	if a.Matrix == nil {
		return domain.Integrity("artifact/matrix", a.RunID, "matrix is nil")
	}
	if len(a.RowStart) != len(a.Matrix.RowIDs) {
		return domain.Integrity("artifact/row-alignment", a.RunID,
			"%d row starting values for %d rows", len(a.RowStart), len(a.Matrix.RowIDs))
	}
	if len(a.ColStart) != len(a.Matrix.ColIDs) {
		return domain.Integrity("artifact/col-alignment", a.RunID,
			"%d column starting values for %d columns", len(a.ColStart), len(a.Matrix.ColIDs))
	}
	if len(a.Matrix.Cells) != len(a.Matrix.RowIDs) {
		return domain.Integrity("artifact/cells", a.RunID,
			"%d cell rows for %d row ids", len(a.Matrix.Cells), len(a.Matrix.RowIDs))
	}
	for i, row := range a.Matrix.Cells {
		if len(row) != len(a.Matrix.ColIDs) {
			return domain.Integrity("artifact/cells", a.Matrix.RowIDs[i],
				"%d cells for %d columns", len(row), len(a.Matrix.ColIDs))
		}
	}
	return nil
}

// withMatrix builds a new artifact around a trimmed matrix, subsetting the
// starting-value vectors to the surviving rows and columns and validating
// the result. The run id is preserved so trim lineage stays traceable.
func (a *Artifact) withMatrix(trimmed *Bipartite) (*Artifact, error) {
	rowPos := make(map[string]int, len(a.Matrix.RowIDs))
	for i, id := range a.Matrix.RowIDs {
		rowPos[id] = i
	}
	colPos := make(map[string]int, len(a.Matrix.ColIDs))
	for j, id := range a.Matrix.ColIDs {
		colPos[id] = j
	}

	rowStart := make([]float64, len(trimmed.RowIDs))
	for i, id := range trimmed.RowIDs {
		src, ok := rowPos[id]
		if !ok {
			return nil, domain.Integrity("artifact/row-alignment", id, "trimmed row not in source matrix")
		}
		rowStart[i] = a.RowStart[src]
	}
	colStart := make([]float64, len(trimmed.ColIDs))
	for j, id := range trimmed.ColIDs {
		src, ok := colPos[id]
		if !ok {
			return nil, domain.Integrity("artifact/col-alignment", id, "trimmed column not in source matrix")
		}
		colStart[j] = a.ColStart[src]
	}

	out := &Artifact{
		RunID:     a.RunID,
		CreatedAt: a.CreatedAt,
		Matrix:    trimmed,
		RowStart:  rowStart,
		ColStart:  colStart,
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// SelectRows restricts the artifact to the given user ids.
func (a *Artifact) SelectRows(keep []string) (*Artifact, error) {
	trimmed, err := a.Matrix.SelectRows(keep)
	if err != nil {
		return nil, err
	}
	return a.withMatrix(trimmed)
}

// SelectCols restricts the artifact to the given politician handles.
func (a *Artifact) SelectCols(keep []string) (*Artifact, error) {
	trimmed, err := a.Matrix.SelectCols(keep)
	if err != nil {
		return nil, err
	}
	return a.withMatrix(trimmed)
}

// FilterRowsBySum drops user rows following fewer than min politicians.
func (a *Artifact) FilterRowsBySum(min int) (*Artifact, error) {
	trimmed, err := a.Matrix.FilterRowsBySum(min)
	if err != nil {
		return nil, err
	}
	return a.withMatrix(trimmed)
}

// FilterColsBySum drops politician columns followed by fewer than min users.
func (a *Artifact) FilterColsBySum(min int) (*Artifact, error) {
	trimmed, err := a.Matrix.FilterColsBySum(min)
	if err != nil {
		return nil, err
	}
	return a.withMatrix(trimmed)
}

// artifactFile is the on-disk JSON layout. Cell rows are encoded as strings
// of '0'/'1' characters to keep large matrices readable and compact.
type artifactFile struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Rows      []string  `json:"rows"`
	Cols      []string  `json:"cols"`
	Cells     []string  `json:"cells"`
	RowStart  []float64 `json:"row_start"`
	ColStart  []float64 `json:"col_start"`
}

// Save writes the artifact as JSON to path.
func (a *Artifact) Save(path string) error {
	if err := a.Validate(); err != nil {
		return err
	}

	file := artifactFile{
		RunID:     a.RunID,
		CreatedAt: a.CreatedAt,
		Rows:      a.Matrix.RowIDs,
		Cols:      a.Matrix.ColIDs,
		Cells:     make([]string, len(a.Matrix.Cells)),
		RowStart:  a.RowStart,
		ColStart:  a.ColStart,
	}
	for i, row := range a.Matrix.Cells {
		var sb strings.Builder
		sb.Grow(len(row))
		for _, cell := range row {
			if cell == 1 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		file.Cells[i] = sb.String()
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer out.Close()

	if err := json.NewEncoder(out).Encode(file); err != nil {
		return fmt.Errorf("encode artifact %s: %w", path, err)
	}
	return nil
}

// LoadArtifact reads and validates an artifact written by Save.
func LoadArtifact(path string) (*Artifact, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()

	var file artifactFile
	if err := json.NewDecoder(in).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}

	m, err := NewBipartite(file.Rows, file.Cols)
	if err != nil {
		return nil, err
	}
	if len(file.Cells) != len(file.Rows) {
		return nil, domain.Integrity("artifact/cells", file.RunID,
			"%d cell rows for %d row ids", len(file.Cells), len(file.Rows))
	}
	for i, encoded := range file.Cells {
		if len(encoded) != len(file.Cols) {
			return nil, domain.Integrity("artifact/cells", file.Rows[i],
				"%d cells for %d columns", len(encoded), len(file.Cols))
		}
		for j := 0; j < len(encoded); j++ {
			switch encoded[j] {
			case '1':
				m.Cells[i][j] = 1
			case '0':
				// already zero
			default:
				return nil, domain.Integrity("artifact/cells", file.Rows[i],
					"unexpected cell byte %q at column %d", encoded[j], j)
			}
		}
	}

	a := &Artifact{
		RunID:     file.RunID,
		CreatedAt: file.CreatedAt,
		Matrix:    m,
		RowStart:  file.RowStart,
		ColStart:  file.ColStart,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}
