// Package matrix implements the dense 0/1 follower×politician matrix, its
// persisted artifact form, and the one-mode projection used to build the
// politician network.
package matrix

import (
	"github.com/clemence/poliscope/internal/domain"
)

// Bipartite is a dense 0/1 matrix with users on the rows and politicians on
// the columns. Row and column ids are unique and non-missing; every subset
// operation re-validates that invariant and fails loudly instead of
// truncating silently.
type Bipartite struct {
	RowIDs []string
	ColIDs []string
	Cells  [][]uint8

	rowIndex map[string]int
	colIndex map[string]int
}

// NewBipartite allocates a zeroed matrix over the given ids.
func NewBipartite(rowIDs, colIDs []string) (*Bipartite, error) {
	rowIndex, err := buildIndex(rowIDs, "matrix/row-ids")
	if err != nil {
		return nil, err
	}
	colIndex, err := buildIndex(colIDs, "matrix/col-ids")
	if err != nil {
		return nil, err
	}

	cells := make([][]uint8, len(rowIDs))
	for i := range cells {
		cells[i] = make([]uint8, len(colIDs))
	}

	return &Bipartite{
		RowIDs:   append([]string(nil), rowIDs...),
		ColIDs:   append([]string(nil), colIDs...),
		Cells:    cells,
		rowIndex: rowIndex,
		colIndex: colIndex,
	}, nil
}

func buildIndex(ids []string, check string) (map[string]int, error) {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, domain.Integrity(check, "<empty>", "missing id at position %d", i)
		}
		if prev, dup := index[id]; dup {
			return nil, domain.Integrity(check, id, "duplicate id at positions %d and %d", prev, i)
		}
		index[id] = i
	}
	return index, nil
}

// Set marks that user row follows politician col.
func (b *Bipartite) Set(row, col string) error {
	i, ok := b.rowIndex[row]
	if !ok {
		return domain.Integrity("matrix/row-missing", row, "row not in matrix")
	}
	j, ok := b.colIndex[col]
	if !ok {
		return domain.Integrity("matrix/col-missing", col, "column not in matrix")
	}
	b.Cells[i][j] = 1
	return nil
}

// Get reports whether user row follows politician col.
func (b *Bipartite) Get(row, col string) bool {
	i, ok := b.rowIndex[row]
	if !ok {
		return false
	}
	j, ok := b.colIndex[col]
	if !ok {
		return false
	}
	return b.Cells[i][j] == 1
}

// RowSums returns, per user, the number of politicians followed.
func (b *Bipartite) RowSums() []int {
	sums := make([]int, len(b.RowIDs))
	for i, row := range b.Cells {
		total := 0
		for _, cell := range row {
			total += int(cell)
		}
		sums[i] = total
	}
	return sums
}

// ColSums returns, per politician, the number of followers in the matrix.
func (b *Bipartite) ColSums() []int {
	sums := make([]int, len(b.ColIDs))
	for _, row := range b.Cells {
		for j, cell := range row {
			sums[j] += int(cell)
		}
	}
	return sums
}

// HasRow reports whether the user id is a row of the matrix.
func (b *Bipartite) HasRow(id string) bool {
	_, ok := b.rowIndex[id]
	return ok
}

// SelectRows returns a new matrix restricted to the given row ids, kept in
// the matrix's own row order. Every requested id must exist.
func (b *Bipartite) SelectRows(keep []string) (*Bipartite, error) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		if _, ok := b.rowIndex[id]; !ok {
			return nil, domain.Integrity("matrix/row-missing", id, "row not in matrix")
		}
		keepSet[id] = struct{}{}
	}
	return b.filter(func(id string) bool {
		_, ok := keepSet[id]
		return ok
	}, func(string) bool { return true })
}

// SelectCols returns a new matrix restricted to the given column ids, kept
// in the matrix's own column order. Every requested id must exist.
func (b *Bipartite) SelectCols(keep []string) (*Bipartite, error) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		if _, ok := b.colIndex[id]; !ok {
			return nil, domain.Integrity("matrix/col-missing", id, "column not in matrix")
		}
		keepSet[id] = struct{}{}
	}
	return b.filter(func(string) bool { return true }, func(id string) bool {
		_, ok := keepSet[id]
		return ok
	})
}

// FilterRowsBySum keeps rows whose sum is at least min.
func (b *Bipartite) FilterRowsBySum(min int) (*Bipartite, error) {
	sums := b.RowSums()
	keep := make(map[string]struct{}, len(b.RowIDs))
	for i, id := range b.RowIDs {
		if sums[i] >= min {
			keep[id] = struct{}{}
		}
	}
	return b.filter(func(id string) bool {
		_, ok := keep[id]
		return ok
	}, func(string) bool { return true })
}

// FilterColsBySum keeps columns whose sum is at least min.
func (b *Bipartite) FilterColsBySum(min int) (*Bipartite, error) {
	sums := b.ColSums()
	keep := make(map[string]struct{}, len(b.ColIDs))
	for j, id := range b.ColIDs {
		if sums[j] >= min {
			keep[id] = struct{}{}
		}
	}
	return b.filter(func(string) bool { return true }, func(id string) bool {
		_, ok := keep[id]
		return ok
	})
}

func (b *Bipartite) filter(keepRow, keepCol func(id string) bool) (*Bipartite, error) {
	var rowIDs, colIDs []string
	var rowIdx, colIdx []int
	for i, id := range b.RowIDs {
		if keepRow(id) {
			rowIDs = append(rowIDs, id)
			rowIdx = append(rowIdx, i)
		}
	}
	for j, id := range b.ColIDs {
		if keepCol(id) {
			colIDs = append(colIDs, id)
			colIdx = append(colIdx, j)
		}
	}

	out, err := NewBipartite(rowIDs, colIDs)
	if err != nil {
		return nil, err
	}
	for i, srcRow := range rowIdx {
		for j, srcCol := range colIdx {
			out.Cells[i][j] = b.Cells[srcRow][srcCol]
		}
	}
	return out, nil
}
