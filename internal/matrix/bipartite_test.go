package matrix

import (
	"errors"
	"testing"

	"github.com/clemence/poliscope/internal/domain"
)

func mustBipartite(t *testing.T, rows, cols []string) *Bipartite {
	t.Helper()
	m, err := NewBipartite(rows, cols)
	if err != nil {
		t.Fatalf("NewBipartite: %v", err)
	}
	return m
}

func follow(t *testing.T, m *Bipartite, row string, cols ...string) {
	t.Helper()
	for _, col := range cols {
		if err := m.Set(row, col); err != nil {
			t.Fatalf("Set(%s, %s): %v", row, col, err)
		}
	}
}

func TestNewBipartiteRejectsDuplicateIDs(t *testing.T) {
	_, err := NewBipartite([]string{"u1", "u1"}, []string{"a"})
	var integrity *domain.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrity.Check != "matrix/row-ids" {
		t.Fatalf("unexpected check %q", integrity.Check)
	}
}

func TestNewBipartiteRejectsMissingID(t *testing.T) {
	_, err := NewBipartite([]string{"u1", ""}, []string{"a"})
	var integrity *domain.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
}

func TestRowAndColSums(t *testing.T) {
	m := mustBipartite(t, []string{"u1", "u2"}, []string{"a", "b", "c"})
	follow(t, m, "u1", "a", "b")
	follow(t, m, "u2", "b")

	rows := m.RowSums()
	if rows[0] != 2 || rows[1] != 1 {
		t.Fatalf("unexpected row sums %v", rows)
	}
	cols := m.ColSums()
	if cols[0] != 1 || cols[1] != 2 || cols[2] != 0 {
		t.Fatalf("unexpected col sums %v", cols)
	}
}

func TestSelectRowsFailsOnUnknownID(t *testing.T) {
	m := mustBipartite(t, []string{"u1"}, []string{"a"})
	_, err := m.SelectRows([]string{"ghost"})
	var integrity *domain.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrity.Entity != "ghost" {
		t.Fatalf("expected offending entity in error, got %q", integrity.Entity)
	}
}

func TestTrimmingIsMonotonic(t *testing.T) {
	m := mustBipartite(t, []string{"u1", "u2", "u3"}, []string{"a", "b", "c"})
	follow(t, m, "u1", "a", "b")
	follow(t, m, "u2", "a")
	follow(t, m, "u3", "c")

	steps := []func(*Bipartite) (*Bipartite, error){
		func(b *Bipartite) (*Bipartite, error) { return b.SelectRows([]string{"u1", "u2"}) },
		func(b *Bipartite) (*Bipartite, error) { return b.FilterColsBySum(1) },
		func(b *Bipartite) (*Bipartite, error) { return b.FilterRowsBySum(2) },
	}

	current := m
	for i, step := range steps {
		next, err := step(current)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if len(next.RowIDs) > len(current.RowIDs) || len(next.ColIDs) > len(current.ColIDs) {
			t.Fatalf("step %d grew the matrix: %dx%d -> %dx%d", i,
				len(current.RowIDs), len(current.ColIDs), len(next.RowIDs), len(next.ColIDs))
		}
		for _, id := range next.RowIDs {
			if !current.HasRow(id) {
				t.Fatalf("step %d introduced unknown row %q", i, id)
			}
		}
		current = next
	}

	// u3 went with SelectRows, column c with FilterColsBySum, u2 with
	// FilterRowsBySum.
	if len(current.RowIDs) != 1 || current.RowIDs[0] != "u1" {
		t.Fatalf("unexpected surviving rows %v", current.RowIDs)
	}
	if len(current.ColIDs) != 2 {
		t.Fatalf("unexpected surviving cols %v", current.ColIDs)
	}
}

func TestFilterPreservesCellValues(t *testing.T) {
	m := mustBipartite(t, []string{"u1", "u2"}, []string{"a", "b"})
	follow(t, m, "u1", "a")
	follow(t, m, "u2", "b")

	trimmed, err := m.SelectRows([]string{"u2"})
	if err != nil {
		t.Fatalf("SelectRows: %v", err)
	}
	if trimmed.Get("u2", "a") || !trimmed.Get("u2", "b") {
		t.Fatalf("cell values shifted during trim: %v", trimmed.Cells)
	}
}
