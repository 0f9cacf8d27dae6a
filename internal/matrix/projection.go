package matrix

import (
	"github.com/clemence/poliscope/internal/domain"
)

// OneMode is the square shared-followers matrix over politicians, obtained
// by multiplying the transposed bipartite matrix with itself. Counts are
// symmetric; the diagonal holds each politician's own follower count.
type OneMode struct {
	Handles []string
	Counts  [][]int
}

// Project computes the one-mode projection M = Bᵀ·B. The matrix is built
// column-pair by column-pair, walking each follower row once.
func Project(b *Bipartite) *OneMode {
	n := len(b.ColIDs)
	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, n)
	}

	for _, row := range b.Cells {
		for i := 0; i < n; i++ {
			if row[i] == 0 {
				continue
			}
			counts[i][i]++
			for j := i + 1; j < n; j++ {
				if row[j] == 1 {
					counts[i][j]++
					counts[j][i]++
				}
			}
		}
	}

	return &OneMode{
		Handles: append([]string(nil), b.ColIDs...),
		Counts:  counts,
	}
}

// Followers returns the diagonal: each politician's own follower count.
func (m *OneMode) Followers() map[string]int {
	out := make(map[string]int, len(m.Handles))
	for i, handle := range m.Handles {
		out[handle] = m.Counts[i][i]
	}
	return out
}

// Edges derives the directed weighted edge list. The weight of (i, j) is
// the fraction of i's own followers who also follow j, so the two
// directions of a pair generally carry different weights. Self-loops and
// zero-count pairs are dropped; a zero diagonal makes the ratio undefined,
// which is a legitimate no-value outcome, so those sources emit no edges.
func (m *OneMode) Edges() []domain.WeightedEdge {
	var edges []domain.WeightedEdge
	for i, source := range m.Handles {
		own := m.Counts[i][i]
		if own == 0 {
			continue
		}
		for j, target := range m.Handles {
			if i == j {
				continue
			}
			shared := m.Counts[i][j]
			if shared == 0 {
				continue
			}
			edges = append(edges, domain.WeightedEdge{
				Source: source,
				Target: target,
				Count:  shared,
				Weight: float64(shared) / float64(own),
			})
		}
	}
	return edges
}

// FilterEdges keeps edges with weight strictly above the cutoff.
func FilterEdges(edges []domain.WeightedEdge, minWeight float64) []domain.WeightedEdge {
	var out []domain.WeightedEdge
	for _, edge := range edges {
		if edge.Weight > minWeight {
			out = append(out, edge)
		}
	}
	return out
}
