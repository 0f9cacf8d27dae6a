package report

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/clemence/poliscope/internal/dataset"
	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/matrix"
)

var (
	edgeHeader = []string{"source", "target", "count", "weight"}
	nodeHeader = []string{"handle", "party", "mandate", "followers"}
)

// WriteEdgeList writes the full directed weighted edge list as CSV.
func WriteEdgeList(path string, edges []domain.WeightedEdge) error {
	return dataset.WriteCSV(path, edgeHeader, edgeRows(edges))
}

// WriteERGMInputs writes the hand-off for the external ERGM fit into dir:
// a node attribute table (party labels from the politician registry) and
// one thresholded edge list per weight cutoff. The fit itself is an
// external concern; these files are the whole contract.
func WriteERGMInputs(dir string, nodes []domain.PoliticianNode, edges []domain.WeightedEdge, cutoffs []float64) error {
	nodeRows := make([][]string, 0, len(nodes))
	for _, node := range nodes {
		nodeRows = append(nodeRows, []string{
			node.Handle,
			node.Party,
			node.Mandate,
			strconv.Itoa(node.Followers),
		})
	}
	if err := dataset.WriteCSV(filepath.Join(dir, "nodes.csv"), nodeHeader, nodeRows); err != nil {
		return err
	}

	for _, cutoff := range cutoffs {
		name := fmt.Sprintf("edges_w%.2f.csv", cutoff)
		subset := matrix.FilterEdges(edges, cutoff)
		if err := dataset.WriteCSV(filepath.Join(dir, name), edgeHeader, edgeRows(subset)); err != nil {
			return err
		}
	}
	return nil
}

func edgeRows(edges []domain.WeightedEdge) [][]string {
	rows := make([][]string, 0, len(edges))
	for _, edge := range edges {
		rows = append(rows, []string{
			edge.Source,
			edge.Target,
			strconv.Itoa(edge.Count),
			strconv.FormatFloat(edge.Weight, 'f', 6, 64),
		})
	}
	return rows
}
