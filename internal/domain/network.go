package domain

// WeightedEdge is a directed tie between two politicians in the one-mode
// network. Count is the number of shared followers; Weight is the fraction
// of the source politician's own followers who also follow the target, so
// the relation is asymmetric in general.
type WeightedEdge struct {
	Source string
	Target string
	Count  int
	Weight float64
}

// PoliticianNode is a node of the persisted network, as returned by the
// graph repository.
type PoliticianNode struct {
	Handle  string
	Party   string
	Mandate string
	// Followers is the diagonal of the one-mode matrix: the politician's
	// own follower count within the trimmed sample.
	Followers int
}

// Neighbor is an outgoing tie of a politician above a weight cutoff.
type Neighbor struct {
	Handle string
	Party  string
	Count  int
	Weight float64
}

// NetworkSummary aggregates the persisted network.
type NetworkSummary struct {
	Politicians int64
	Edges       int64
	MaxWeight   float64
}
