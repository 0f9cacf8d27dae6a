// Package repository persists and queries the projected politician network
// in the graph database.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/graph"
)

const upsertPoliticianCypher = `
MERGE (p:Politician {handle: $handle})
SET p += $props
`

const upsertEdgeCypher = `
MATCH (s:Politician {handle: $source})
MATCH (t:Politician {handle: $target})
MERGE (s)-[r:SHARES_FOLLOWERS]->(t)
SET r.count = $count, r.weight = $weight
`

const clearNetworkCypher = `
MATCH (p:Politician)
DETACH DELETE p
`

const listPoliticiansCypher = `
MATCH (p:Politician)
RETURN p.handle AS handle, p.party AS party, p.mandate AS mandate, p.followers AS followers
ORDER BY handle
`

const neighborsCypher = `
MATCH (s:Politician {handle: $handle})-[r:SHARES_FOLLOWERS]->(t:Politician)
WHERE r.weight >= $minWeight
RETURN t.handle AS handle, t.party AS party, r.count AS count, r.weight AS weight
ORDER BY weight DESC, handle
`

const summaryNodesCypher = `
MATCH (p:Politician)
RETURN count(p) AS politicians
`

const summaryEdgesCypher = `
MATCH (:Politician)-[r:SHARES_FOLLOWERS]->(:Politician)
RETURN count(r) AS edges, coalesce(max(r.weight), 0.0) AS maxWeight
`

// Repository encapsulates graph persistence for the politician network.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// UpsertPolitician ensures a node exists with the latest party, mandate and
// follower-count metadata.
func (r *Repository) UpsertPolitician(ctx context.Context, node domain.PoliticianNode) error {
	if node.Handle == "" {
		return errors.New("politician handle is required")
	}

	params := map[string]any{
		"handle": node.Handle,
		"props": map[string]any{
			"party":     node.Party,
			"mandate":   node.Mandate,
			"followers": node.Followers,
		},
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertPoliticianCypher, params); err != nil {
		return fmt.Errorf("upsert politician %s: %w", node.Handle, err)
	}
	return nil
}

// UpsertEdge refreshes one directed shared-followers tie. Both endpoints
// must already exist as nodes.
func (r *Repository) UpsertEdge(ctx context.Context, edge domain.WeightedEdge) error {
	if edge.Source == "" || edge.Target == "" {
		return errors.New("both edge endpoints are required")
	}

	params := map[string]any{
		"source": edge.Source,
		"target": edge.Target,
		"count":  edge.Count,
		"weight": edge.Weight,
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertEdgeCypher, params); err != nil {
		return fmt.Errorf("upsert edge %s->%s: %w", edge.Source, edge.Target, err)
	}
	return nil
}

// ClearNetwork removes every politician node and its relationships.
func (r *Repository) ClearNetwork(ctx context.Context) error {
	if _, err := r.client.ExecuteWrite(ctx, clearNetworkCypher, nil); err != nil {
		return fmt.Errorf("clear network: %w", err)
	}
	return nil
}

// LoadNetwork replaces the stored network with the given nodes and edges.
func (r *Repository) LoadNetwork(ctx context.Context, nodes []domain.PoliticianNode, edges []domain.WeightedEdge) error {
	if err := r.ClearNetwork(ctx); err != nil {
		return err
	}
	for _, node := range nodes {
		if err := r.UpsertPolitician(ctx, node); err != nil {
			return err
		}
	}
	for _, edge := range edges {
		if err := r.UpsertEdge(ctx, edge); err != nil {
			return err
		}
	}
	return nil
}

// ListPoliticians returns every stored node ordered by handle.
func (r *Repository) ListPoliticians(ctx context.Context) ([]domain.PoliticianNode, error) {
	res, err := r.client.ExecuteRead(ctx, listPoliticiansCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list politicians: %w", err)
	}

	nodes := make([]domain.PoliticianNode, 0, len(res.Records))
	for _, rec := range res.Records {
		nodes = append(nodes, domain.PoliticianNode{
			Handle:    asString(rec["handle"]),
			Party:     asString(rec["party"]),
			Mandate:   asString(rec["mandate"]),
			Followers: int(asInt64(rec["followers"])),
		})
	}
	return nodes, nil
}

// Neighbors returns the outgoing ties of a politician with weight at least
// minWeight, strongest first.
func (r *Repository) Neighbors(ctx context.Context, handle string, minWeight float64) ([]domain.Neighbor, error) {
	if handle == "" {
		return nil, errors.New("politician handle is required")
	}

	params := map[string]any{
		"handle":    handle,
		"minWeight": minWeight,
	}
	res, err := r.client.ExecuteRead(ctx, neighborsCypher, params)
	if err != nil {
		return nil, fmt.Errorf("neighbors of %s: %w", handle, err)
	}

	neighbors := make([]domain.Neighbor, 0, len(res.Records))
	for _, rec := range res.Records {
		neighbors = append(neighbors, domain.Neighbor{
			Handle: asString(rec["handle"]),
			Party:  asString(rec["party"]),
			Count:  int(asInt64(rec["count"])),
			Weight: asFloat64(rec["weight"]),
		})
	}
	return neighbors, nil
}

// Summary aggregates node and edge counts for the stored network. The two
// aggregations run as separate statements: matching nodes and relationships
// in one query would cross-multiply the rows and inflate the counts.
func (r *Repository) Summary(ctx context.Context) (domain.NetworkSummary, error) {
	var summary domain.NetworkSummary

	nodesRes, err := r.client.ExecuteRead(ctx, summaryNodesCypher, nil)
	if err != nil {
		return domain.NetworkSummary{}, fmt.Errorf("network summary: %w", err)
	}
	if len(nodesRes.Records) > 0 {
		summary.Politicians = asInt64(nodesRes.Records[0]["politicians"])
	}

	edgesRes, err := r.client.ExecuteRead(ctx, summaryEdgesCypher, nil)
	if err != nil {
		return domain.NetworkSummary{}, fmt.Errorf("network summary: %w", err)
	}
	if len(edgesRes.Records) > 0 {
		rec := edgesRes.Records[0]
		summary.Edges = asInt64(rec["edges"])
		summary.MaxWeight = asFloat64(rec["maxWeight"])
	}

	return summary, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
