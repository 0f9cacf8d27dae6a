// Package graph abstracts the Bolt-speaking graph database that stores the
// projected politician network.
package graph

import (
	"context"
	"errors"
)

// Client is the minimal contract the repository needs from the graph
// engine.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified query response.
type Result struct {
	Records []Record
}

// Record is one row of a query response, keyed by return alias.
type Record map[string]any

// Options configures a client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
