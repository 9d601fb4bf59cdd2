// Package graph maintains a heterogeneous index over the record kinds the
// wallet tracks: transactions, operations, effects and account offers. Nodes
// are addressed by a composite identifier "<kind>:<record id>", so inserting
// the same logical record twice overwrites instead of duplicating. Edges are
// undirected relationships between any two nodes.
package graph

import (
	"maps"

	"github.com/samber/lo"

	"github.com/mtlprog/wallet/internal/domain"
)

// Graph is an in-memory node/edge index. Not safe for concurrent mutation;
// the owning coordinator serializes writes.
type Graph struct {
	nodes map[string]Record
	edges map[Edge]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]Record),
		edges: make(map[Edge]struct{}),
	}
}

// Clone returns an independent copy of the graph. Mutating the clone leaves
// the original untouched, so an owner can rebuild into a copy and swap the
// pointer while readers keep iterating the old one.
func (g *Graph) Clone() *Graph {
	return &Graph{
		nodes: maps.Clone(g.nodes),
		edges: maps.Clone(g.edges),
	}
}

// Add upserts records into the node index. No edges are created implicitly.
func (g *Graph) Add(records ...Record) {
	for _, r := range records {
		g.nodes[r.NodeID()] = r
	}
}

// Connect records an undirected edge between two records, upserting both
// nodes first.
func (g *Graph) Connect(a, b Record) {
	g.Add(a, b)
	g.AddEdge(a.NodeID(), b.NodeID())
}

// AddEdge records an undirected edge between two node identifiers. Adding
// the same pair in either order yields one entry.
func (g *Graph) AddEdge(a, b string) {
	g.edges[newEdge(a, b)] = struct{}{}
}

// Node returns the record stored under the given node identifier.
func (g *Graph) Node(id string) (Record, bool) {
	r, ok := g.nodes[id]
	return r, ok
}

// HasEdge reports whether the two nodes are connected, in either order.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.edges[newEdge(a, b)]
	return ok
}

// IncidentEdges returns all edges touching the given node, regardless of
// which endpoint the node was stored as.
func (g *Graph) IncidentEdges(node string) []Edge {
	edges := make([]Edge, 0)
	for e := range g.edges {
		if e.A == node || e.B == node {
			edges = append(edges, e)
		}
	}
	return edges
}

// Related returns the records on the far end of every edge touching node.
func (g *Graph) Related(node string) []Record {
	return lo.FilterMap(g.IncidentEdges(node), func(e Edge, _ int) (Record, bool) {
		other := e.A
		if other == node {
			other = e.B
		}
		return g.Node(other)
	})
}

// NodeCount returns the number of indexed records.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Clear removes all nodes and edges.
func (g *Graph) Clear() {
	g.nodes = make(map[string]Record)
	g.edges = make(map[Edge]struct{})
}

// ClearEdges removes all edges, keeping the nodes.
func (g *Graph) ClearEdges() {
	g.edges = make(map[Edge]struct{})
}

// Transactions returns all transaction records in the graph.
func (g *Graph) Transactions() []domain.Transaction {
	return collect(g, Record.Transaction)
}

// Operations returns all operation records in the graph.
func (g *Graph) Operations() []domain.Operation {
	return collect(g, Record.Operation)
}

// Effects returns all effect records in the graph.
func (g *Graph) Effects() []domain.Effect {
	return collect(g, Record.Effect)
}

// Offers returns all account offer records in the graph.
func (g *Graph) Offers() []domain.AccountOffer {
	return collect(g, Record.Offer)
}

func collect[T any](g *Graph, accessor func(Record) (T, bool)) []T {
	out := make([]T, 0)
	for _, r := range g.nodes {
		if v, ok := accessor(r); ok {
			out = append(out, v)
		}
	}
	return out
}
