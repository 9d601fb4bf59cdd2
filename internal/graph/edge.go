package graph

// Edge is an unordered pair of node identifiers. The endpoints are stored
// in lexicographic order so that (A,B) and (B,A) are the same map key.
type Edge struct {
	A, B string
}

func newEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Other returns the endpoint opposite to node, and false if node is not an
// endpoint of the edge.
func (e Edge) Other(node string) (string, bool) {
	switch node {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	}
	return "", false
}
