package domain

import "iter"

// NodeID indexes a node in a DependencyGraph. IDs follow discovery order.
type NodeID int

// RootID is the parent of every direct dependency of the project.
const RootID NodeID = -1

// DependencyNode is the outcome of fetching one PackageRef. Nodes are immutable once added to a graph.
type DependencyNode struct {
	ID   NodeID
	Name string
	Ref  PackageRef

	// Location is the content-addressed directory holding the package.
	Location string
	// IncludePath is where the library's public sources live, relative to Location.
	IncludePath string
	Hash        string
	// Version comes from the fetched manifest and is authoritative over Ref.
	Version  Version
	Revision string
	// Direct is set on selected nodes the project itself depends on.
	Direct bool

	Properties LibraryProperties
}

// Edge records that From required To with Requirement.
type Edge struct {
	From        NodeID
	To          NodeID
	Requirement Requirement
}

// DependencyGraph is an arena of discovered nodes plus the edges that led to them.
type DependencyGraph struct {
	nodes []DependencyNode
	into  map[NodeID][]Edge
	outOf map[NodeID][]Edge
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		into:  make(map[NodeID][]Edge),
		outOf: make(map[NodeID][]Edge),
	}
}

// AddNode stores n and returns its assigned ID.
func (g *DependencyGraph) AddNode(n DependencyNode) NodeID {
	n.ID = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return n.ID
}

// AddEdge records a requirement from one node (or RootID) onto another.
func (g *DependencyGraph) AddEdge(from, to NodeID, req Requirement) {
	e := Edge{From: from, To: to, Requirement: req}
	g.into[to] = append(g.into[to], e)
	g.outOf[from] = append(g.outOf[from], e)
}

// Node returns the node with the given ID.
func (g *DependencyGraph) Node(id NodeID) (DependencyNode, bool) {
	if id < 0 || int(id) >= len(g.nodes) {
		return DependencyNode{}, false
	}
	return g.nodes[id], true
}

// Len returns the number of nodes.
func (g *DependencyGraph) Len() int {
	return len(g.nodes)
}

// Nodes yields nodes in discovery order.
func (g *DependencyGraph) Nodes() iter.Seq[DependencyNode] {
	return func(yield func(DependencyNode) bool) {
		for _, n := range g.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// EdgesInto returns the edges pointing at id, in insertion order.
func (g *DependencyGraph) EdgesInto(id NodeID) []Edge {
	return g.into[id]
}

// Children returns the nodes id depends on, in insertion order.
func (g *DependencyGraph) Children(id NodeID) []NodeID {
	edges := g.outOf[id]
	out := make([]NodeID, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.To)
	}
	return out
}

// RequirementsFor collects every edge that points at a node named name.
func (g *DependencyGraph) RequirementsFor(name string) []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		if n.Name == name {
			edges = append(edges, g.into[n.ID]...)
		}
	}
	return edges
}

// IsDirect reports whether any edge into a node named name starts at the root.
func (g *DependencyGraph) IsDirect(name string) bool {
	for _, e := range g.RequirementsFor(name) {
		if e.From == RootID {
			return true
		}
	}
	return false
}

// Selection holds exactly one node per package name, in first-discovery order.
type Selection []DependencyNode

// Names returns the package names in order.
func (s Selection) Names() []string {
	names := make([]string, len(s))
	for i, n := range s {
		names[i] = n.Name
	}
	return names
}
