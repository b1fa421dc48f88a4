package resolver

import (
	"errors"
	"strings"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Select reduces graph to one node per package name.
//
// For every name, the candidates are the nodes of that name whose version
// satisfies every requirement recorded on edges into any node of that name.
// The highest version wins; equal versions go to the node discovered first.
// Names appear in the order they were first discovered.
//
// Select does not backtrack: a candidate's own dependencies were already
// fetched and stay in the graph even when it loses.
func Select(graph *domain.DependencyGraph) (domain.Selection, error) {
	var order []string
	byName := make(map[string][]domain.DependencyNode)
	for n := range graph.Nodes() {
		if _, seen := byName[n.Name]; !seen {
			order = append(order, n.Name)
		}
		byName[n.Name] = append(byName[n.Name], n)
	}

	sel := make(domain.Selection, 0, len(order))
	for _, name := range order {
		edges := graph.RequirementsFor(name)

		var best *domain.DependencyNode
		for i := range byName[name] {
			candidate := &byName[name][i]
			if !allowsAll(edges, candidate.Version) {
				continue
			}
			if best == nil || candidate.Version.Compare(best.Version) > 0 {
				best = candidate
			}
		}

		if best == nil {
			err := zerr.With(errors.Join(domain.ErrNoViableVersion, zerr.New(describe(graph, edges))), "package", name)
			return nil, zerr.With(err, "requirements", requirementList(edges))
		}
		chosen := *best
		chosen.Direct = graph.IsDirect(name)
		sel = append(sel, chosen)
	}
	return sel, nil
}

func allowsAll(edges []domain.Edge, v domain.Version) bool {
	for _, e := range edges {
		if !e.Requirement.Allows(v) {
			return false
		}
	}
	return true
}

func requirementList(edges []domain.Edge) string {
	reqs := make([]string, 0, len(edges))
	for _, e := range edges {
		reqs = append(reqs, e.Requirement.String())
	}
	return strings.Join(reqs, ", ")
}

// describe lists which package imposed which requirement.
func describe(graph *domain.DependencyGraph, edges []domain.Edge) string {
	lines := make([]string, 0, len(edges))
	for _, e := range edges {
		from := "project"
		if n, ok := graph.Node(e.From); ok {
			from = n.Name + " " + n.Version.String()
		}
		lines = append(lines, from+" requires "+e.Requirement.String())
	}
	return strings.Join(lines, "\n")
}
