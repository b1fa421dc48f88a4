package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/engine/resolver"
	"go.trai.ch/zerr"
)

func node(name, version string) domain.DependencyNode {
	return domain.DependencyNode{Name: name, Version: domain.MustParseVersion(version)}
}

func req(s string) domain.Requirement {
	return domain.MustParseRequirement(s)
}

func TestSelect_HighestVersionSatisfyingAllEdges(t *testing.T) {
	g := domain.NewDependencyGraph()
	a := g.AddNode(node("a", "1.0.0"))
	b := g.AddNode(node("b", "1.0.0"))
	c2 := g.AddNode(node("c", "2.0.0"))
	c16 := g.AddNode(node("c", "1.6.0"))
	c15 := g.AddNode(node("c", "1.5.0"))
	g.AddEdge(domain.RootID, a, req("*"))
	g.AddEdge(domain.RootID, b, req("*"))
	g.AddEdge(a, c2, req(">=1.0"))
	g.AddEdge(b, c16, req(">=1.5, <2.0"))
	g.AddEdge(b, c15, req(">=1.5, <2.0"))

	sel, err := resolver.Select(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, sel.Names())
	assert.Equal(t, "1.6.0", sel[2].Version.String())
	assert.Equal(t, c16, sel[2].ID)
	assert.True(t, sel[0].Direct)
	assert.False(t, sel[2].Direct, "c is only required by other packages")
}

func TestSelect_TieGoesToFirstDiscovered(t *testing.T) {
	g := domain.NewDependencyGraph()
	first := g.AddNode(node("c", "1.0.0"))
	second := g.AddNode(node("c", "1.0.0"))
	g.AddEdge(domain.RootID, first, req("*"))
	g.AddEdge(domain.RootID, second, req("*"))

	sel, err := resolver.Select(g)
	require.NoError(t, err)
	require.Len(t, sel, 1)
	assert.Equal(t, first, sel[0].ID)
}

func TestSelect_Unsatisfiable(t *testing.T) {
	g := domain.NewDependencyGraph()
	a := g.AddNode(node("a", "1.0.0"))
	c2 := g.AddNode(node("c", "2.0.0"))
	c1 := g.AddNode(node("c", "1.6.0"))
	g.AddEdge(domain.RootID, a, req("*"))
	g.AddEdge(a, c2, req(">=2.0"))
	g.AddEdge(domain.RootID, c1, req("<2.0"))

	_, err := resolver.Select(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoViableVersion)
	assert.ErrorContains(t, err, "a 1.0.0 requires >=2.0")
	assert.ErrorContains(t, err, "project requires <2.0")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "c", zErr.Metadata()["package"])
	assert.Equal(t, ">=2.0, <2.0", zErr.Metadata()["requirements"])
}

func TestSelect_OrderFollowsDiscovery(t *testing.T) {
	g := domain.NewDependencyGraph()
	for _, name := range []string{"zeta", "alpha", "mid", "alpha"} {
		id := g.AddNode(node(name, "1.0.0"))
		g.AddEdge(domain.RootID, id, req("*"))
	}

	sel, err := resolver.Select(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, sel.Names())
}

func TestSelect_EmptyGraph(t *testing.T) {
	sel, err := resolver.Select(domain.NewDependencyGraph())
	require.NoError(t, err)
	assert.Empty(t, sel)
}
