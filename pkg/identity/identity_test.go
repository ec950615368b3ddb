package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"omtsf/pkg/model"
)

func TestCanonicalEncoding(t *testing.T) {
	assert.Equal(t, "lei:5493006MHB84DD0ZWV18", Canonical("lei", "5493006MHB84DD0ZWV18", ""))
	assert.Equal(t, "nat-reg:us-de:12345", Canonical("nat-reg", "12345", "US-DE"))
}

func TestCanonicalPercentEncodesReservedBytes(t *testing.T) {
	got := Canonical("opaque", "a:b%c\nd\re", "")
	assert.Equal(t, "opaque:a%3Ab%25c%0Ad%0De", got)
}

func TestCanonicalLowercasesScheme(t *testing.T) {
	assert.Equal(t, "lei:ABC", Canonical("LEI", "ABC", ""))
}

func TestUnionFindLowerOrdinalWinsOnRankTie(t *testing.T) {
	uf := NewUnionFind(4)
	uf.Union(2, 3)
	r := uf.Find(2)
	assert.Equal(t, 2, r)
}

func TestUnionFindGroups(t *testing.T) {
	uf := NewUnionFind(5)
	uf.Union(0, 1)
	uf.Union(1, 2)
	groups := uf.Groups()
	assert.Len(t, groups, 3) // {0,1,2}, {3}, {4}
}

func TestBuildIndexExcludesInternalScheme(t *testing.T) {
	nodes := []model.Node{
		{ID: "n-0", Identifiers: []model.Identifier{
			{Scheme: "lei", Value: "X"},
			{Scheme: "internal", Value: "local-1"},
		}},
	}
	idx := Build(nodes, 0, nil)
	assert.Len(t, idx, 1)
	assert.Contains(t, idx, "lei:X")
}

func TestBuildIndexExcludesAnnulledLEI(t *testing.T) {
	nodes := []model.Node{
		{ID: "n-0", Identifiers: []model.Identifier{{Scheme: "lei", Value: "ANNULLED1"}}},
	}
	idx := Build(nodes, 0, func(lei string) bool { return lei == "ANNULLED1" })
	assert.Len(t, idx, 0)
}

func TestIdentifiersMatchTrimAndCaseRules(t *testing.T) {
	a := model.Identifier{Scheme: "lei", Value: " X "}
	b := model.Identifier{Scheme: "lei", Value: "X"}
	assert.True(t, IdentifiersMatch(a, b))
}

func TestIdentifiersMatchRejectsInternalScheme(t *testing.T) {
	a := model.Identifier{Scheme: "internal", Value: "X"}
	b := model.Identifier{Scheme: "internal", Value: "X"}
	assert.False(t, IdentifiersMatch(a, b))
}

func TestIdentifiersMatchAuthorityCaseInsensitive(t *testing.T) {
	usA, usB := "us-de", "US-DE"
	a := model.Identifier{Scheme: "nat-reg", Value: "1", Authority: &usA}
	b := model.Identifier{Scheme: "nat-reg", Value: "1", Authority: &usB}
	assert.True(t, IdentifiersMatch(a, b))
}

func TestTemporalOverlapOpenEndedMatches(t *testing.T) {
	assert.True(t, TemporalOverlap(nil, model.Absent[string](), nil, model.Absent[string]()))
}

func TestTemporalOverlapDisjointIntervalsReject(t *testing.T) {
	early, late := "2020-01-01", "2025-01-01"
	assert.False(t, TemporalOverlap(nil, model.Some(early), &late, model.Absent[string]()))
}

func TestEdgePropertiesMatchOwnership(t *testing.T) {
	pct := 51.0
	direct := true
	a := model.EdgeProperties{Percentage: &pct, Direct: &direct}
	b := model.EdgeProperties{Percentage: &pct, Direct: &direct}
	assert.True(t, EdgePropertiesMatch(model.EdgeTypeOwnership, a, b))
}

func TestEdgesMatchRejectsSameAs(t *testing.T) {
	assert.False(t, EdgesMatch(model.EdgeTypeSameAs, nil, nil, model.EdgeProperties{}, model.EdgeProperties{}))
}

func TestEdgesMatchBySharedIdentifier(t *testing.T) {
	idsA := []model.Identifier{{Scheme: "lei", Value: "X"}}
	idsB := []model.Identifier{{Scheme: "lei", Value: "X"}}
	assert.True(t, EdgesMatch(model.EdgeTypeSupplies, idsA, idsB, model.EdgeProperties{}, model.EdgeProperties{}))
}

func TestMultibaseTokenRoundTrip(t *testing.T) {
	canonical := Canonical("lei", "5493006MHB84DD0ZWV18", "")
	token, err := MultibaseToken(canonical)
	assert.NoError(t, err)
	assert.True(t, len(token) > 0 && token[0] == 'z')

	back, err := DecodeMultibaseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, canonical, back)
}

func TestBuildEntriesRetainsIdentifierRecord(t *testing.T) {
	nodes := []model.Node{
		{ID: "n-0", Identifiers: []model.Identifier{{Scheme: "lei", Value: "X"}}},
	}
	entries := BuildEntries(nodes, 0, nil)
	got := entries["lei:X"]
	assert.Len(t, got, 1)
	assert.Equal(t, "X", got[0].Identifier.Value)
}
