package gnsvc_test

import (
	"context"
	"testing"

	"github.com/opentreeoflife/gntaxdb/pkg/config"
	gncontext "github.com/opentreeoflife/gntaxdb/pkg/context"
	"github.com/opentreeoflife/gntaxdb/pkg/ctriedb"
	"github.com/opentreeoflife/gntaxdb/pkg/flagset"
	"github.com/opentreeoflife/gntaxdb/pkg/gnsvc"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"github.com/opentreeoflife/gntaxdb/pkg/tnrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildService(t *testing.T) *gnsvc.Service {
	t.Helper()
	records := []taxonomy.TaxonRecord{
		{Id: 805080, HasParent: false, Name: "life"},
		{Id: 1042120, ParentId: 805080, HasParent: true, Name: "Asterales"},
		{Id: 46248, ParentId: 1042120, HasParent: true, Name: "Asteraceae"},
		{Id: 409712, ParentId: 46248, HasParent: true, Name: "Aster"},
	}
	tax, err := taxonomy.Build(records, nil, flagset.Default, "v1", "1")
	require.NoError(t, err)

	var keys []ctriedb.Key
	for _, r := range records {
		keys = append(keys, ctriedb.Key{Text: r.Name, TaxonId: r.Id})
	}
	db, err := ctriedb.Build(context.Background(), keys, config.TrieConfig{ThinAlphabetMax: 62, WideAlphabetMax: 62}, 2)
	require.NoError(t, err)

	cfg := config.TnrsConfig{DefaultMatchesPerName: 30, MaxNamesExact: 10_000, MaxNamesFuzzy: 250}
	pipeline := tnrs.New(tax, db, gncontext.Default, nil, cfg)

	return gnsvc.New(tax, db, gncontext.Default, flagset.Default, pipeline)
}

func TestAbout(t *testing.T) {
	svc := buildService(t)
	about := svc.About()
	assert.Equal(t, 4, about.TaxonCount)
	assert.Equal(t, "v1", about.TaxonomyVersion)
}

func TestTaxonInfoUnknownId(t *testing.T) {
	svc := buildService(t)
	_, ok := svc.TaxonInfo(999999, gnsvc.TaxonInfoOptions{})
	assert.False(t, ok)
}

func TestTaxonInfoWithLineage(t *testing.T) {
	svc := buildService(t)
	res, ok := svc.TaxonInfo(409712, gnsvc.TaxonInfoOptions{Lineage: true})
	require.True(t, ok)
	require.Len(t, res.Lineage, 3)
	assert.Equal(t, "Asteraceae", res.Lineage[0].Name)
}

func TestTaxonSubtree(t *testing.T) {
	svc := buildService(t)
	nwk, ok := svc.TaxonSubtree(46248, taxonomy.LabelName)
	require.True(t, ok)
	assert.Contains(t, nwk, "Aster")
}

func TestTaxonMrcaEmptyInput(t *testing.T) {
	svc := buildService(t)
	_, err := svc.TaxonMrca(nil)
	assert.Error(t, err)
}

func TestFlagsNonEmpty(t *testing.T) {
	svc := buildService(t)
	assert.NotEmpty(t, svc.Flags())
}

func TestTnrsContextsNonEmpty(t *testing.T) {
	svc := buildService(t)
	assert.NotEmpty(t, svc.TnrsContexts())
}

func TestTnrsAutocompleteNameMatchesRealCasing(t *testing.T) {
	svc := buildService(t)
	matches, err := svc.TnrsAutocompleteName("Aster", "", false)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	var names []string
	for _, m := range matches {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "Aster")
	assert.Contains(t, names, "Asterales")
}
