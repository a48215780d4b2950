package context_test

import (
	"testing"

	"github.com/opentreeoflife/gntaxdb/pkg/context"
	"github.com/opentreeoflife/gntaxdb/pkg/flagset"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndLookup(t *testing.T) {
	reg := context.Default

	c, ok := reg.ByName("Asterales")
	require.True(t, ok)
	assert.EqualValues(t, 1042120, c.OttId)
	assert.Equal(t, context.ICN, c.Code)

	life, ok := reg.ByName("All life")
	require.True(t, ok)
	assert.Equal(t, context.Undefined, life.Code)
}

func TestByOttId(t *testing.T) {
	reg := context.Default
	c, ok := reg.ByOttId(409712)
	require.True(t, ok)
	assert.Equal(t, "Aster", c.Name)
}

func TestLeastInclusiveContext(t *testing.T) {
	reg := context.Default

	records := []taxonomy.TaxonRecord{
		{Id: 805080, HasParent: false, Name: "life"},
		{Id: 1042120, ParentId: 805080, HasParent: true, Name: "Asterales"},
		{Id: 46248, ParentId: 1042120, HasParent: true, Name: "Asteraceae"},
		{Id: 409712, ParentId: 46248, HasParent: true, Name: "Aster"},
	}
	tax, err := taxonomy.Build(records, nil, flagset.Default, "v", "1")
	require.NoError(t, err)

	aster, _ := tax.TaxonById(409712)
	asteraceae, _ := tax.TaxonById(46248)
	mrca, err := tax.Mrca([]taxonid.Id{aster.Id, asteraceae.Id})
	require.NoError(t, err)

	ctx := reg.LeastInclusiveContext(mrca)
	assert.Equal(t, "Asteraceae", ctx.Name)
}

func TestInferContextAndAmbiguousNames(t *testing.T) {
	reg := context.Default

	records := []taxonomy.TaxonRecord{
		{Id: 805080, HasParent: false, Name: "life"},
		{Id: 1042120, ParentId: 805080, HasParent: true, Name: "Asterales"},
		{Id: 46248, ParentId: 1042120, HasParent: true, Name: "Asteraceae"},
		{Id: 409712, ParentId: 46248, HasParent: true, Name: "Aster"},
		{Id: 1058735, ParentId: 46248, HasParent: true, Name: "Symphyotrichum"},
	}
	tax, err := taxonomy.Build(records, nil, flagset.Default, "v", "1")
	require.NoError(t, err)

	byName := make(map[string]*taxonomy.TaxonNode)
	for _, rec := range records {
		n, _ := tax.TaxonById(rec.Id)
		byName[rec.Name] = n
	}
	resolve := func(name string) []*taxonomy.TaxonNode {
		if n, ok := byName[name]; ok {
			return []*taxonomy.TaxonNode{n}
		}
		return nil
	}

	ctx, ambiguous := reg.InferContextAndAmbiguousNames(
		tax, []string{"Aster", "Symphyotrichum", "NotAName"}, resolve)
	assert.Equal(t, "Asteraceae", ctx.Name)
	assert.Equal(t, []string{"NotAName"}, ambiguous)
}
