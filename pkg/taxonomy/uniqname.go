package taxonomy

// assignUniqnames fills in Uniqname for every node that didn't carry one
// in its source record. Names that are unique across the whole taxonomy
// keep their plain name; homonyms are disambiguated by rank and nearest
// named ancestor, e.g. "Aotus (genus in Primates)". No literal
// disambiguation grammar survives in original_source/, so this format is
// a reconstruction documented in DESIGN.md.
func assignUniqnames(nodes []*TaxonNode) {
	byName := make(map[string][]*TaxonNode)
	for _, n := range nodes {
		if n.Uniqname == "" {
			byName[n.Name] = append(byName[n.Name], n)
		}
	}
	for name, group := range byName {
		if len(group) == 1 {
			group[0].Uniqname = name
			continue
		}
		for _, n := range group {
			n.Uniqname = disambiguate(n)
		}
	}
}

func disambiguate(n *TaxonNode) string {
	anc := nearestNamedAncestor(n)
	switch {
	case anc != "" && n.Rank != "":
		return n.Name + " (" + n.Rank + " in " + anc + ")"
	case anc != "":
		return n.Name + " (in " + anc + ")"
	case n.Rank != "":
		return n.Name + " (" + n.Rank + ")"
	default:
		return n.Name + " (" + n.Id.String() + ")"
	}
}

func nearestNamedAncestor(n *TaxonNode) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Name != "" {
			return p.Name
		}
	}
	return ""
}
