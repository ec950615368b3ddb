package merge

import (
	"sort"

	"omtsf/pkg/identity"
	"omtsf/pkg/model"
)

// mergedGroup is one merge-group's output, prior to final node id
// assignment (which depends on the sort over every group, done once
// every group has been formed).
type mergedGroup struct {
	representative int
	members        []int
	node           model.Node
	canonicalSort  string // lowest canonical identifier; "" if none
}

func buildMergedNodes(b *builder, groups map[int][]int) []mergedGroup {
	out := make([]mergedGroup, 0, len(groups))
	for rep, members := range groups {
		sort.Ints(members)
		out = append(out, mergeNodeGroup(b, rep, members))
	}
	return out
}

func scalarSources(b *builder, members []int, get func(model.Node) any) []scalarSource {
	out := make([]scalarSource, 0, len(members))
	for _, m := range members {
		out = append(out, scalarSource{file: b.nodeFile[m], value: get(b.nodes[m])})
	}
	return out
}

func mergeNodeGroup(b *builder, rep int, members []int) mergedGroup {
	var identifiers []model.Identifier
	seenCanon := map[string]bool{}
	for _, m := range members {
		for _, id := range b.nodes[m].Identifiers {
			canon := identity.Canonical(id.Scheme, id.Value, authorityOf(id))
			if seenCanon[canon] {
				continue
			}
			seenCanon[canon] = true
			identifiers = append(identifiers, id)
		}
	}
	sort.Slice(identifiers, func(i, j int) bool {
		return identity.Less(
			identity.Canonical(identifiers[i].Scheme, identifiers[i].Value, authorityOf(identifiers[i])),
			identity.Canonical(identifiers[j].Scheme, identifiers[j].Value, authorityOf(identifiers[j])),
		)
	})

	var labels []model.Label
	for _, m := range members {
		for _, l := range b.nodes[m].Labels {
			dup := false
			for _, existing := range labels {
				if existing.Equal(l) {
					dup = true
					break
				}
			}
			if !dup {
				labels = append(labels, l)
			}
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Less(labels[j]) })

	conflicts := map[string]any{}
	node := model.Node{Identifiers: identifiers, Labels: labels}

	if v, c := mergeScalar(scalarSources(b, members, func(n model.Node) any { return string(n.Type) })); v != nil {
		node.Type = model.NodeType(v.(string))
	} else {
		recordConflict(conflicts, "type", c)
	}

	strField := func(name string, get func(model.Node) *string, set func(*string)) {
		v, c := mergeScalar(scalarSources(b, members, func(n model.Node) any { return derefStr(get(n)) }))
		if v != nil {
			s := v.(string)
			set(&s)
		} else {
			recordConflict(conflicts, name, c)
		}
	}
	strField("name", func(n model.Node) *string { return n.Name }, func(s *string) { node.Name = s })
	strField("jurisdiction", func(n model.Node) *string { return n.Jurisdiction }, func(s *string) { node.Jurisdiction = s })
	strField("status", func(n model.Node) *string { return n.Status }, func(s *string) { node.Status = s })
	strField("operator_ref", func(n model.Node) *string { return n.OperatorRef }, func(s *string) { node.OperatorRef = s })
	strField("address", func(n model.Node) *string { return n.Address }, func(s *string) { node.Address = s })
	strField("commodity_code", func(n model.Node) *string { return n.CommodityCode }, func(s *string) { node.CommodityCode = s })
	strField("attestation_issuer", func(n model.Node) *string { return n.AttestationIssuer }, func(s *string) { node.AttestationIssuer = s })
	strField("attestation_method", func(n model.Node) *string { return n.AttestationMethod }, func(s *string) { node.AttestationMethod = s })
	strField("attestation_scope", func(n model.Node) *string { return n.AttestationScope }, func(s *string) { node.AttestationScope = s })
	strField("consignment_ref", func(n model.Node) *string { return n.ConsignmentRef }, func(s *string) { node.ConsignmentRef = s })
	strField("consignment_unit", func(n model.Node) *string { return n.ConsignmentUnit }, func(s *string) { node.ConsignmentUnit = s })
	strField("consignment_description", func(n model.Node) *string { return n.ConsignmentDescription }, func(s *string) { node.ConsignmentDescription = s })

	if v, c := mergeScalar(scalarSources(b, members, func(n model.Node) any { return derefFloat(n.ConsignmentQuantity) })); v != nil {
		f := v.(float64)
		node.ConsignmentQuantity = &f
	} else {
		recordConflict(conflicts, "consignment_quantity", c)
	}

	if v, c := mergeScalar(scalarSources(b, members, func(n model.Node) any { return n.Geo })); v != nil {
		node.Geo = v
	} else {
		recordConflict(conflicts, "geo", c)
	}

	if v, c := mergeScalar(scalarSources(b, members, func(n model.Node) any {
		if n.DataQuality == nil {
			return nil
		}
		return *n.DataQuality
	})); v != nil {
		dq := v.(model.DataQuality)
		node.DataQuality = &dq
	} else {
		recordConflict(conflicts, "data_quality", c)
	}

	validTo, vtConflict := mergeOptional(scalarSources(b, members, func(n model.Node) any { return optionalValue(n.ValidTo) }))
	node.ValidTo = validTo
	recordConflict(conflicts, "valid_to", vtConflict)

	if len(conflicts) > 0 {
		node.Extra = map[string]any{"_conflicts": conflicts}
	}

	canon := ""
	if len(identifiers) > 0 {
		canon = identity.Canonical(identifiers[0].Scheme, identifiers[0].Value, authorityOf(identifiers[0]))
	}

	return mergedGroup{representative: rep, members: members, node: node, canonicalSort: canon}
}
