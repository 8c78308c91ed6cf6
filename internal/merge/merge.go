// Package merge reconciles newly imported instincts against an existing
// collection. It performs no I/O.
package merge

import "instinct/internal/instinct"

// Result partitions import candidates. The groups are disjoint and keep
// candidate order.
type Result struct {
	ToAdd      []instinct.Instinct `json:"to_add"`
	ToUpdate   []instinct.Instinct `json:"to_update"`
	Duplicates []instinct.Instinct `json:"duplicates"`
}

// Empty reports whether nothing would be written by the import.
func (r Result) Empty() bool {
	return len(r.ToAdd) == 0 && len(r.ToUpdate) == 0
}

// Partition splits candidates against existing without applying a
// confidence floor.
//
// A candidate whose id is absent from existing is added. Otherwise it is an
// update only when its confidence is strictly greater than the existing
// record's; ties keep the existing record. When existing holds several
// records with the same id, the first one in encounter order is compared.
func Partition(candidates, existing []instinct.Instinct) Result {
	index := make(map[string]instinct.Instinct, len(existing))
	for _, inst := range existing {
		if _, ok := index[inst.ID]; !ok {
			index[inst.ID] = inst
		}
	}

	var res Result
	for _, cand := range candidates {
		current, ok := index[cand.ID]
		switch {
		case !ok:
			res.ToAdd = append(res.ToAdd, cand)
		case cand.EffectiveConfidence() > current.EffectiveConfidence():
			res.ToUpdate = append(res.ToUpdate, cand)
		default:
			res.Duplicates = append(res.Duplicates, cand)
		}
	}
	return res
}

// Plan partitions candidates and then drops adds and updates whose
// confidence is below minConfidence. Dropped records do not move to
// Duplicates.
func Plan(candidates, existing []instinct.Instinct, minConfidence float64) Result {
	res := Partition(candidates, existing)
	res.ToAdd = aboveFloor(res.ToAdd, minConfidence)
	res.ToUpdate = aboveFloor(res.ToUpdate, minConfidence)
	return res
}

func aboveFloor(records []instinct.Instinct, floor float64) []instinct.Instinct {
	var out []instinct.Instinct
	for _, inst := range records {
		if inst.EffectiveConfidence() >= floor {
			out = append(out, inst)
		}
	}
	return out
}
