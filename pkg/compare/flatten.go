package compare

// Flatten returns the metrics as a flat map with "metric.field" keys, for
// example "ploidy_diff.dist" or "ret_leaf_jaccard.FP". Booleans are stored
// as 0 or 1. Skipped edit distances are omitted.
func (m *Metrics) Flatten() map[string]float64 {
	out := map[string]float64{
		"ret_count_diff": float64(m.RetCountDiff),

		"ploidy_diff.TP":   float64(m.Ploidy.TP),
		"ploidy_diff.FP":   float64(m.Ploidy.FP),
		"ploidy_diff.FN":   float64(m.Ploidy.FN),
		"ploidy_diff.dist": m.Ploidy.Dist,

		"ret_leaf_jaccard.dist": m.RetLeaves.Dist,
		"ret_leaf_jaccard.FP":   m.RetLeaves.FP,
		"ret_leaf_jaccard.FN":   m.RetLeaves.FN,

		"ret_sisters_jaccard.dist": m.RetSisters.Dist,
		"ret_sisters_jaccard.FP":   m.RetSisters.FP,
		"ret_sisters_jaccard.FN":   m.RetSisters.FN,

		"rf.value":      float64(m.RF.Value),
		"rf.normalized": m.RF.Normalized,
		"rf.size_a":     float64(m.RF.SizeA),
		"rf.size_b":     float64(m.RF.SizeB),
	}
	flattenEdit(out, "edit_distance", m.EditDistance)
	flattenEdit(out, "edit_distance_multree", m.EditDistanceMulTree)
	return out
}

func flattenEdit(out map[string]float64, prefix string, e *EditDistance) {
	if e == nil {
		return
	}
	out[prefix+".value"] = float64(e.Value)
	out[prefix+".normalized"] = e.Normalized
	exact := 0.0
	if e.Exact {
		exact = 1
	}
	out[prefix+".exact"] = exact
}
