package badge

// Earned evaluates every definition against the user's progress and returns
// the ones whose criteria are met. Unknown criteria types never match.
func Earned(defs []Definition, prog Progress) []Definition {
	var earned []Definition
	for _, def := range defs {
		if meets(def, prog) {
			earned = append(earned, def)
		}
	}
	return earned
}

func meets(def Definition, prog Progress) bool {
	switch def.CriteriaType {
	case CriteriaSummitCount:
		return prog.SummitCount >= def.Threshold
	case CriteriaElevationGain:
		return prog.TotalElevationFt >= float64(def.Threshold)
	case CriteriaRangeComplete:
		total := prog.RangePeakCounts[def.Range]
		if total == 0 {
			return false
		}
		return prog.RangeSummits[def.Range] >= total
	default:
		return false
	}
}
