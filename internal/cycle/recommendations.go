package cycle

const recommendationPrefix = "cycle.recommendations."

// keys are resolved to text by the UI translations
var phaseRecommendations = map[Phase][]string{
	PhaseMenstrual: {
		"menstrual.light_technique",
		"menstrual.mobility",
		"menstrual.listen_to_body",
		"menstrual.hydration",
	},
	PhaseFollicular: {
		"follicular.max_strength",
		"follicular.project_hard_routes",
		"follicular.power_endurance",
	},
	PhaseOvulation: {
		"ovulation.peak_performance",
		"ovulation.careful_warmup",
		"ovulation.joint_stability",
	},
	PhaseEarlyLuteal: {
		"early_luteal.endurance",
		"early_luteal.volume",
		"early_luteal.fueling",
	},
	PhaseLateLuteal: {
		"late_luteal.reduce_intensity",
		"late_luteal.technique_focus",
		"late_luteal.recovery",
		"late_luteal.sleep",
	},
}

// Recommendations returns the ordered recommendation keys for a phase.
// The returned slice is a copy and can be modified by the caller.
func Recommendations(phase Phase) []string {
	keys := phaseRecommendations[phase]
	recs := make([]string, 0, len(keys))
	for _, k := range keys {
		recs = append(recs, recommendationPrefix+k)
	}
	return recs
}
