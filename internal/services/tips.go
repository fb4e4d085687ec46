package services

// Static tips catalogue, keyed by stress/feedback theme. General
// suggestions, not medical advice.
var tipsByTheme = map[string][]string{
	"Workload": {
		"Time-block 60 minutes daily for deep work; batch interrupts.",
		"Ask your manager to clarify priorities and trade-offs.",
	},
	"Recognition": {
		"Share 1 weekly win in your team channel.",
		"Keep a 'done list' to surface progress in 1:1s.",
	},
	"Feedback": {
		"Use SBI: Situation-Behavior-Impact when giving feedback.",
		"Ask for 1 concrete example and a small next step.",
	},
	"Boundaries": {
		"Define a 'shutdown ritual' at end of shift.",
		"Silence notifications during personal time.",
	},
}

// TipThemes returns the available themes in presentation order.
func TipThemes() []string {
	return []string{"Workload", "Recognition", "Feedback", "Boundaries"}
}

// TipsForTheme returns the ordered tip list for a theme.
func TipsForTheme(theme string) ([]string, error) {
	tips, ok := tipsByTheme[theme]
	if !ok {
		return nil, NewNotFoundError("unknown tips theme: " + theme)
	}
	out := make([]string, len(tips))
	copy(out, tips)
	return out, nil
}
