package config

// Stars rates a solve against the reference solution length par.
// Matching or beating par earns 3 stars, up to Slack extra folds earn 2,
// anything else 1. Without a par every solve earns 3.
func (s ScoringConfig) Stars(folds, par int) int {
	switch {
	case par <= 0 || folds <= par:
		return 3
	case folds <= par+s.Slack:
		return 2
	default:
		return 1
	}
}

// StarString renders a rating as filled and empty stars.
func StarString(stars int) string {
	out := make([]rune, 3)
	for i := range out {
		out[i] = '☆'
		if i < stars {
			out[i] = '★'
		}
	}
	return string(out)
}
