package question

// Followup returns the probing question an interviewer would ask after an
// answer with the given score, or "" when none is needed.
func Followup(score float64) string {
	switch {
	case score < 5:
		return "Could you elaborate more on that? Perhaps with a specific example?"
	case score < 7:
		return "Good answer. Can you think of any edge cases or limitations?"
	default:
		return ""
	}
}
