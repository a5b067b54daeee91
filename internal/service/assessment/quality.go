package assessment

import "github.com/lexago/lexago-api/internal/domain"

// QualityForResult maps a grading outcome onto the scheduler's 0-5 quality
// scale. The mapping is monotone in partial credit, and anything below half
// credit lands under the scheduler's pass threshold so a failed answer always
// resets the card:
//
//	credit 1.0        -> 5 (perfect recall)
//	credit >= 0.8     -> 4
//	credit >= 0.5     -> 3 (minimum pass)
//	credit >= 0.3     -> 2
//	credit >  0       -> 1
//	credit 0          -> 0
func QualityForResult(result domain.GradeResult) int {
	credit := result.PartialCredit
	switch {
	case credit >= 1:
		return 5
	case credit >= 0.8:
		return 4
	case credit >= 0.5:
		return 3
	case credit >= 0.3:
		return 2
	case credit > 0:
		return 1
	default:
		return 0
	}
}
