package matching

import (
	"fmt"
	"strings"

	"go-matching-backend/internal/domain"
)

const genericExplanation = "General profile compatibility"

// Explain renders the non-zero factors of a breakdown as one line, e.g.
// "Same university: MIT | Shared skills: go, python, sql +2".
// candidate may be nil, in which case names are omitted.
func Explain(b domain.ScoreBreakdown, commonSkills, commonInterests, areas []string, candidate *domain.CandidateProfile) string {
	var reasons []string

	if b.University > 0 {
		if candidate != nil && candidate.University != "" {
			reasons = append(reasons, "Same university: "+candidate.University)
		} else {
			reasons = append(reasons, "Same university")
		}
	}
	if b.Industry > 0 {
		if candidate != nil && candidate.Industry != "" {
			reasons = append(reasons, "Industry match: "+candidate.Industry)
		} else {
			reasons = append(reasons, "Industry match")
		}
	}
	if b.Degree > 0 {
		reasons = append(reasons, "Similar degree background")
	}
	if len(commonSkills) > 0 {
		reasons = append(reasons, "Shared skills: "+truncateList(commonSkills, 3))
	}
	if len(commonInterests) > 0 {
		reasons = append(reasons, "Common interests: "+truncateList(commonInterests, 2))
	}
	if len(areas) > 0 {
		reasons = append(reasons, "Can help with: "+truncateList(areas, 2))
	}
	if b.Company > 0 {
		reasons = append(reasons, "Hiring opportunity")
	}
	if b.Availability > 0 {
		reasons = append(reasons, "Available for mentorship")
	}

	if len(reasons) == 0 {
		return genericExplanation
	}
	return strings.Join(reasons, " | ")
}

// ExplainResult is Explain applied to an engine result.
func ExplainResult(r Result, candidate *domain.CandidateProfile) string {
	return Explain(r.Breakdown, r.CommonSkills, r.CommonInterests, r.MatchingAreas, candidate)
}

func truncateList(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(items[:n], ", "), len(items)-n)
}
