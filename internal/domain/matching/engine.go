package matching

import "math"

const (
	RequiredWeight  = 85.0
	PreferredWeight = 15.0
)

type Result struct {
	Score            float64
	MatchedRequired  int
	MatchedPreferred int
	MissingRequired  []int64
}

// Calculate scores a candidate's skills against a job's required and preferred skills.
// Coverage of each list is weighted RequiredWeight/PreferredWeight; a job with only one
// non-empty list gives that list the full 100. A job without skills scores 0.
func Calculate(candidateSkills, required, preferred []int64) Result {
	has := make(map[int64]struct{}, len(candidateSkills))
	for _, id := range candidateSkills {
		has[id] = struct{}{}
	}

	required = unique(required)
	preferred = unique(preferred)

	res := Result{MissingRequired: make([]int64, 0)}
	for _, id := range required {
		if _, ok := has[id]; ok {
			res.MatchedRequired++
		} else {
			res.MissingRequired = append(res.MissingRequired, id)
		}
	}
	for _, id := range preferred {
		if _, ok := has[id]; ok {
			res.MatchedPreferred++
		}
	}

	reqWeight, prefWeight := RequiredWeight, PreferredWeight
	switch {
	case len(required) == 0 && len(preferred) == 0:
		return res
	case len(preferred) == 0:
		reqWeight, prefWeight = 100, 0
	case len(required) == 0:
		reqWeight, prefWeight = 0, 100
	}

	var score float64
	if len(required) > 0 {
		score += reqWeight * float64(res.MatchedRequired) / float64(len(required))
	}
	if len(preferred) > 0 {
		score += prefWeight * float64(res.MatchedPreferred) / float64(len(preferred))
	}

	res.Score = clamp(math.Round(score*100) / 100)
	return res
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
