package matching

// MatchResult is the outcome for a single source record. CandidateID is
// empty when no candidate cleared any threshold.
type MatchResult struct {
	SourceID       string     `json:"source_id"`
	CandidateID    string     `json:"candidate_id,omitempty"`
	Confidence     Confidence `json:"confidence"`
	Strategy       string     `json:"strategy,omitempty"`
	Reason         string     `json:"reason"`
	DateDiffDays   *float64   `json:"date_diff_days,omitempty"`
	AmountDeltaPct *float64   `json:"amount_delta_pct,omitempty"`
}

// Summary counts results per confidence tier.
type Summary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	None   int `json:"none"`
	Total  int `json:"total"`
}

// MatchSet is the full result of one reconciliation run.
type MatchSet struct {
	Results []MatchResult `json:"results"`
	Summary Summary       `json:"summary"`
}

// Match produces a conflict-free assignment of candidates to sources.
//
// This is a single-pass greedy assignment, not a max-weight bipartite
// matching: sources are processed in input order, each takes the best
// still-unclaimed candidate, and a later source can never steal back a
// candidate claimed earlier in the run. With batches of a few hundred
// records and a human approving every apply, the approximation is an
// accepted trade-off for determinism and explainable per-pair reasons.
func Match(sources []Source, candidates []Candidate, cfg Config) MatchSet {
	set := MatchSet{Results: make([]MatchResult, 0, len(sources))}
	used := make(map[string]bool, len(candidates))

	for _, src := range sources {
		result := matchOne(src, candidates, used, cfg)
		if result.CandidateID != "" {
			used[result.CandidateID] = true
		}

		set.Results = append(set.Results, result)
		set.Summary.Total++
		switch result.Confidence {
		case ConfidenceHigh:
			set.Summary.High++
		case ConfidenceMedium:
			set.Summary.Medium++
		case ConfidenceLow:
			set.Summary.Low++
		default:
			set.Summary.None++
		}
	}

	return set
}

func matchOne(src Source, candidates []Candidate, used map[string]bool, cfg Config) MatchResult {
	var best Score
	var bestID string

	for _, cand := range candidates {
		if used[cand.ID] {
			continue
		}

		score := ScorePair(src, cand, cfg)
		if score.Confidence == ConfidenceNone {
			continue
		}

		// An exact identifier hit is accepted outright without scanning
		// the remaining candidates.
		if score.Strategy == StrategyIdentifier && score.Confidence == ConfidenceHigh {
			best = score
			bestID = cand.ID
			break
		}

		// Strictly greater only: ties keep the earliest candidate.
		if score.Confidence.Rank() > best.Confidence.Rank() {
			best = score
			bestID = cand.ID
		}
	}

	if bestID == "" {
		return MatchResult{
			SourceID:   src.ID,
			Confidence: ConfidenceNone,
			Reason:     "no candidate cleared any threshold",
		}
	}

	return MatchResult{
		SourceID:       src.ID,
		CandidateID:    bestID,
		Confidence:     best.Confidence,
		Strategy:       best.Strategy,
		Reason:         best.Reason,
		DateDiffDays:   best.DateDiffDays,
		AmountDeltaPct: best.AmountDeltaPct,
	}
}
