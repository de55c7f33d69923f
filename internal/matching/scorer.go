package matching

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source is a record looking for a counterpart: a payment, a partner file
// row, or an invoice that has no jobs attached.
type Source struct {
	ID         string
	ClientID   uint
	Identifier string
	Address    string
	Date       *time.Time
	Amount     decimal.Decimal
}

// Candidate is a member of the pool being searched, typically a job.
type Candidate struct {
	ID            string
	ClientID      uint
	Identifier    string
	AltIdentifier string
	Address       string
	Date          *time.Time
	Amount        decimal.Decimal
}

// Scoring strategies, reported on results for auditability.
const (
	StrategyIdentifier = "identifier"
	StrategyAddress    = "address"
	StrategyAmountDate = "amount_date"
)

// Score is the outcome of scoring one source/candidate pair.
type Score struct {
	Confidence     Confidence
	Strategy       string
	Reason         string
	DateDiffDays   *float64
	AmountDeltaPct *float64
}

// Config holds the tier thresholds for numeric-window scoring. Tightening
// any threshold never promotes a pair that failed the wider tier.
type Config struct {
	HighDateWindowDays   int
	MediumDateWindowDays int
	LowDateWindowDays    int

	HighAmountTolerance   float64
	MediumAmountTolerance float64
	LowAmountTolerance    float64

	// RequireSameClient is disabled only for partner file imports, where
	// rows carry no client reference.
	RequireSameClient bool
}

// DefaultConfig returns the standard tier thresholds.
func DefaultConfig() Config {
	return Config{
		HighDateWindowDays:    7,
		MediumDateWindowDays:  30,
		LowDateWindowDays:     60,
		HighAmountTolerance:   0.05,
		MediumAmountTolerance: 0.15,
		LowAmountTolerance:    0.30,
		RequireSameClient:     true,
	}
}

func noScore() Score {
	return Score{Confidence: ConfidenceNone}
}

// ScorePair scores a single source/candidate pair using the strongest
// applicable signal. Pairs on different clients always score none.
func ScorePair(src Source, cand Candidate, cfg Config) Score {
	if !clientsEligible(src, cand, cfg) {
		return noScore()
	}

	best := noScore()

	if s, ok := scoreIdentifier(src, cand); ok {
		best = s
		if s.Confidence == ConfidenceHigh {
			return s
		}
	}

	if s, ok := scoreAddress(src, cand); ok && s.Confidence.Rank() > best.Confidence.Rank() {
		best = s
	}

	if s, ok := scoreNumericWindow(src, cand, cfg); ok && s.Confidence.Rank() > best.Confidence.Rank() {
		best = s
	}

	return best
}

func clientsEligible(src Source, cand Candidate, cfg Config) bool {
	if !cfg.RequireSameClient {
		return true
	}
	if src.ClientID == 0 || cand.ClientID == 0 {
		return false
	}
	return src.ClientID == cand.ClientID
}

// scoreIdentifier compares normalized identifiers. Exact matches against the
// primary or secondary identifier are high confidence; substring containment
// in either direction of non-empty identifiers is medium.
func scoreIdentifier(src Source, cand Candidate) (Score, bool) {
	srcID := NormalizeJobCode(src.Identifier)
	if srcID == "" {
		return noScore(), false
	}

	candID := NormalizeJobCode(cand.Identifier)
	if candID != "" && srcID == candID {
		return Score{
			Confidence: ConfidenceHigh,
			Strategy:   StrategyIdentifier,
			Reason:     fmt.Sprintf("identifier %q matches exactly", srcID),
		}, true
	}

	candAlt := NormalizeJobCode(cand.AltIdentifier)
	if candAlt != "" && srcID == candAlt {
		return Score{
			Confidence: ConfidenceHigh,
			Strategy:   StrategyIdentifier,
			Reason:     fmt.Sprintf("identifier %q matches secondary identifier", srcID),
		}, true
	}

	if candID != "" && (strings.Contains(srcID, candID) || strings.Contains(candID, srcID)) {
		return Score{
			Confidence: ConfidenceMedium,
			Strategy:   StrategyIdentifier,
			Reason:     fmt.Sprintf("identifier %q partially matches %q", srcID, candID),
		}, true
	}

	return noScore(), false
}

// addressParts is the street number plus up to two street-name tokens.
type addressParts struct {
	number string
	street []string
}

func splitAddress(normalized string) addressParts {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return addressParts{}
	}

	parts := addressParts{number: tokens[0]}
	rest := tokens[1:]
	if len(rest) > 2 {
		rest = rest[:2]
	}
	parts.street = rest
	return parts
}

func scoreAddress(src Source, cand Candidate) (Score, bool) {
	srcAddr := NormalizeAddress(src.Address)
	candAddr := NormalizeAddress(cand.Address)
	if srcAddr == "" || candAddr == "" {
		return noScore(), false
	}

	if srcAddr == candAddr {
		return Score{
			Confidence: ConfidenceHigh,
			Strategy:   StrategyAddress,
			Reason:     "address matches exactly",
		}, true
	}

	srcParts := splitAddress(srcAddr)
	candParts := splitAddress(candAddr)

	if srcParts.number != "" && srcParts.number == candParts.number {
		srcStreet := strings.Join(srcParts.street, " ")
		candStreet := strings.Join(candParts.street, " ")
		if (srcStreet != "" && strings.Contains(candAddr, srcStreet)) ||
			(candStreet != "" && strings.Contains(srcAddr, candStreet)) {
			return Score{
				Confidence: ConfidenceMedium,
				Strategy:   StrategyAddress,
				Reason:     fmt.Sprintf("street number %s and street name overlap", srcParts.number),
			}, true
		}
	}

	if srcParts.number != "" && len(srcParts.street) > 0 &&
		strings.Contains(candAddr, srcParts.number) &&
		strings.Contains(candAddr, srcParts.street[0]) {
		return Score{
			Confidence: ConfidenceLow,
			Strategy:   StrategyAddress,
			Reason:     fmt.Sprintf("candidate address contains %s %s", srcParts.number, srcParts.street[0]),
		}, true
	}

	return noScore(), false
}

// scoreNumericWindow combines date proximity and amount closeness. A missing
// date on either side makes the date delta infinite; a zero or missing source
// amount disqualifies the pair.
func scoreNumericWindow(src Source, cand Candidate, cfg Config) (Score, bool) {
	dateDiff := math.Inf(1)
	if src.Date != nil && cand.Date != nil {
		dateDiff = math.Abs(src.Date.Sub(*cand.Date).Hours() / 24)
	}

	if src.Amount.LessThanOrEqual(decimal.Zero) {
		return noScore(), false
	}
	amountDelta := cand.Amount.Sub(src.Amount).Abs().Div(src.Amount).InexactFloat64()

	tiers := []struct {
		confidence Confidence
		dateWindow int
		tolerance  float64
	}{
		{ConfidenceHigh, cfg.HighDateWindowDays, cfg.HighAmountTolerance},
		{ConfidenceMedium, cfg.MediumDateWindowDays, cfg.MediumAmountTolerance},
		{ConfidenceLow, cfg.LowDateWindowDays, cfg.LowAmountTolerance},
	}

	for _, tier := range tiers {
		if dateDiff <= float64(tier.dateWindow) && amountDelta <= tier.tolerance {
			days := dateDiff
			pct := amountDelta
			return Score{
				Confidence: tier.confidence,
				Strategy:   StrategyAmountDate,
				Reason: fmt.Sprintf("amount within %.0f%% and date within %d days",
					tier.tolerance*100, tier.dateWindow),
				DateDiffDays:   &days,
				AmountDeltaPct: &pct,
			}, true
		}
	}

	return noScore(), false
}
