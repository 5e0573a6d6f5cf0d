package scheduling

import (
	"time"

	"github.com/courtflow/courtflow/core/model"
)

// Scoring weights. The formula is a stable contract relied on by callers
// ranking and comparing slots across releases, so the constants are fixed
// rather than configurable.
const (
	ageBonusPerDay     = 0.1
	ageBonusCap        = 5.0
	publicInterestRate = 0.5
	judgeLoadRate      = 0.3
	judgeLoadBase      = 10.0
	morningBonus       = 2.0
	morningCutoffHour  = 12
	morningMinInterest = 7
)

// Scorer ranks (case, judge, slot) triples. Higher is better; ties preserve
// the caller's generation order.
type Scorer struct{}

// Score computes the priority of hearing the case before the judge at the
// given slot time. It is a pure function of its inputs; now is passed in so
// results are reproducible.
func (Scorer) Score(c model.Case, j model.Judge, slotTime, now time.Time) float64 {
	score := c.UrgencyLevel.Weight()

	days := float64(int(now.Sub(c.FilingDate).Hours() / 24))
	age := days * ageBonusPerDay
	if age > ageBonusCap {
		age = ageBonusCap
	}
	score += age

	score += float64(c.PublicInterestScore) * publicInterestRate

	if slack := judgeLoadBase - j.CurrentWorkload; slack > 0 {
		score += slack * judgeLoadRate
	}

	if slotTime.Hour() < morningCutoffHour && c.PublicInterestScore > morningMinInterest {
		score += morningBonus
	}
	return score
}
