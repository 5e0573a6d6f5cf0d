package model

import "time"

// Jurisdiction classifies the legal area of a case. Judges declare the
// jurisdictions they may hear as specializations.
type Jurisdiction string

const (
	JurisdictionCivil          Jurisdiction = "civil"
	JurisdictionCriminal       Jurisdiction = "criminal"
	JurisdictionFamily         Jurisdiction = "family"
	JurisdictionTax            Jurisdiction = "tax"
	JurisdictionConstitutional Jurisdiction = "constitutional"
)

// UrgencyLevel orders cases by statutory urgency:
// habeas corpus > bail > injunction > regular.
type UrgencyLevel string

const (
	UrgencyHabeasCorpus UrgencyLevel = "habeas_corpus"
	UrgencyBail         UrgencyLevel = "bail"
	UrgencyInjunction   UrgencyLevel = "injunction"
	UrgencyRegular      UrgencyLevel = "regular"
)

// Weight returns the priority weight for the urgency level. Unknown values
// fall back to the regular weight.
func (u UrgencyLevel) Weight() float64 {
	switch u {
	case UrgencyHabeasCorpus:
		return 10.0
	case UrgencyBail:
		return 8.0
	case UrgencyInjunction:
		return 6.0
	default:
		return 1.0
	}
}

// CaseStatus tracks a case through its lifecycle.
type CaseStatus string

const (
	CaseFiled    CaseStatus = "filed"
	CaseAdmitted CaseStatus = "admitted"
	CaseListed   CaseStatus = "listed"
	CaseHearing  CaseStatus = "hearing"
	CaseReserved CaseStatus = "reserved"
	CaseJudgment CaseStatus = "judgment"
	CaseArchived CaseStatus = "archived"
)

var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseFiled:    {CaseAdmitted, CaseArchived},
	CaseAdmitted: {CaseListed, CaseArchived},
	CaseListed:   {CaseHearing, CaseAdmitted},
	CaseHearing:  {CaseReserved, CaseListed},
	CaseReserved: {CaseJudgment, CaseHearing},
	CaseJudgment: {CaseArchived},
}

// CanTransition reports whether a case may move from s to the target status.
// Transitions are validated centrally instead of per call site.
func (s CaseStatus) CanTransition(to CaseStatus) bool {
	for _, next := range caseTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Case is a filed court case awaiting or undergoing hearings.
type Case struct {
	ID                  string       `json:"id"`
	CaseNumber          string       `json:"case_number"`
	Title               string       `json:"title"`
	CourtID             string       `json:"court_id"`
	Jurisdiction        Jurisdiction `json:"jurisdiction"`
	CaseType            string       `json:"case_type,omitempty"`
	Status              CaseStatus   `json:"status"`
	UrgencyLevel        UrgencyLevel `json:"urgency_level"`
	ComplexityScore     int          `json:"complexity_score"`      // 1-10
	PublicInterestScore int          `json:"public_interest_score"` // 1-10
	// EstimatedDurationHours is supplied by the external prediction service
	// and consumed as-is; it is never recomputed here.
	EstimatedDurationHours float64   `json:"estimated_duration_hours"`
	FilingDate             time.Time `json:"filing_date"`
	AssignedJudgeID        string    `json:"assigned_judge_id,omitempty"`
}

// Validate checks that the case data is sound.
func (c Case) Validate() error {
	if c.EstimatedDurationHours <= 0 {
		return &ValidationError{Field: "estimated_duration_hours", Reason: "must be positive"}
	}
	if c.ComplexityScore < 1 || c.ComplexityScore > 10 {
		return &ValidationError{Field: "complexity_score", Reason: "must be between 1 and 10"}
	}
	if c.PublicInterestScore < 1 || c.PublicInterestScore > 10 {
		return &ValidationError{Field: "public_interest_score", Reason: "must be between 1 and 10"}
	}
	return nil
}
