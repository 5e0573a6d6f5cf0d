package model

// Judge is a sitting judge attached to a court.
type Judge struct {
	ID              string         `json:"id"`
	CourtID         string         `json:"court_id"`
	Name            string         `json:"name"`
	Specializations []Jurisdiction `json:"specializations"`
	ExperienceYears int            `json:"experience_years"`
	// CurrentWorkload is an externally maintained load percentage. It may
	// exceed 100 for severely overloaded judges.
	CurrentWorkload float64 `json:"current_workload"`
	IsAvailable     bool    `json:"is_available"`
}

// EligibleFor reports whether the judge may hear the case: the judge must be
// available and specialized in the case's jurisdiction.
func (j Judge) EligibleFor(c Case) bool {
	if !j.IsAvailable {
		return false
	}
	return j.Specializes(c.Jurisdiction)
}

// Specializes reports whether the jurisdiction is among the judge's
// specializations.
func (j Judge) Specializes(jur Jurisdiction) bool {
	for _, s := range j.Specializations {
		if s == jur {
			return true
		}
	}
	return false
}

// Courtroom is an interchangeable hearing room scoped to a court.
type Courtroom struct {
	ID          string `json:"id"`
	CourtID     string `json:"court_id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"is_available"`
}
