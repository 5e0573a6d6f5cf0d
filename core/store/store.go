package store

import (
	"context"
	"errors"
	"time"

	"github.com/courtflow/courtflow/core/model"
)

// ErrOccupancyConflict is returned by stores that enforce the active
// occupancy invariant when a write would create overlapping active hearings
// for the same judge or courtroom.
var ErrOccupancyConflict = errors.New("occupancy conflict")

// CaseFilter narrows ListCases results. Zero values disable a criterion.
type CaseFilter struct {
	CourtID  string
	Statuses []model.CaseStatus
}

// JudgeFilter narrows ListJudges results.
type JudgeFilter struct {
	CourtID        string
	Specialization model.Jurisdiction
	AvailableOnly  bool
}

// CourtroomFilter narrows ListCourtrooms results.
type CourtroomFilter struct {
	CourtID       string
	AvailableOnly bool
}

// HearingFilter narrows ListHearings results. JudgeID and CourtID match
// through the hearing's case. From is inclusive and To exclusive on the
// hearing start time; zero values disable the bound.
type HearingFilter struct {
	CaseID      string
	JudgeID     string
	CourtroomID string
	CourtID     string
	Statuses    []model.HearingStatus
	From        time.Time
	To          time.Time
}

// CaseStore provides access to cases.
type CaseStore interface {
	GetCase(ctx context.Context, id string) (model.Case, error)
	ListCases(ctx context.Context, f CaseFilter) ([]model.Case, error)
	CreateCase(ctx context.Context, c model.Case) error
	UpdateCase(ctx context.Context, c model.Case) error
}

// JudgeStore provides access to judges.
type JudgeStore interface {
	GetJudge(ctx context.Context, id string) (model.Judge, error)
	ListJudges(ctx context.Context, f JudgeFilter) ([]model.Judge, error)
	CreateJudge(ctx context.Context, j model.Judge) error
	UpdateJudge(ctx context.Context, j model.Judge) error
}

// CourtroomStore provides access to courtrooms.
type CourtroomStore interface {
	GetCourtroom(ctx context.Context, id string) (model.Courtroom, error)
	ListCourtrooms(ctx context.Context, f CourtroomFilter) ([]model.Courtroom, error)
	CreateCourtroom(ctx context.Context, r model.Courtroom) error
	UpdateCourtroom(ctx context.Context, r model.Courtroom) error
}

// HearingStore provides access to hearings. Implementations must reject
// Create and Update calls that would leave two active hearings overlapping
// on the same judge or courtroom, returning ErrOccupancyConflict.
type HearingStore interface {
	GetHearing(ctx context.Context, id string) (model.Hearing, error)
	ListHearings(ctx context.Context, f HearingFilter) ([]model.Hearing, error)
	CreateHearing(ctx context.Context, h model.Hearing) error
	UpdateHearing(ctx context.Context, h model.Hearing) error
}

// Store aggregates every repository the scheduling core depends on.
type Store interface {
	CaseStore
	JudgeStore
	CourtroomStore
	HearingStore
}
