package store

import (
	"context"
	"sort"
	"sync"

	"github.com/courtflow/courtflow/core/model"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs unit tests and
// the default service wiring when no database is configured.
type MemoryStore struct {
	mu         sync.RWMutex
	cases      map[string]model.Case
	judges     map[string]model.Judge
	courtrooms map[string]model.Courtroom
	hearings   map[string]model.Hearing
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cases:      map[string]model.Case{},
		judges:     map[string]model.Judge{},
		courtrooms: map[string]model.Courtroom{},
		hearings:   map[string]model.Hearing{},
	}
}

func (s *MemoryStore) GetCase(_ context.Context, id string) (model.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return model.Case{}, model.NotFoundf("case", id)
	}
	return c, nil
}

func (s *MemoryStore) ListCases(_ context.Context, f CaseFilter) ([]model.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := []model.Case{}
	for _, c := range s.cases {
		if f.CourtID != "" && c.CourtID != f.CourtID {
			continue
		}
		if len(f.Statuses) > 0 && !containsCaseStatus(f.Statuses, c.Status) {
			continue
		}
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *MemoryStore) CreateCase(_ context.Context, c model.Case) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.cases[c.ID] = c
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) UpdateCase(_ context.Context, c model.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.ID]; !ok {
		return model.NotFoundf("case", c.ID)
	}
	s.cases[c.ID] = c
	return nil
}

func (s *MemoryStore) GetJudge(_ context.Context, id string) (model.Judge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.judges[id]
	if !ok {
		return model.Judge{}, model.NotFoundf("judge", id)
	}
	return j, nil
}

func (s *MemoryStore) ListJudges(_ context.Context, f JudgeFilter) ([]model.Judge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := []model.Judge{}
	for _, j := range s.judges {
		if f.CourtID != "" && j.CourtID != f.CourtID {
			continue
		}
		if f.AvailableOnly && !j.IsAvailable {
			continue
		}
		if f.Specialization != "" && !j.Specializes(f.Specialization) {
			continue
		}
		res = append(res, j)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *MemoryStore) CreateJudge(_ context.Context, j model.Judge) error {
	s.mu.Lock()
	s.judges[j.ID] = j
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) UpdateJudge(_ context.Context, j model.Judge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.judges[j.ID]; !ok {
		return model.NotFoundf("judge", j.ID)
	}
	s.judges[j.ID] = j
	return nil
}

func (s *MemoryStore) GetCourtroom(_ context.Context, id string) (model.Courtroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.courtrooms[id]
	if !ok {
		return model.Courtroom{}, model.NotFoundf("courtroom", id)
	}
	return r, nil
}

func (s *MemoryStore) ListCourtrooms(_ context.Context, f CourtroomFilter) ([]model.Courtroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := []model.Courtroom{}
	for _, r := range s.courtrooms {
		if f.CourtID != "" && r.CourtID != f.CourtID {
			continue
		}
		if f.AvailableOnly && !r.IsAvailable {
			continue
		}
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *MemoryStore) CreateCourtroom(_ context.Context, r model.Courtroom) error {
	s.mu.Lock()
	s.courtrooms[r.ID] = r
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) UpdateCourtroom(_ context.Context, r model.Courtroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courtrooms[r.ID]; !ok {
		return model.NotFoundf("courtroom", r.ID)
	}
	s.courtrooms[r.ID] = r
	return nil
}

func (s *MemoryStore) GetHearing(_ context.Context, id string) (model.Hearing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hearings[id]
	if !ok {
		return model.Hearing{}, model.NotFoundf("hearing", id)
	}
	return h, nil
}

func (s *MemoryStore) ListHearings(_ context.Context, f HearingFilter) ([]model.Hearing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := []model.Hearing{}
	for _, h := range s.hearings {
		if s.matchHearing(f, h) {
			res = append(res, h)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].ScheduledDate.Equal(res[j].ScheduledDate) {
			return res[i].ID < res[j].ID
		}
		return res[i].ScheduledDate.Before(res[j].ScheduledDate)
	})
	return res, nil
}

// matchHearing must be called with the read lock held.
func (s *MemoryStore) matchHearing(f HearingFilter, h model.Hearing) bool {
	if f.CaseID != "" && h.CaseID != f.CaseID {
		return false
	}
	if f.CourtroomID != "" && h.CourtroomID != f.CourtroomID {
		return false
	}
	if len(f.Statuses) > 0 && !containsHearingStatus(f.Statuses, h.Status) {
		return false
	}
	if !f.From.IsZero() && h.ScheduledDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !h.ScheduledDate.Before(f.To) {
		return false
	}
	if f.JudgeID != "" || f.CourtID != "" {
		c, ok := s.cases[h.CaseID]
		if !ok {
			return false
		}
		if f.JudgeID != "" && c.AssignedJudgeID != f.JudgeID {
			return false
		}
		if f.CourtID != "" && c.CourtID != f.CourtID {
			return false
		}
	}
	return true
}

func (s *MemoryStore) CreateHearing(_ context.Context, h model.Hearing) error {
	if err := h.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOccupancy(h); err != nil {
		return err
	}
	s.hearings[h.ID] = h
	return nil
}

func (s *MemoryStore) UpdateHearing(_ context.Context, h model.Hearing) error {
	if err := h.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hearings[h.ID]; !ok {
		return model.NotFoundf("hearing", h.ID)
	}
	if err := s.checkOccupancy(h); err != nil {
		return err
	}
	s.hearings[h.ID] = h
	return nil
}

// checkOccupancy enforces the active occupancy invariant regardless of what
// the caller already verified. Must be called with the write lock held.
func (s *MemoryStore) checkOccupancy(h model.Hearing) error {
	if !h.Status.Active() {
		return nil
	}
	judgeID := ""
	if c, ok := s.cases[h.CaseID]; ok {
		judgeID = c.AssignedJudgeID
	}
	iv := h.Interval()
	for _, other := range s.hearings {
		if other.ID == h.ID || !other.Status.Active() {
			continue
		}
		if !iv.Overlaps(other.Interval()) {
			continue
		}
		if other.CourtroomID == h.CourtroomID {
			return ErrOccupancyConflict
		}
		if judgeID != "" {
			if oc, ok := s.cases[other.CaseID]; ok && oc.AssignedJudgeID == judgeID {
				return ErrOccupancyConflict
			}
		}
	}
	return nil
}

func containsCaseStatus(set []model.CaseStatus, st model.CaseStatus) bool {
	for _, s := range set {
		if s == st {
			return true
		}
	}
	return false
}

func containsHearingStatus(set []model.HearingStatus, st model.HearingStatus) bool {
	for _, s := range set {
		if s == st {
			return true
		}
	}
	return false
}
