// Package store provides a SQLite-backed implementation of the repository
// interfaces in core/store. It persists cases, judges, courtrooms and
// hearings and enforces the active-occupancy invariant transactionally.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/courtflow/courtflow/core/model"
	corestore "github.com/courtflow/courtflow/core/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS cases (
    id TEXT PRIMARY KEY,
    case_number TEXT NOT NULL,
    title TEXT NOT NULL,
    court_id TEXT NOT NULL,
    jurisdiction TEXT NOT NULL,
    status TEXT NOT NULL,
    urgency_level TEXT NOT NULL,
    complexity_score INTEGER NOT NULL,
    public_interest_score INTEGER NOT NULL,
    estimated_duration_hours REAL NOT NULL,
    filing_date INTEGER NOT NULL,
    assigned_judge_id TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS judges (
    id TEXT PRIMARY KEY,
    court_id TEXT NOT NULL,
    name TEXT NOT NULL,
    specializations TEXT NOT NULL DEFAULT '[]',
    experience_years INTEGER NOT NULL DEFAULT 0,
    current_workload REAL NOT NULL DEFAULT 0,
    is_available INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS courtrooms (
    id TEXT PRIMARY KEY,
    court_id TEXT NOT NULL,
    name TEXT NOT NULL,
    capacity INTEGER NOT NULL DEFAULT 0,
    is_available INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS hearings (
    id TEXT PRIMARY KEY,
    case_id TEXT NOT NULL,
    courtroom_id TEXT NOT NULL,
    scheduled_date INTEGER NOT NULL,
    scheduled_duration_hours REAL NOT NULL,
    status TEXT NOT NULL,
    adjournment_reason TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_hearings_date ON hearings(scheduled_date);
CREATE INDEX IF NOT EXISTS idx_hearings_case ON hearings(case_id);
`

// SQLiteStore persists the scheduling repositories in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ corestore.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes writes; one connection avoids table locks.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// GetCase returns the case with the given id.
func (s *SQLiteStore) GetCase(ctx context.Context, id string) (model.Case, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, case_number, title, court_id,
        jurisdiction, status, urgency_level, complexity_score,
        public_interest_score, estimated_duration_hours, filing_date,
        assigned_judge_id FROM cases WHERE id = ?`, id)
	c, err := scanCase(row)
	if err == sql.ErrNoRows {
		return model.Case{}, model.NotFoundf("case", id)
	}
	return c, err
}

// ListCases returns cases matching the filter, ordered by id.
func (s *SQLiteStore) ListCases(ctx context.Context, f corestore.CaseFilter) ([]model.Case, error) {
	q := `SELECT id, case_number, title, court_id, jurisdiction, status,
        urgency_level, complexity_score, public_interest_score,
        estimated_duration_hours, filing_date, assigned_judge_id FROM cases`
	var conds []string
	var args []any
	if f.CourtID != "" {
		conds = append(conds, "court_id = ?")
		args = append(args, f.CourtID)
	}
	if len(f.Statuses) > 0 {
		ph := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			ph[i] = "?"
			args = append(args, string(st))
		}
		conds = append(conds, "status IN ("+strings.Join(ph, ",")+")")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []model.Case{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// CreateCase validates and stores the case.
func (s *SQLiteStore) CreateCase(ctx context.Context, c model.Case) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO cases
        (id, case_number, title, court_id, jurisdiction, status, urgency_level,
         complexity_score, public_interest_score, estimated_duration_hours,
         filing_date, assigned_judge_id)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.CaseNumber, c.Title, c.CourtID, string(c.Jurisdiction),
		string(c.Status), string(c.UrgencyLevel), c.ComplexityScore,
		c.PublicInterestScore, c.EstimatedDurationHours, c.FilingDate.Unix(),
		c.AssignedJudgeID)
	return err
}

// UpdateCase replaces an existing case.
func (s *SQLiteStore) UpdateCase(ctx context.Context, c model.Case) error {
	res, err := s.db.ExecContext(ctx, `UPDATE cases SET case_number = ?,
        title = ?, court_id = ?, jurisdiction = ?, status = ?,
        urgency_level = ?, complexity_score = ?, public_interest_score = ?,
        estimated_duration_hours = ?, filing_date = ?, assigned_judge_id = ?
        WHERE id = ?`,
		c.CaseNumber, c.Title, c.CourtID, string(c.Jurisdiction),
		string(c.Status), string(c.UrgencyLevel), c.ComplexityScore,
		c.PublicInterestScore, c.EstimatedDurationHours, c.FilingDate.Unix(),
		c.AssignedJudgeID, c.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, "case", c.ID)
}

// GetJudge returns the judge with the given id.
func (s *SQLiteStore) GetJudge(ctx context.Context, id string) (model.Judge, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, court_id, name,
        specializations, experience_years, current_workload, is_available
        FROM judges WHERE id = ?`, id)
	j, err := scanJudge(row)
	if err == sql.ErrNoRows {
		return model.Judge{}, model.NotFoundf("judge", id)
	}
	return j, err
}

// ListJudges returns judges matching the filter, ordered by id.
// Specialization filtering happens in Go: the list is small and the
// specializations column is a JSON array.
func (s *SQLiteStore) ListJudges(ctx context.Context, f corestore.JudgeFilter) ([]model.Judge, error) {
	q := `SELECT id, court_id, name, specializations, experience_years,
        current_workload, is_available FROM judges`
	var conds []string
	var args []any
	if f.CourtID != "" {
		conds = append(conds, "court_id = ?")
		args = append(args, f.CourtID)
	}
	if f.AvailableOnly {
		conds = append(conds, "is_available = 1")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []model.Judge{}
	for rows.Next() {
		j, err := scanJudge(rows)
		if err != nil {
			return nil, err
		}
		if f.Specialization != "" && !j.Specializes(f.Specialization) {
			continue
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

// CreateJudge stores the judge.
func (s *SQLiteStore) CreateJudge(ctx context.Context, j model.Judge) error {
	specs, err := json.Marshal(j.Specializations)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO judges
        (id, court_id, name, specializations, experience_years,
         current_workload, is_available) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.CourtID, j.Name, string(specs), j.ExperienceYears,
		j.CurrentWorkload, boolInt(j.IsAvailable))
	return err
}

// UpdateJudge replaces an existing judge.
func (s *SQLiteStore) UpdateJudge(ctx context.Context, j model.Judge) error {
	specs, err := json.Marshal(j.Specializations)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE judges SET court_id = ?,
        name = ?, specializations = ?, experience_years = ?,
        current_workload = ?, is_available = ? WHERE id = ?`,
		j.CourtID, j.Name, string(specs), j.ExperienceYears,
		j.CurrentWorkload, boolInt(j.IsAvailable), j.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, "judge", j.ID)
}

// GetCourtroom returns the courtroom with the given id.
func (s *SQLiteStore) GetCourtroom(ctx context.Context, id string) (model.Courtroom, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, court_id, name, capacity,
        is_available FROM courtrooms WHERE id = ?`, id)
	r, err := scanCourtroom(row)
	if err == sql.ErrNoRows {
		return model.Courtroom{}, model.NotFoundf("courtroom", id)
	}
	return r, err
}

// ListCourtrooms returns courtrooms matching the filter, ordered by id.
func (s *SQLiteStore) ListCourtrooms(ctx context.Context, f corestore.CourtroomFilter) ([]model.Courtroom, error) {
	q := `SELECT id, court_id, name, capacity, is_available FROM courtrooms`
	var conds []string
	var args []any
	if f.CourtID != "" {
		conds = append(conds, "court_id = ?")
		args = append(args, f.CourtID)
	}
	if f.AvailableOnly {
		conds = append(conds, "is_available = 1")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []model.Courtroom{}
	for rows.Next() {
		r, err := scanCourtroom(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// CreateCourtroom stores the courtroom.
func (s *SQLiteStore) CreateCourtroom(ctx context.Context, r model.Courtroom) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO courtrooms
        (id, court_id, name, capacity, is_available) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.CourtID, r.Name, r.Capacity, boolInt(r.IsAvailable))
	return err
}

// UpdateCourtroom replaces an existing courtroom.
func (s *SQLiteStore) UpdateCourtroom(ctx context.Context, r model.Courtroom) error {
	res, err := s.db.ExecContext(ctx, `UPDATE courtrooms SET court_id = ?,
        name = ?, capacity = ?, is_available = ? WHERE id = ?`,
		r.CourtID, r.Name, r.Capacity, boolInt(r.IsAvailable), r.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, "courtroom", r.ID)
}

// GetHearing returns the hearing with the given id.
func (s *SQLiteStore) GetHearing(ctx context.Context, id string) (model.Hearing, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, case_id, courtroom_id,
        scheduled_date, scheduled_duration_hours, status, adjournment_reason,
        notes, created_at FROM hearings WHERE id = ?`, id)
	h, err := scanHearing(row)
	if err == sql.ErrNoRows {
		return model.Hearing{}, model.NotFoundf("hearing", id)
	}
	return h, err
}

// ListHearings returns hearings matching the filter, ordered by start time.
// JudgeID and CourtID match through the hearing's case.
func (s *SQLiteStore) ListHearings(ctx context.Context, f corestore.HearingFilter) ([]model.Hearing, error) {
	q := `SELECT h.id, h.case_id, h.courtroom_id, h.scheduled_date,
        h.scheduled_duration_hours, h.status, h.adjournment_reason, h.notes,
        h.created_at FROM hearings h`
	var conds []string
	var args []any
	if f.JudgeID != "" || f.CourtID != "" {
		q += " JOIN cases c ON c.id = h.case_id"
		if f.JudgeID != "" {
			conds = append(conds, "c.assigned_judge_id = ?")
			args = append(args, f.JudgeID)
		}
		if f.CourtID != "" {
			conds = append(conds, "c.court_id = ?")
			args = append(args, f.CourtID)
		}
	}
	if f.CaseID != "" {
		conds = append(conds, "h.case_id = ?")
		args = append(args, f.CaseID)
	}
	if f.CourtroomID != "" {
		conds = append(conds, "h.courtroom_id = ?")
		args = append(args, f.CourtroomID)
	}
	if len(f.Statuses) > 0 {
		ph := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			ph[i] = "?"
			args = append(args, string(st))
		}
		conds = append(conds, "h.status IN ("+strings.Join(ph, ",")+")")
	}
	if !f.From.IsZero() {
		conds = append(conds, "h.scheduled_date >= ?")
		args = append(args, f.From.Unix())
	}
	if !f.To.IsZero() {
		conds = append(conds, "h.scheduled_date < ?")
		args = append(args, f.To.Unix())
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY h.scheduled_date, h.id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []model.Hearing{}
	for rows.Next() {
		h, err := scanHearing(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

// CreateHearing validates the hearing and stores it, rejecting writes that
// would overlap an active hearing on the same courtroom or judge.
func (s *SQLiteStore) CreateHearing(ctx context.Context, h model.Hearing) error {
	return s.writeHearing(ctx, h, `INSERT OR REPLACE INTO hearings
        (id, case_id, courtroom_id, scheduled_date, scheduled_duration_hours,
         status, adjournment_reason, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, false)
}

// UpdateHearing revalidates occupancy and replaces an existing hearing.
func (s *SQLiteStore) UpdateHearing(ctx context.Context, h model.Hearing) error {
	return s.writeHearing(ctx, h, `UPDATE hearings SET case_id = ?,
        courtroom_id = ?, scheduled_date = ?, scheduled_duration_hours = ?,
        status = ?, adjournment_reason = ?, notes = ?, created_at = ?
        WHERE id = ?`, true)
}

func (s *SQLiteStore) writeHearing(ctx context.Context, h model.Hearing, query string, update bool) error {
	if err := h.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if h.Status.Active() {
		if err := checkOccupancy(ctx, tx, h); err != nil {
			return err
		}
	}

	var res sql.Result
	if update {
		res, err = tx.ExecContext(ctx, query, h.CaseID, h.CourtroomID,
			h.ScheduledDate.Unix(), h.ScheduledDurationHours, string(h.Status),
			h.AdjournmentReason, h.Notes, h.CreatedAt.Unix(), h.ID)
	} else {
		res, err = tx.ExecContext(ctx, query, h.ID, h.CaseID, h.CourtroomID,
			h.ScheduledDate.Unix(), h.ScheduledDurationHours, string(h.Status),
			h.AdjournmentReason, h.Notes, h.CreatedAt.Unix())
	}
	if err != nil {
		return err
	}
	if update {
		if err := requireAffected(res, "hearing", h.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// checkOccupancy rejects intervals overlapping an active hearing on the same
// courtroom, or on the judge assigned to the hearing's case.
func checkOccupancy(ctx context.Context, tx *sql.Tx, h model.Hearing) error {
	start := h.ScheduledDate.Unix()
	end := start + int64(h.ScheduledDurationHours*3600)

	var judgeID string
	err := tx.QueryRowContext(ctx,
		`SELECT assigned_judge_id FROM cases WHERE id = ?`, h.CaseID).Scan(&judgeID)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	// LEFT JOIN so the courtroom check still sees hearings whose case row
	// is gone; the judge clause never matches their NULL assigned_judge_id.
	q := `SELECT COUNT(*) FROM hearings h LEFT JOIN cases c ON c.id = h.case_id
        WHERE h.id != ?
          AND h.status IN ('scheduled', 'hearing')
          AND h.scheduled_date < ?
          AND h.scheduled_date + CAST(h.scheduled_duration_hours * 3600 AS INTEGER) > ?
          AND (h.courtroom_id = ?`
	args := []any{h.ID, end, start, h.CourtroomID}
	if judgeID != "" {
		q += ` OR (c.assigned_judge_id != '' AND c.assigned_judge_id = ?)`
		args = append(args, judgeID)
	}
	q += `)`

	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("hearing %s at %s: %w", h.ID,
			h.ScheduledDate.Format(time.RFC3339), corestore.ErrOccupancyConflict)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(r rowScanner) (model.Case, error) {
	var c model.Case
	var jurisdiction, status, urgency string
	var filed int64
	if err := r.Scan(&c.ID, &c.CaseNumber, &c.Title, &c.CourtID, &jurisdiction,
		&status, &urgency, &c.ComplexityScore, &c.PublicInterestScore,
		&c.EstimatedDurationHours, &filed, &c.AssignedJudgeID); err != nil {
		return model.Case{}, err
	}
	c.Jurisdiction = model.Jurisdiction(jurisdiction)
	c.Status = model.CaseStatus(status)
	c.UrgencyLevel = model.UrgencyLevel(urgency)
	c.FilingDate = time.Unix(filed, 0).UTC()
	return c, nil
}

func scanJudge(r rowScanner) (model.Judge, error) {
	var j model.Judge
	var specs string
	var avail int
	if err := r.Scan(&j.ID, &j.CourtID, &j.Name, &specs, &j.ExperienceYears,
		&j.CurrentWorkload, &avail); err != nil {
		return model.Judge{}, err
	}
	if err := json.Unmarshal([]byte(specs), &j.Specializations); err != nil {
		return model.Judge{}, fmt.Errorf("judge %s specializations: %w", j.ID, err)
	}
	j.IsAvailable = avail != 0
	return j, nil
}

func scanCourtroom(r rowScanner) (model.Courtroom, error) {
	var c model.Courtroom
	var avail int
	if err := r.Scan(&c.ID, &c.CourtID, &c.Name, &c.Capacity, &avail); err != nil {
		return model.Courtroom{}, err
	}
	c.IsAvailable = avail != 0
	return c, nil
}

func scanHearing(r rowScanner) (model.Hearing, error) {
	var h model.Hearing
	var status string
	var scheduled, created int64
	if err := r.Scan(&h.ID, &h.CaseID, &h.CourtroomID, &scheduled,
		&h.ScheduledDurationHours, &status, &h.AdjournmentReason, &h.Notes,
		&created); err != nil {
		return model.Hearing{}, err
	}
	h.Status = model.HearingStatus(status)
	h.ScheduledDate = time.Unix(scheduled, 0).UTC()
	h.CreatedAt = time.Unix(created, 0).UTC()
	return h, nil
}

func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.NotFoundf(entity, id)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
