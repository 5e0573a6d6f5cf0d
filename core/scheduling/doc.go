// Package scheduling implements hearing assignment for court cases: conflict
// detection over committed occupancies, priority scoring of candidate slots,
// bounded slot search, and the commit/reschedule coordinator. Slot search is
// a pure enumerate-filter-rank pipeline over a fixed horizon, not a
// constraint solver.
package scheduling
