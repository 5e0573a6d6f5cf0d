// Package calendar builds read-only calendar views over scheduled hearings:
// an occupancy heatmap for a date range, detailed day and week schedules,
// and a near-term upcoming-hearings listing. Monday through Friday are
// working days; weekends appear in week views only as non-working markers.
package calendar
