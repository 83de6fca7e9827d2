// Package selectors provides pure, side-effect-free projections over the
// application state. All functions are safe to call on every render.
package selectors

import "github.com/mpriestly/slotbook/internal/models"

// AppointmentsForDay returns the appointments for the named day in that day's
// display order. Unknown day names yield an empty slice, not an error.
func AppointmentsForDay(state models.State, dayName string) []models.Appointment {
	day := state.DayByName(dayName)
	if day == nil {
		return []models.Appointment{}
	}

	appointments := make([]models.Appointment, 0, len(day.AppointmentIDs))
	for _, id := range day.AppointmentIDs {
		if appt, ok := state.Appointments[id]; ok {
			appointments = append(appointments, appt)
		}
	}
	return appointments
}

// InterviewersForDay returns the interviewers booked into the named day's
// filled appointments, in order of first appearance. Deriving the roster from
// booked appointments rather than the day's stored interviewer ids keeps it
// consistent under live updates.
func InterviewersForDay(state models.State, dayName string) []models.Interviewer {
	day := state.DayByName(dayName)
	if day == nil {
		return []models.Interviewer{}
	}

	seen := make(map[int]bool)
	interviewers := []models.Interviewer{}
	for _, id := range day.AppointmentIDs {
		appt, ok := state.Appointments[id]
		if !ok || appt.Interview == nil {
			continue
		}
		ivID := appt.Interview.InterviewerID
		if seen[ivID] {
			continue
		}
		seen[ivID] = true
		if interviewer, ok := state.Interviewers[ivID]; ok {
			interviewers = append(interviewers, interviewer)
		}
	}
	return interviewers
}

// ResolveInterview merges the stored interviewer record into an interview for
// display. A nil interview resolves to nil. An unknown interviewer id yields
// a partial record with a zero-valued Interviewer rather than an error; data
// invariants make that case unreachable from well-formed state.
func ResolveInterview(state models.State, interview *models.Interview) *models.ResolvedInterview {
	if interview == nil {
		return nil
	}
	resolved := &models.ResolvedInterview{Student: interview.Student}
	if interviewer, ok := state.Interviewers[interview.InterviewerID]; ok {
		resolved.Interviewer = interviewer
	}
	return resolved
}
