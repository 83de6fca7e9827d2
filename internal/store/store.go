// Package store holds the single source of truth for days, appointments and
// interviewers, and keeps per-day spot counts consistent across local
// mutations and pushed updates.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/mpriestly/slotbook/internal/logger"
	"github.com/mpriestly/slotbook/internal/models"
	"github.com/mpriestly/slotbook/internal/validation"
)

// Gateway is the remote API surface the store depends on.
type Gateway interface {
	GetDays(ctx context.Context) ([]models.Day, error)
	GetAppointments(ctx context.Context) (map[int]models.Appointment, error)
	GetInterviewers(ctx context.Context) (map[int]models.Interviewer, error)
	PutAppointment(ctx context.Context, id int, interview models.Interview) error
	DeleteAppointment(ctx context.Context, id int) error
}

// UpdateSource tells the synchronization routine whether an interview change
// came from a local call resolution or from the live feed.
type UpdateSource string

const (
	SourceLocal UpdateSource = "local"
	SourcePush  UpdateSource = "push"
)

// LoadError means one of the three initial fetches failed. No partial data
// from the failed batch is merged.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("initial load failed: %v", e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// BookingError means a remote save was rejected or answered with an
// unexpected status. State is unchanged.
type BookingError struct {
	AppointmentID int
	Err           error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("booking appointment %d failed: %v", e.AppointmentID, e.Err)
}
func (e *BookingError) Unwrap() error { return e.Err }

// CancellationError means a remote delete was rejected or answered with an
// unexpected status. State is unchanged.
type CancellationError struct {
	AppointmentID int
	Err           error
}

func (e *CancellationError) Error() string {
	return fmt.Sprintf("cancelling appointment %d failed: %v", e.AppointmentID, e.Err)
}
func (e *CancellationError) Unwrap() error { return e.Err }

// InternalConsistencyError means a state transition would have violated the
// spot-count invariant. It indicates a bug or corrupt server data, not a user
// mistake; the offending transition is not applied.
type InternalConsistencyError struct {
	Day    string
	Detail string
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent state for day %q: %s", e.Day, e.Detail)
}

// Store owns the application state. All access goes through its methods; the
// mutex guarantees each mutation runs to completion before any other mutation
// or read observes the state, and that spot deltas are always derived from
// the latest state at resolution time rather than a snapshot captured when
// the remote call was issued.
type Store struct {
	mu      sync.Mutex
	gateway Gateway
	state   models.State

	// pushAuthoritative suppresses the local success-branch state write while
	// the live feed is connected, so a change is applied exactly once.
	pushAuthoritative bool
}

// New returns an empty store backed by the given gateway.
func New(gw Gateway) *Store {
	return &Store{
		gateway: gw,
		state: models.State{
			Appointments: map[int]models.Appointment{},
			Interviewers: map[int]models.Interviewer{},
		},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Restore replaces the normalized state from a previously saved snapshot,
// keeping the current day selection if the snapshot has none. Used for
// offline viewing from the local cache.
func (s *Store) Restore(state models.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := s.state.Day
	s.state = state.Clone()
	if s.state.Day == "" {
		s.state.Day = day
	}
	s.ensureSelectedDay()
}

// LoadInitial fetches days, appointments and interviewers concurrently and,
// only if all three succeed, replaces the normalized state. The current day
// selection survives a reload. On failure the state is left exactly as it
// was.
func (s *Store) LoadInitial(ctx context.Context) error {
	var (
		wg           sync.WaitGroup
		days         []models.Day
		appointments map[int]models.Appointment
		interviewers map[int]models.Interviewer
		errDays      error
		errAppts     error
		errIvs       error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		days, errDays = s.gateway.GetDays(ctx)
	}()
	go func() {
		defer wg.Done()
		appointments, errAppts = s.gateway.GetAppointments(ctx)
	}()
	go func() {
		defer wg.Done()
		interviewers, errIvs = s.gateway.GetInterviewers(ctx)
	}()
	wg.Wait()

	for _, err := range []error{errDays, errAppts, errIvs} {
		if err != nil {
			return &LoadError{Err: err}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Days = days
	s.state.Appointments = appointments
	s.state.Interviewers = interviewers
	s.ensureSelectedDay()
	logger.Info("loaded schedule", "days", len(days), "appointments", len(appointments), "interviewers", len(interviewers))
	return nil
}

// ensureSelectedDay points the selection at the first day when it is empty or
// names a day that no longer exists. Callers hold the lock.
func (s *Store) ensureSelectedDay() {
	if s.state.DayByName(s.state.Day) != nil {
		return
	}
	if len(s.state.Days) > 0 {
		s.state.Day = s.state.Days[0].Name
	}
}

// SelectDay switches the current day. A purely local change; selecting a day
// that does not exist is allowed and simply projects to an empty schedule.
func (s *Store) SelectDay(day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Day = day
}

// SetLiveSync records whether the push feed is connected. While it is, the
// feed is authoritative: local call resolutions no longer write state and the
// corresponding push message does instead.
func (s *Store) SetLiveSync(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushAuthoritative = active
	s.state.LiveSyncActive = active
}

// BookInterview validates the interview, sends it to the API and, on
// confirmed success, applies the change to local state. No optimistic update:
// until the call resolves, readers see pre-call state, and on failure the
// state is untouched.
func (s *Store) BookInterview(ctx context.Context, appointmentID int, interview models.Interview) error {
	s.mu.Lock()
	err := validation.CheckInterview(interview, s.state.Interviewers)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := s.gateway.PutAppointment(ctx, appointmentID, interview); err != nil {
		return &BookingError{AppointmentID: appointmentID, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	iv := interview
	if err := s.applyInterview(appointmentID, &iv, SourceLocal); err != nil {
		return err
	}
	return nil
}

// CancelInterview sends the deletion to the API and, on confirmed success,
// clears the slot and returns its spot to the owning day.
func (s *Store) CancelInterview(ctx context.Context, appointmentID int) error {
	if err := s.gateway.DeleteAppointment(ctx, appointmentID); err != nil {
		return &CancellationError{AppointmentID: appointmentID, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyInterview(appointmentID, nil, SourceLocal)
}

// ApplyPushedUpdate applies a server-initiated interview change. It runs the
// same synchronization routine as the success branches of BookInterview and
// CancelInterview, so spot accounting is identical for both sources and
// re-applying a change the local path already applied is a no-op.
func (s *Store) ApplyPushedUpdate(appointmentID int, interview *models.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyInterview(appointmentID, interview, SourcePush)
}

// applyInterview is the single invariant-preserving state transition for an
// interview change. The spot delta is derived by comparing old and new
// interview presence, never by blind increment, which makes the routine
// idempotent for repeated identical updates. Callers hold the lock.
func (s *Store) applyInterview(appointmentID int, interview *models.Interview, source UpdateSource) error {
	if source == SourceLocal && s.pushAuthoritative {
		// The live feed will deliver this change; applying it here too would
		// be harmless for the appointment but is skipped so state has exactly
		// one writer per change.
		logger.Debug("local update suppressed, live feed is authoritative", "appointment", appointmentID)
		return nil
	}

	appt, ok := s.state.Appointments[appointmentID]
	if !ok {
		return &InternalConsistencyError{Detail: fmt.Sprintf("unknown appointment %d", appointmentID)}
	}
	day := s.state.OwningDay(appointmentID)
	if day == nil {
		return &InternalConsistencyError{Detail: fmt.Sprintf("appointment %d belongs to no day", appointmentID)}
	}

	wasBooked := appt.Interview != nil
	isBooked := interview != nil
	delta := 0
	switch {
	case !wasBooked && isBooked:
		delta = -1
	case wasBooked && !isBooked:
		delta = +1
	}

	spots := day.Spots + delta
	if spots < 0 || spots > len(day.AppointmentIDs) {
		return &InternalConsistencyError{
			Day:    day.Name,
			Detail: fmt.Sprintf("spot count would become %d of %d slots", spots, len(day.AppointmentIDs)),
		}
	}

	if interview != nil {
		iv := *interview
		appt.Interview = &iv
	} else {
		appt.Interview = nil
	}
	s.state.Appointments[appointmentID] = appt
	day.Spots = spots
	logger.Debug("applied interview update", "appointment", appointmentID, "source", source, "day", day.Name, "spots", spots)
	return nil
}

// VerifyConsistency re-derives every day's spot count from the appointment
// map and reports the first mismatch. Used by diagnostics and tests.
func (s *Store) VerifyConsistency() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, day := range s.state.Days {
		free := 0
		for _, id := range day.AppointmentIDs {
			if appt, ok := s.state.Appointments[id]; ok && appt.Interview == nil {
				free++
			}
		}
		if free != day.Spots {
			return &InternalConsistencyError{
				Day:    day.Name,
				Detail: fmt.Sprintf("stored spots %d, derived %d", day.Spots, free),
			}
		}
	}
	return nil
}
