package selectors

import (
	"reflect"
	"testing"

	"github.com/mpriestly/slotbook/internal/models"
)

func fixtureState() models.State {
	return models.State{
		Day: "Monday",
		Days: []models.Day{
			{ID: 1, Name: "Monday", Spots: 1, AppointmentIDs: []int{1, 2, 3}, InterviewerIDs: []int{3, 5}},
			{ID: 2, Name: "Tuesday", Spots: 1, AppointmentIDs: []int{4}, InterviewerIDs: []int{}},
		},
		Appointments: map[int]models.Appointment{
			1: {ID: 1, Time: "12pm", Interview: &models.Interview{Student: "Archie Cohen", InterviewerID: 5}},
			2: {ID: 2, Time: "1pm"},
			3: {ID: 3, Time: "2pm", Interview: &models.Interview{Student: "Leopold Silvers", InterviewerID: 3}},
			4: {ID: 4, Time: "3pm"},
		},
		Interviewers: map[int]models.Interviewer{
			3: {ID: 3, Name: "Mildred Nazir", Avatar: "https://example.com/3.png"},
			5: {ID: 5, Name: "Sven Jones", Avatar: "https://example.com/5.png"},
		},
	}
}

func TestAppointmentsForDay(t *testing.T) {
	state := fixtureState()

	tests := []struct {
		name    string
		day     string
		wantIDs []int
	}{
		{name: "known day preserves day order", day: "Monday", wantIDs: []int{1, 2, 3}},
		{name: "day with single slot", day: "Tuesday", wantIDs: []int{4}},
		{name: "unknown day yields empty slice", day: "Wednesday", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppointmentsForDay(state, tt.day)
			ids := make([]int, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("AppointmentsForDay(%q) ids = %v, want %v", tt.day, ids, tt.wantIDs)
			}
		})
	}
}

func TestAppointmentsForDay_EmptyState(t *testing.T) {
	got := AppointmentsForDay(models.State{}, "Monday")
	if len(got) != 0 {
		t.Errorf("expected empty result on empty state, got %v", got)
	}
}

func TestInterviewersForDay_DerivedFromBookedAppointments(t *testing.T) {
	state := fixtureState()

	got := InterviewersForDay(state, "Monday")
	ids := make([]int, 0, len(got))
	for _, iv := range got {
		ids = append(ids, iv.ID)
	}
	// First appearance order follows the day's appointment order: slot 1
	// references interviewer 5, slot 3 references interviewer 3.
	want := []int{5, 3}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("InterviewersForDay ids = %v, want %v", ids, want)
	}
}

func TestInterviewersForDay_NoBookings(t *testing.T) {
	state := fixtureState()

	if got := InterviewersForDay(state, "Tuesday"); len(got) != 0 {
		t.Errorf("expected no interviewers for Tuesday, got %v", got)
	}
	if got := InterviewersForDay(state, "Nope"); len(got) != 0 {
		t.Errorf("expected no interviewers for unknown day, got %v", got)
	}
}

func TestInterviewersForDay_Distinct(t *testing.T) {
	state := fixtureState()
	// Book the empty Monday slot with an interviewer already booked that day.
	appt := state.Appointments[2]
	appt.Interview = &models.Interview{Student: "Jamal Jordan", InterviewerID: 5}
	state.Appointments[2] = appt

	got := InterviewersForDay(state, "Monday")
	if len(got) != 2 {
		t.Errorf("expected 2 distinct interviewers, got %d", len(got))
	}
}

func TestResolveInterview(t *testing.T) {
	state := fixtureState()

	t.Run("nil interview resolves to nil", func(t *testing.T) {
		if got := ResolveInterview(state, nil); got != nil {
			t.Errorf("ResolveInterview(nil) = %v, want nil", got)
		}
	})

	t.Run("merges interviewer record", func(t *testing.T) {
		got := ResolveInterview(state, &models.Interview{Student: "Archie Cohen", InterviewerID: 5})
		if got == nil {
			t.Fatal("expected resolved interview, got nil")
		}
		if got.Student != "Archie Cohen" {
			t.Errorf("Student = %q, want %q", got.Student, "Archie Cohen")
		}
		if got.Interviewer.Name != "Sven Jones" {
			t.Errorf("Interviewer.Name = %q, want %q", got.Interviewer.Name, "Sven Jones")
		}
	})

	t.Run("unknown interviewer yields partial record", func(t *testing.T) {
		got := ResolveInterview(state, &models.Interview{Student: "Archie Cohen", InterviewerID: 99})
		if got == nil {
			t.Fatal("expected partial resolved interview, got nil")
		}
		if got.Interviewer.ID != 0 {
			t.Errorf("Interviewer.ID = %d, want zero value", got.Interviewer.ID)
		}
	})
}
