package models

// Day is one bookable day in the schedule. Days are loaded once from the API
// and never created or destroyed at runtime; only Spots changes, in response
// to bookings and cancellations.
type Day struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// Spots is the number of free appointment slots for this day. It must
	// always equal the count of this day's appointments with a nil interview.
	Spots int `json:"spots"`
	// AppointmentIDs holds the day's appointment ids in display order. The
	// wire name is "appointments" for compatibility with the scheduling API.
	AppointmentIDs []int `json:"appointments"`
	InterviewerIDs []int `json:"interviewers"`
}

// Appointment is a single time slot, optionally holding a booked interview.
type Appointment struct {
	ID        int        `json:"id"`
	Time      string     `json:"time"`
	Interview *Interview `json:"interview"`
}

// Booked reports whether the appointment currently holds an interview.
func (a Appointment) Booked() bool {
	return a.Interview != nil
}

// Interview pairs a student with an interviewer for one appointment. It is a
// value type: saves replace it wholesale, it is never mutated in place.
type Interview struct {
	Student       string `json:"student"`
	InterviewerID int    `json:"interviewer"`
}

// Interviewer is immutable reference data loaded once from the API.
type Interviewer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ResolvedInterview is the denormalized display form of an Interview, with
// the interviewer record merged in.
type ResolvedInterview struct {
	Student     string      `json:"student"`
	Interviewer Interviewer `json:"interviewer"`
}

// State is the full normalized application state. The store owns the single
// mutable instance; everything handed out is a deep copy.
type State struct {
	// Day is the name of the currently selected day.
	Day            string              `json:"day"`
	Days           []Day               `json:"days"`
	Appointments   map[int]Appointment `json:"appointments"`
	Interviewers   map[int]Interviewer `json:"interviewers"`
	LiveSyncActive bool                `json:"live_sync_active"`
}

// Clone returns a deep copy of the state. Interview pointers are duplicated
// so callers can never alias the store's internal data.
func (s State) Clone() State {
	out := State{
		Day:            s.Day,
		Days:           make([]Day, len(s.Days)),
		Appointments:   make(map[int]Appointment, len(s.Appointments)),
		Interviewers:   make(map[int]Interviewer, len(s.Interviewers)),
		LiveSyncActive: s.LiveSyncActive,
	}
	for i, d := range s.Days {
		day := d
		day.AppointmentIDs = append([]int(nil), d.AppointmentIDs...)
		day.InterviewerIDs = append([]int(nil), d.InterviewerIDs...)
		out.Days[i] = day
	}
	for id, a := range s.Appointments {
		appt := a
		if a.Interview != nil {
			iv := *a.Interview
			appt.Interview = &iv
		}
		out.Appointments[id] = appt
	}
	for id, iv := range s.Interviewers {
		out.Interviewers[id] = iv
	}
	return out
}

// DayByName returns the day with the given name, or nil if unknown.
func (s State) DayByName(name string) *Day {
	for i := range s.Days {
		if s.Days[i].Name == name {
			return &s.Days[i]
		}
	}
	return nil
}

// OwningDay returns the day whose AppointmentIDs contain the given
// appointment id, or nil if no day owns it. An appointment belongs to exactly
// one day.
func (s State) OwningDay(appointmentID int) *Day {
	for i := range s.Days {
		for _, id := range s.Days[i].AppointmentIDs {
			if id == appointmentID {
				return &s.Days[i]
			}
		}
	}
	return nil
}
