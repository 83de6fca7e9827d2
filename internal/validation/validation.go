// Package validation checks interview input before it is allowed anywhere
// near the API. A failed check never results in a remote call.
package validation

import (
	"fmt"
	"strings"

	"github.com/mpriestly/slotbook/internal/models"
)

// Reason identifies why an interview was rejected.
type Reason string

const (
	ReasonBlankStudent       Reason = "blank_student"
	ReasonNoInterviewer      Reason = "no_interviewer"
	ReasonUnknownInterviewer Reason = "unknown_interviewer"
)

// Error is a local precondition failure on user input.
type Error struct {
	Reason  Reason
	Message string
}

func (e *Error) Error() string { return e.Message }

// CheckInterview validates a candidate interview against the known
// interviewer set. It returns a *Error describing the first problem found,
// or nil if the interview is bookable.
func CheckInterview(interview models.Interview, interviewers map[int]models.Interviewer) error {
	if strings.TrimSpace(interview.Student) == "" {
		return &Error{
			Reason:  ReasonBlankStudent,
			Message: "student name cannot be blank",
		}
	}
	if interview.InterviewerID == 0 {
		return &Error{
			Reason:  ReasonNoInterviewer,
			Message: "please select an interviewer",
		}
	}
	if _, ok := interviewers[interview.InterviewerID]; !ok {
		return &Error{
			Reason:  ReasonUnknownInterviewer,
			Message: fmt.Sprintf("unknown interviewer %d", interview.InterviewerID),
		}
	}
	return nil
}
