package appointment

import (
	"errors"
	"testing"

	"github.com/mpriestly/slotbook/internal/models"
)

var interviewers = []models.Interviewer{
	{ID: 1, Name: "Sylvia Palmer"},
	{ID: 2, Name: "Tori Malcolm"},
}

func freeSlot() models.Appointment {
	return models.Appointment{ID: 1, Time: "12pm"}
}

func bookedSlot() models.Appointment {
	return models.Appointment{
		ID:        2,
		Time:      "1pm",
		Interview: &models.Interview{Student: "Archie Cohen", InterviewerID: 2},
	}
}

func TestInitialMode(t *testing.T) {
	if got := New(freeSlot(), nil).Mode().Kind; got != KindEmpty {
		t.Errorf("free slot starts in %s, want %s", got, KindEmpty)
	}
	booked := bookedSlot()
	resolved := &models.ResolvedInterview{Student: "Archie Cohen", Interviewer: interviewers[1]}
	if got := New(booked, resolved).Mode().Kind; got != KindShow {
		t.Errorf("booked slot starts in %s, want %s", got, KindShow)
	}
}

func TestCreateFlow(t *testing.T) {
	w := New(freeSlot(), nil)
	if cmd := w.StartCreate(interviewers); cmd == nil {
		t.Fatal("StartCreate returned no init command")
	}
	if w.Mode().Kind != KindCreate || w.Form() == nil {
		t.Fatalf("after StartCreate: mode %s, form %v", w.Mode().Kind, w.Form())
	}

	w.BeginSaving()
	if w.Mode().Kind != KindSaving || !w.InFlight() {
		t.Fatalf("after BeginSaving: mode %s", w.Mode().Kind)
	}

	w.CompleteSave(nil)
	if w.Mode().Kind != KindShow {
		t.Errorf("after successful save: mode %s, want %s", w.Mode().Kind, KindShow)
	}
}

func TestSaveErrorReturnsToForm(t *testing.T) {
	w := New(freeSlot(), nil)
	w.StartCreate(interviewers)
	w.input = FormData{Student: "Lydia Miller-Jones", InterviewerID: 1}
	w.BeginSaving()
	w.CompleteSave(errors.New("boom"))
	if w.Mode().Kind != KindErrorSave {
		t.Fatalf("after failed save: mode %s, want %s", w.Mode().Kind, KindErrorSave)
	}

	w.CloseError()
	if w.Mode().Kind != KindCreate {
		t.Fatalf("after closing error: mode %s, want %s", w.Mode().Kind, KindCreate)
	}
	if w.Input().Student != "Lydia Miller-Jones" {
		t.Errorf("typed input lost across the error: %q", w.Input().Student)
	}
	if cmd := w.Reopen(interviewers); cmd == nil || w.Form() == nil {
		t.Error("Reopen did not rebuild the form")
	}
}

func TestValidationErrorKeepsInput(t *testing.T) {
	w := New(freeSlot(), nil)
	w.StartCreate(interviewers)
	w.input = FormData{Student: "  ", InterviewerID: 1}
	w.ValidationFailed("student name cannot be blank")
	if w.Mode().Kind != KindErrorValidate {
		t.Fatalf("mode %s, want %s", w.Mode().Kind, KindErrorValidate)
	}

	w.CloseError()
	if w.Mode().Kind != KindCreate {
		t.Fatalf("after closing validation error: mode %s, want %s", w.Mode().Kind, KindCreate)
	}
	if w.Input().InterviewerID != 1 {
		t.Errorf("interviewer selection lost: %d", w.Input().InterviewerID)
	}
}

func TestCancelFlow(t *testing.T) {
	w := New(bookedSlot(), nil)
	w.RequestDelete()
	if w.Mode().Kind != KindConfirm {
		t.Fatalf("after RequestDelete: mode %s, want %s", w.Mode().Kind, KindConfirm)
	}

	w.DismissConfirm()
	if w.Mode().Kind != KindShow {
		t.Fatalf("after DismissConfirm: mode %s, want %s", w.Mode().Kind, KindShow)
	}

	w.RequestDelete()
	w.BeginCanceling()
	if w.Mode().Kind != KindCanceling {
		t.Fatalf("after BeginCanceling: mode %s, want %s", w.Mode().Kind, KindCanceling)
	}

	w.CompleteCancel(nil)
	if w.Mode().Kind != KindEmpty {
		t.Errorf("after successful cancel: mode %s, want %s", w.Mode().Kind, KindEmpty)
	}
}

func TestCancelErrorReturnsToShow(t *testing.T) {
	w := New(bookedSlot(), nil)
	w.RequestDelete()
	w.BeginCanceling()
	w.CompleteCancel(errors.New("boom"))
	if w.Mode().Kind != KindErrorDelete {
		t.Fatalf("after failed cancel: mode %s, want %s", w.Mode().Kind, KindErrorDelete)
	}

	w.CloseError()
	if w.Mode().Kind != KindShow {
		t.Errorf("after closing error: mode %s, want %s", w.Mode().Kind, KindShow)
	}
}

func TestSyncDataFlipsIdleModes(t *testing.T) {
	w := New(freeSlot(), nil)
	appt := freeSlot()
	appt.Interview = &models.Interview{Student: "Archie Cohen", InterviewerID: 2}
	w.SyncData(appt, nil)
	if w.Mode().Kind != KindShow {
		t.Fatalf("pushed booking: mode %s, want %s", w.Mode().Kind, KindShow)
	}

	appt.Interview = nil
	w.SyncData(appt, nil)
	if w.Mode().Kind != KindEmpty {
		t.Errorf("pushed cancellation: mode %s, want %s", w.Mode().Kind, KindEmpty)
	}
}

func TestSyncDataLeavesActiveWidgetAlone(t *testing.T) {
	w := New(freeSlot(), nil)
	w.StartCreate(interviewers)

	appt := freeSlot()
	appt.Interview = &models.Interview{Student: "Archie Cohen", InterviewerID: 2}
	w.SyncData(appt, nil)
	if w.Mode().Kind != KindCreate {
		t.Errorf("mid-form widget changed mode to %s", w.Mode().Kind)
	}
}

func TestStartGuards(t *testing.T) {
	w := New(bookedSlot(), nil)
	if cmd := w.StartCreate(interviewers); cmd != nil {
		t.Error("StartCreate allowed on a booked slot")
	}

	free := New(freeSlot(), nil)
	if cmd := free.StartEdit(interviewers); cmd != nil {
		t.Error("StartEdit allowed on a free slot")
	}
}
