// Package appointment implements the per-slot widget. Each widget owns a
// mode tracker driving its visual state and a form holding user input. Form
// input lives outside the tracker, so backing out of an error keeps whatever
// the user typed.
package appointment

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mpriestly/slotbook/internal/mode"
	"github.com/mpriestly/slotbook/internal/models"
)

// The widget's mode vocabulary.
const (
	KindEmpty         mode.Kind = "EMPTY"
	KindShow          mode.Kind = "SHOW"
	KindCreate        mode.Kind = "CREATE"
	KindEdit          mode.Kind = "EDIT"
	KindSaving        mode.Kind = "SAVING"
	KindCanceling     mode.Kind = "CANCELING"
	KindConfirm       mode.Kind = "CONFIRM"
	KindErrorSave     mode.Kind = "ERROR_SAVE"
	KindErrorDelete   mode.Kind = "ERROR_DELETE"
	KindErrorValidate mode.Kind = "ERROR_VALIDATE"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	studentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	interviewerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)

	freeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	confirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// FormData is the user's in-progress input for one slot. It survives mode
// transitions, including validation failures and remote errors.
type FormData struct {
	Student       string
	InterviewerID int
}

// Model is one appointment slot widget.
type Model struct {
	Appt     models.Appointment
	Resolved *models.ResolvedInterview

	tracker *mode.Tracker
	form    *huh.Form
	input   FormData
	spinner spinner.Model
}

// New creates the widget for a slot. A booked slot starts in SHOW, a free one
// in EMPTY.
func New(appt models.Appointment, resolved *models.ResolvedInterview) *Model {
	initial := mode.Mode{Kind: KindEmpty}
	if appt.Interview != nil {
		initial = mode.Mode{Kind: KindShow}
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		Appt:     appt,
		Resolved: resolved,
		tracker:  mode.NewTracker(initial),
		spinner:  sp,
	}
}

// Mode returns the widget's current visual mode.
func (m *Model) Mode() mode.Mode {
	return m.tracker.Mode()
}

// Form returns the active booking form, or nil when no form is open.
func (m *Model) Form() *huh.Form {
	return m.form
}

// Input returns the current form input.
func (m *Model) Input() FormData {
	return m.input
}

// Spinner exposes the in-flight spinner for tick updates.
func (m *Model) Spinner() *spinner.Model {
	return &m.spinner
}

// SyncData applies refreshed slot data. A pushed change flips an idle widget
// between EMPTY and SHOW; widgets mid-interaction keep their mode and the
// new data shows once they return to an idle mode.
func (m *Model) SyncData(appt models.Appointment, resolved *models.ResolvedInterview) {
	m.Appt = appt
	m.Resolved = resolved
	if appt.Interview != nil && m.tracker.Is(KindEmpty) {
		m.tracker.Transition(mode.Mode{Kind: KindShow}, false)
	}
	if appt.Interview == nil && m.tracker.Is(KindShow) {
		m.tracker.Transition(mode.Mode{Kind: KindEmpty}, false)
	}
}

// StartCreate opens a blank booking form. Only valid from EMPTY. The
// returned command initializes the form and must be dispatched.
func (m *Model) StartCreate(interviewers []models.Interviewer) tea.Cmd {
	if !m.tracker.Is(KindEmpty) {
		return nil
	}
	m.input = FormData{}
	m.buildForm(interviewers)
	m.tracker.Transition(mode.Mode{Kind: KindCreate}, false)
	return m.form.Init()
}

// StartEdit opens the form pre-filled with the booked interview. Only valid
// from SHOW.
func (m *Model) StartEdit(interviewers []models.Interviewer) tea.Cmd {
	if !m.tracker.Is(KindShow) || m.Appt.Interview == nil {
		return nil
	}
	m.input = FormData{
		Student:       m.Appt.Interview.Student,
		InterviewerID: m.Appt.Interview.InterviewerID,
	}
	m.buildForm(interviewers)
	m.tracker.Transition(mode.Mode{Kind: KindEdit}, false)
	return m.form.Init()
}

func (m *Model) buildForm(interviewers []models.Interviewer) {
	options := make([]huh.Option[int], 0, len(interviewers))
	for _, iv := range interviewers {
		options = append(options, huh.NewOption(iv.Name, iv.ID))
	}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Student Name").
			Placeholder("Enter Student Name").
			Value(&m.input.Student),
		huh.NewSelect[int]().
			Title("Interviewer").
			Options(options...).
			Value(&m.input.InterviewerID),
	))
}

// CancelForm abandons the open form and returns to the previous mode.
func (m *Model) CancelForm() {
	if !m.tracker.Is(KindCreate) && !m.tracker.Is(KindEdit) {
		return
	}
	m.form = nil
	m.tracker.Back()
}

// ValidationFailed shows a local validation message. The typed input is
// kept; closing the error lands back on the form mode and Reopen rebuilds
// the form around it.
func (m *Model) ValidationFailed(message string) {
	m.form = nil
	m.tracker.Transition(mode.Mode{Kind: KindErrorValidate, DisplayText: message}, false)
}

// UpdateForm routes a message to the open form.
func (m *Model) UpdateForm(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

// FormState reports the open form's lifecycle state.
func (m *Model) FormState() huh.FormState {
	if m.form == nil {
		return huh.StateNormal
	}
	return m.form.State
}

// UpdateSpinner advances the in-flight spinner.
func (m *Model) UpdateSpinner(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// InFlight reports whether a remote call for this slot is unresolved. The
// widget refuses to start another operation until it settles.
func (m *Model) InFlight() bool {
	k := m.tracker.Mode().Kind
	return k == KindSaving || k == KindCanceling
}

// BeginSaving enters the in-flight save mode. Only valid from CREATE or
// EDIT, so a slot can never have two saves in flight.
func (m *Model) BeginSaving() {
	if !m.tracker.Is(KindCreate) && !m.tracker.Is(KindEdit) {
		return
	}
	m.form = nil
	m.tracker.Transition(mode.Mode{Kind: KindSaving, DisplayText: "Saving"}, false)
}

// CompleteSave resolves an in-flight save. On success the widget shows the
// booked interview; on failure an error mode replaces SAVING, so closing the
// error returns to the form mode that preceded it.
func (m *Model) CompleteSave(err error) {
	if !m.tracker.Is(KindSaving) {
		return
	}
	if err != nil {
		m.tracker.Transition(mode.Mode{Kind: KindErrorSave, DisplayText: "Could not save appointment."}, true)
		return
	}
	m.tracker.Transition(mode.Mode{Kind: KindShow}, true)
}

// RequestDelete asks for confirmation before cancelling. Only valid from
// SHOW.
func (m *Model) RequestDelete() {
	if !m.tracker.Is(KindShow) {
		return
	}
	m.tracker.Transition(mode.Mode{Kind: KindConfirm, DisplayText: "Delete this appointment?"}, false)
}

// DismissConfirm backs out of the confirmation prompt.
func (m *Model) DismissConfirm() {
	if m.tracker.Is(KindConfirm) {
		m.tracker.Back()
	}
}

// BeginCanceling confirms the deletion and enters the in-flight mode,
// replacing the confirmation prompt so an error backs out to SHOW.
func (m *Model) BeginCanceling() {
	if !m.tracker.Is(KindConfirm) {
		return
	}
	m.tracker.Transition(mode.Mode{Kind: KindCanceling, DisplayText: "Canceling"}, true)
}

// CompleteCancel resolves an in-flight cancellation.
func (m *Model) CompleteCancel(err error) {
	if !m.tracker.Is(KindCanceling) {
		return
	}
	if err != nil {
		m.tracker.Transition(mode.Mode{Kind: KindErrorDelete, DisplayText: "Could not cancel appointment."}, true)
		return
	}
	m.tracker.Transition(mode.Mode{Kind: KindEmpty}, true)
}

// CloseError dismisses an error mode, returning to whatever preceded the
// failed operation. After a validation error the form must be rebuilt by the
// caller since input is preserved but the form was replaced.
func (m *Model) CloseError() {
	k := m.tracker.Mode().Kind
	if k != KindErrorSave && k != KindErrorDelete && k != KindErrorValidate {
		return
	}
	m.tracker.Back()
}

// Reopen rebuilds the form after an error dismissal landed back on CREATE or
// EDIT, preserving the typed input.
func (m *Model) Reopen(interviewers []models.Interviewer) tea.Cmd {
	if !m.tracker.Is(KindCreate) && !m.tracker.Is(KindEdit) {
		return nil
	}
	if m.form != nil {
		return nil
	}
	m.buildForm(interviewers)
	return m.form.Init()
}

// View renders the slot's one-line summary for the schedule list.
func (m *Model) View(focused bool) string {
	cursor := "  "
	if focused {
		cursor = "> "
	}
	t := timeStyle.Render(m.Appt.Time)

	switch m.tracker.Mode().Kind {
	case KindShow, KindEdit:
		student, interviewer := m.displayNames()
		return fmt.Sprintf("%s%s %s %s", cursor, t, studentStyle.Render(student), interviewerStyle.Render("with "+interviewer))
	case KindEmpty, KindCreate:
		return fmt.Sprintf("%s%s %s", cursor, t, freeStyle.Render("Available"))
	case KindSaving, KindCanceling:
		return fmt.Sprintf("%s%s %s %s", cursor, t, m.spinner.View(), m.tracker.Mode().DisplayText)
	case KindConfirm:
		return fmt.Sprintf("%s%s %s", cursor, t, confirmStyle.Render(m.tracker.Mode().DisplayText+" [y/n]"))
	case KindErrorSave, KindErrorDelete, KindErrorValidate:
		return fmt.Sprintf("%s%s %s", cursor, t, errorStyle.Render(m.tracker.Mode().DisplayText+" (esc to go back)"))
	}
	return fmt.Sprintf("%s%s", cursor, t)
}

func (m *Model) displayNames() (student, interviewer string) {
	if m.Resolved != nil {
		return m.Resolved.Student, m.Resolved.Interviewer.Name
	}
	if m.Appt.Interview != nil {
		return m.Appt.Interview.Student, fmt.Sprintf("interviewer %d", m.Appt.Interview.InterviewerID)
	}
	return "", ""
}
