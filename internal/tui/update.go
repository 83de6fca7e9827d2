package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mpriestly/slotbook/internal/logger"
	"github.com/mpriestly/slotbook/internal/models"
	"github.com/mpriestly/slotbook/internal/tui/components/appointment"
	"github.com/mpriestly/slotbook/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case bookResultMsg:
		if w, ok := m.widgets[msg.id]; ok {
			w.CompleteSave(msg.err)
		}
		if msg.err != nil {
			logger.Warn("booking failed", "appointment", msg.id, "error", msg.err)
		}
		m.refresh()
		return m, nil

	case cancelResultMsg:
		if w, ok := m.widgets[msg.id]; ok {
			w.CompleteCancel(msg.err)
		}
		if msg.err != nil {
			logger.Warn("cancellation failed", "appointment", msg.id, "error", msg.err)
		}
		m.refresh()
		return m, nil

	case reloadResultMsg:
		if msg.err != nil {
			m.loadErr = "Reload failed. Showing the last loaded schedule."
			logger.Warn("reload failed", "error", msg.err)
		} else {
			m.loadErr = ""
			m.refresh()
		}
		return m, nil

	case pushMsg:
		if err := m.store.ApplyPushedUpdate(msg.ID, msg.Interview); err != nil {
			logger.Warn("pushed update rejected", "appointment", msg.ID, "error", err)
		}
		m.refresh()
		return m, waitForPush(m.stream)

	case pushClosedMsg:
		m.store.SetLiveSync(false)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		for _, w := range m.widgets {
			if w.InFlight() {
				if cmd := w.UpdateSpinner(msg); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		}
		return m, tea.Batch(cmds...)
	}

	// Anything else belongs to an open form, e.g. cursor blinks.
	if w := m.focusedWidget(); w != nil && w.Form() != nil {
		return m, w.UpdateForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	w := m.focusedWidget()
	if w != nil {
		switch w.Mode().Kind {
		case appointment.KindCreate, appointment.KindEdit:
			return m.handleFormKey(w, msg)

		case appointment.KindConfirm:
			switch msg.String() {
			case "y", "Y":
				w.BeginCanceling()
				return m, tea.Batch(cancelCmd(m.store, w.Appt.ID), w.Spinner().Tick)
			case "n", "N", "esc":
				w.DismissConfirm()
			}
			return m, nil

		case appointment.KindErrorSave, appointment.KindErrorDelete, appointment.KindErrorValidate:
			if key.Matches(msg, m.keys.Back) || msg.String() == "enter" {
				w.CloseError()
				return m, w.Reopen(m.formChoices())
			}
			return m, nil

		case appointment.KindSaving, appointment.KindCanceling:
			// Keys are ignored until the remote call settles.
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.selectDay(m.dayList.Prev())
	case key.Matches(msg, m.keys.Right):
		m.selectDay(m.dayList.Next())
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.dayAppointments())-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Enter):
		if w != nil {
			return m, w.StartCreate(m.formChoices())
		}
	case key.Matches(msg, m.keys.Edit):
		if w != nil {
			return m, w.StartEdit(m.formChoices())
		}
	case key.Matches(msg, m.keys.Delete):
		if w != nil {
			w.RequestDelete()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, reloadCmd(m.store)
	}
	return m, nil
}

// handleFormKey feeds a key to the open booking form and reacts to the form
// finishing. Submission is validated locally first; only a clean interview is
// sent to the API.
func (m Model) handleFormKey(w *appointment.Model, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		w.CancelForm()
		return m, nil
	}

	cmd := w.UpdateForm(msg)
	switch w.FormState() {
	case huh.StateCompleted:
		input := w.Input()
		interview := models.Interview{Student: input.Student, InterviewerID: input.InterviewerID}
		if err := validation.CheckInterview(interview, m.state.Interviewers); err != nil {
			w.ValidationFailed(err.Error())
			return m, nil
		}
		w.BeginSaving()
		return m, tea.Batch(bookCmd(m.store, w.Appt.ID, interview), w.Spinner().Tick)
	case huh.StateAborted:
		w.CancelForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) selectDay(name string) {
	m.store.SelectDay(name)
	m.selected = 0
	m.refresh()
}
