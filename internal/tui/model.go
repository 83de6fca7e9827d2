package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpriestly/slotbook/internal/gateway"
	"github.com/mpriestly/slotbook/internal/models"
	"github.com/mpriestly/slotbook/internal/selectors"
	"github.com/mpriestly/slotbook/internal/store"
	"github.com/mpriestly/slotbook/internal/tui/components/appointment"
	"github.com/mpriestly/slotbook/internal/tui/components/daylist"
)

// Messages produced by asynchronous work.
type (
	// bookResultMsg is the resolution of a booking or edit call.
	bookResultMsg struct {
		id  int
		err error
	}

	// cancelResultMsg is the resolution of a cancellation call.
	cancelResultMsg struct {
		id  int
		err error
	}

	// reloadResultMsg is the resolution of a full schedule reload.
	reloadResultMsg struct {
		err error
	}

	// pushMsg is one live-feed update.
	pushMsg gateway.PushMessage

	// pushClosedMsg means the live feed ended; the client falls back to
	// local-only updates.
	pushClosedMsg struct{}
)

type Model struct {
	store  *store.Store
	stream *gateway.PushStream

	state    models.State
	keys     KeyMap
	help     help.Model
	dayList  daylist.Model
	widgets  map[int]*appointment.Model
	selected int
	width    int
	height   int
	quitting bool
	loadErr  string
}

func NewModel(s *store.Store, stream *gateway.PushStream) Model {
	state := s.Snapshot()
	m := Model{
		store:   s,
		stream:  stream,
		state:   state,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		dayList: daylist.New(state.Days, state.Day),
		widgets: map[int]*appointment.Model{},
	}
	m.syncWidgets()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.stream != nil {
		return waitForPush(m.stream)
	}
	return nil
}

// refresh re-snapshots the store and pushes fresh data into every widget.
func (m *Model) refresh() {
	m.state = m.store.Snapshot()
	m.dayList.SetDays(m.state.Days, m.state.Day)
	m.syncWidgets()
	m.clampSelection()
}

func (m *Model) syncWidgets() {
	for id, appt := range m.state.Appointments {
		resolved := selectors.ResolveInterview(m.state, appt.Interview)
		if w, ok := m.widgets[id]; ok {
			w.SyncData(appt, resolved)
		} else {
			m.widgets[id] = appointment.New(appt, resolved)
		}
	}
}

func (m *Model) clampSelection() {
	n := len(m.dayAppointments())
	if n == 0 {
		m.selected = 0
	} else if m.selected >= n {
		m.selected = n - 1
	}
}

// dayAppointments projects the selected day's slots.
func (m *Model) dayAppointments() []models.Appointment {
	return selectors.AppointmentsForDay(m.state, m.state.Day)
}

// focusedWidget returns the widget for the highlighted slot, or nil when the
// day has no slots.
func (m *Model) focusedWidget() *appointment.Model {
	appointments := m.dayAppointments()
	if len(appointments) == 0 || m.selected >= len(appointments) {
		return nil
	}
	return m.widgets[appointments[m.selected].ID]
}

// formChoices is the interviewer roster offered by the booking form: the
// day's assigned interviewers, resolved to full records.
func (m *Model) formChoices() []models.Interviewer {
	day := m.state.DayByName(m.state.Day)
	if day == nil {
		return nil
	}
	choices := make([]models.Interviewer, 0, len(day.InterviewerIDs))
	for _, id := range day.InterviewerIDs {
		if iv, ok := m.state.Interviewers[id]; ok {
			choices = append(choices, iv)
		}
	}
	return choices
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Delete, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down},
		{m.keys.Enter, m.keys.Edit, m.keys.Delete, m.keys.Back},
		{m.keys.Refresh, m.keys.Help, m.keys.Quit},
	}
}

func bookCmd(s *store.Store, id int, interview models.Interview) tea.Cmd {
	return func() tea.Msg {
		err := s.BookInterview(context.Background(), id, interview)
		return bookResultMsg{id: id, err: err}
	}
}

func cancelCmd(s *store.Store, id int) tea.Cmd {
	return func() tea.Msg {
		err := s.CancelInterview(context.Background(), id)
		return cancelResultMsg{id: id, err: err}
	}
}

func reloadCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		return reloadResultMsg{err: s.LoadInitial(context.Background())}
	}
}

func waitForPush(stream *gateway.PushStream) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-stream.Messages()
		if !ok {
			return pushClosedMsg{}
		}
		return pushMsg(msg)
	}
}
