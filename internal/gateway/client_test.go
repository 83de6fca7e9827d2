package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mpriestly/slotbook/internal/models"
)

func TestGetDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/days" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Monday","spots":1,"appointments":[1,2],"interviewers":[3]}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	days, err := client.GetDays(context.Background())
	if err != nil {
		t.Fatalf("GetDays: %v", err)
	}
	if len(days) != 1 || days[0].Name != "Monday" || days[0].Spots != 1 {
		t.Errorf("unexpected days: %+v", days)
	}
	if len(days[0].AppointmentIDs) != 2 {
		t.Errorf("AppointmentIDs = %v, want 2 ids", days[0].AppointmentIDs)
	}
}

func TestGetAppointments_IntKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"1":{"id":1,"time":"12pm","interview":null},"2":{"id":2,"time":"1pm","interview":{"student":"Archie Cohen","interviewer":3}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	appointments, err := client.GetAppointments(context.Background())
	if err != nil {
		t.Fatalf("GetAppointments: %v", err)
	}
	if appointments[1].Interview != nil {
		t.Error("appointment 1 should be free")
	}
	if appointments[2].Interview == nil || appointments[2].Interview.Student != "Archie Cohen" {
		t.Errorf("appointment 2 interview = %+v", appointments[2].Interview)
	}
}

func TestPutAppointment(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErr    bool
		wantStatus int
	}{
		{name: "no content confirms save", status: http.StatusNoContent},
		{name: "ok is a protocol failure", status: http.StatusOK, wantErr: true, wantStatus: http.StatusOK},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("method = %q, want PUT", r.Method)
				}
				var body struct {
					Interview models.Interview `json:"interview"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("decode request body: %v", err)
				}
				if body.Interview.Student != "Lydia Miller-Jones" {
					t.Errorf("student = %q", body.Interview.Student)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "")
			err := client.PutAppointment(context.Background(), 1, models.Interview{Student: "Lydia Miller-Jones", InterviewerID: 3})
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("PutAppointment: %v", err)
				}
				return
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if statusErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", statusErr.Status, tt.wantStatus)
			}
		})
	}
}

func TestDeleteAppointment(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if err := client.DeleteAppointment(context.Background(), 7); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	if gotPath != "/api/appointments/7" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sekrit")
	if _, err := client.GetDays(context.Background()); err != nil {
		t.Fatalf("GetDays: %v", err)
	}
}

func TestPushStream(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"PING"}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"SET_INTERVIEW","id":2,"interview":{"student":"Archie Cohen","interviewer":3}}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"SET_INTERVIEW","id":2,"interview":null}`))
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	stream, err := DialPush(wsURL)
	if err != nil {
		t.Fatalf("DialPush: %v", err)
	}
	defer stream.Close()

	// The PING message is filtered; only SET_INTERVIEW messages come through.
	msg := receivePush(t, stream)
	if msg.ID != 2 || msg.Interview == nil || msg.Interview.Student != "Archie Cohen" {
		t.Errorf("first message = %+v", msg)
	}

	msg = receivePush(t, stream)
	if msg.ID != 2 || msg.Interview != nil {
		t.Errorf("second message = %+v", msg)
	}
}

func receivePush(t *testing.T, stream *PushStream) PushMessage {
	t.Helper()
	select {
	case msg, ok := <-stream.Messages():
		if !ok {
			t.Fatal("push stream closed early")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for push message")
	}
	return PushMessage{}
}
