package httpstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"labelboard/internal/application"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func newTestStore(t *testing.T, h http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 0, nil)
}

func TestFetchTickets(t *testing.T) {
	var gotID string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
		if r.Method != http.MethodGet || r.URL.Path != "/api/tickets" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": 1, "title": "Refund", "content": "x", "label": "billing"},
				{"id": 2, "title": "Login", "content": "y", "label": nil},
				{"id": 3, "title": "Crash", "content": "z", "label": ""},
			},
		})
	})

	tickets, err := store.FetchTickets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(tickets))
	}
	if tickets[0].Label != "billing" || tickets[1].Label != "" || tickets[2].IsLabeled() {
		t.Errorf("unexpected labels: %+v", tickets)
	}
	if gotID == "" {
		t.Error("expected request id header")
	}
}

func TestFetchLabels(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []string{"billing", "bug"},
			"colors":  map[string]string{"bug": "#f5222d"},
		})
	})

	names, colors, err := store.FetchLabels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "billing" {
		t.Errorf("unexpected names %v", names)
	}
	if colors["bug"] != "#f5222d" {
		t.Errorf("expected seeded bug color, got %v", colors)
	}
}

func TestUpdateTicketLabel(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/tickets/7/label" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"id": 7, "title": "t", "content": "c", "label": body["label"]},
		})
	})

	ticket, err := store.UpdateTicketLabel(context.Background(), 7, "bug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.ID != 7 || ticket.Label != "bug" {
		t.Errorf("unexpected ticket %+v", ticket)
	}
}

func TestImport(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected multipart file: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "no file"})
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "tickets.csv" || !strings.HasPrefix(string(data), "id,title") {
			t.Errorf("unexpected upload %s %q", header.Filename, data)
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "imported 2 tickets"})
	})

	msg, err := store.Import(context.Background(), "tickets.csv", strings.NewReader("id,title,content,label\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "imported 2 tickets" {
		t.Errorf("unexpected summary %q", msg)
	}
}

func TestNextID(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": 1001})
	})

	id, err := store.NextID(context.Background())
	if err != nil || id != 1001 {
		t.Errorf("expected 1001, got %d (%v)", id, err)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
		message string
	}{
		{
			name: "rejected in 2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "label name must not be empty"})
			},
			want:    application.ErrApplicationRejected,
			message: "label name must not be empty",
		},
		{
			name: "rejected with 404 body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "ticket does not exist"})
			},
			want:    application.ErrApplicationRejected,
			message: "ticket does not exist",
		},
		{
			name: "server error without json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: application.ErrInvalidResponse,
		},
		{
			name: "html instead of json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				io.WriteString(w, "<html></html>")
			},
			want: application.ErrInvalidResponse,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				io.WriteString(w, `{"success": tru`)
			},
			want: application.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, tt.handler)
			err := store.CreateLabel(context.Background(), "x")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected message %q in %q", tt.message, err.Error())
			}
		})
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, 0, nil).FetchTickets(context.Background())
	if !errors.Is(err, application.ErrRemoteUnavailable) {
		t.Errorf("expected ErrRemoteUnavailable, got %v", err)
	}
	if !application.IsDegradable(err) {
		t.Error("unreachable store should be degradable")
	}
}
