// Package testutil provides in-memory fakes for package tests
package testutil

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"labelboard/internal/application"
	"labelboard/internal/domain"
	"labelboard/internal/ports"
)

// FirstTicketID is the id handed out by an empty store
const FirstTicketID = 1001

// Store is an in-memory ports.TicketStore that behaves like the remote
// ticket service. Set Fail to make every call return that error.
type Store struct {
	mu      sync.Mutex
	Tickets []domain.Ticket
	Labels  []string
	Colors  domain.ColorTable
	Fail    error
	Calls   []string
}

var _ ports.TicketStore = (*Store)(nil)

// NewStore creates a store seeded with the given labels and tickets
func NewStore(labels []string, tickets ...domain.Ticket) *Store {
	return &Store{
		Labels:  slices.Clone(labels),
		Tickets: slices.Clone(tickets),
		Colors:  make(domain.ColorTable),
	}
}

func (s *Store) record(op string) error {
	s.Calls = append(s.Calls, op)
	return s.Fail
}

func rejected(op, msg string) error {
	return &application.RemoteError{Op: op, Kind: application.ErrApplicationRejected, Message: msg}
}

// FetchTickets implements ports.TicketStore
func (s *Store) FetchTickets(ctx context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("FetchTickets"); err != nil {
		return nil, err
	}
	return slices.Clone(s.Tickets), nil
}

// FetchLabels implements ports.TicketStore
func (s *Store) FetchLabels(ctx context.Context) ([]string, domain.ColorTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("FetchLabels"); err != nil {
		return nil, nil, err
	}
	return slices.Clone(s.Labels), s.Colors.Clone(), nil
}

// NextID implements ports.TicketStore
func (s *Store) NextID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("NextID"); err != nil {
		return 0, err
	}
	return s.nextID(), nil
}

func (s *Store) nextID() int {
	if len(s.Tickets) == 0 {
		return FirstTicketID
	}
	highest := s.Tickets[0].ID
	for _, t := range s.Tickets[1:] {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

func (s *Store) learn(label string) {
	if label != "" && !slices.Contains(s.Labels, label) {
		s.Labels = append(s.Labels, label)
	}
}

// UpdateTicketLabel implements ports.TicketStore
func (s *Store) UpdateTicketLabel(ctx context.Context, id int, label string) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("UpdateTicketLabel"); err != nil {
		return domain.Ticket{}, err
	}
	for i := range s.Tickets {
		if s.Tickets[i].ID == id {
			s.Tickets[i].Label = strings.TrimSpace(label)
			s.learn(s.Tickets[i].Label)
			return s.Tickets[i], nil
		}
	}
	return domain.Ticket{}, rejected("update ticket label", "ticket does not exist")
}

// CreateLabel implements ports.TicketStore
func (s *Store) CreateLabel(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("CreateLabel"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return rejected("create label", "label name must not be empty")
	}
	s.learn(name)
	return nil
}

// CreateTicket implements ports.TicketStore
func (s *Store) CreateTicket(ctx context.Context, title, content, label string) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("CreateTicket"); err != nil {
		return domain.Ticket{}, err
	}
	t := domain.Ticket{
		ID:      s.nextID(),
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
		Label:   strings.TrimSpace(label),
	}
	if t.Title == "" || t.Content == "" {
		return domain.Ticket{}, rejected("create ticket", "title and content must not be empty")
	}
	s.Tickets = append(s.Tickets, t)
	s.learn(t.Label)
	return t, nil
}

// Import implements ports.TicketStore. It accepts id,title,content,label rows.
func (s *Store) Import(ctx context.Context, filename string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("Import"); err != nil {
		return "", err
	}

	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return "", rejected("import", fmt.Sprintf("import failed: %v", err))
	}
	if len(rows) < 2 {
		return "", rejected("import", "no tickets imported")
	}

	header := make(map[string]int)
	for i, col := range rows[0] {
		header[strings.TrimSpace(col)] = i
	}
	field := func(row []string, name string) string {
		if i, ok := header[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	added := 0
	for _, row := range rows[1:] {
		title, content := field(row, "title"), field(row, "content")
		if title == "" || content == "" {
			continue
		}
		id, err := strconv.Atoi(field(row, "id"))
		if err != nil || id <= 0 || s.hasID(id) {
			id = s.nextID()
		}
		label := field(row, "label")
		s.learn(label)
		s.Tickets = append(s.Tickets, domain.Ticket{ID: id, Title: title, Content: content, Label: label})
		added++
	}
	if added == 0 {
		return "", rejected("import", "no tickets imported")
	}
	return fmt.Sprintf("imported %d tickets", added), nil
}

func (s *Store) hasID(id int) bool {
	for _, t := range s.Tickets {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Called reports whether op was invoked
func (s *Store) Called(op string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.Calls, op)
}
