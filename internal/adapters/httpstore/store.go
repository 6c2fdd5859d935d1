// Package httpstore talks to the remote ticket store over its JSON API
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"labelboard/internal/application"
	"labelboard/internal/domain"
	"labelboard/internal/ports"
)

// RequestIDHeader carries a fresh id on every request
const RequestIDHeader = "X-Request-ID"

// maxBody bounds how much of a response is read
const maxBody = 16 << 20

// Store implements ports.TicketStore against the ticket service
type Store struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

var _ ports.TicketStore = (*Store)(nil)

// New creates a Store for baseURL. A zero timeout means no client timeout.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the store root the client talks to
func (s *Store) BaseURL() string {
	return s.baseURL
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Colors  map[string]string `json:"colors"`
}

type ticketJSON struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Label   *string `json:"label"`
}

func (t ticketJSON) toDomain() domain.Ticket {
	ticket := domain.Ticket{ID: t.ID, Title: t.Title, Content: t.Content}
	if t.Label != nil {
		ticket.Label = strings.TrimSpace(*t.Label)
	}
	return ticket
}

// FetchTickets implements ports.TicketStore
func (s *Store) FetchTickets(ctx context.Context) ([]domain.Ticket, error) {
	const op = "fetch tickets"
	env, err := s.do(ctx, op, http.MethodGet, "/api/tickets", "", nil)
	if err != nil {
		return nil, err
	}
	var raw []ticketJSON
	if err := decodeData(op, env, &raw); err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0, len(raw))
	for _, t := range raw {
		tickets = append(tickets, t.toDomain())
	}
	return tickets, nil
}

// FetchLabels implements ports.TicketStore
func (s *Store) FetchLabels(ctx context.Context) ([]string, domain.ColorTable, error) {
	const op = "fetch labels"
	env, err := s.do(ctx, op, http.MethodGet, "/api/labels", "", nil)
	if err != nil {
		return nil, nil, err
	}
	var names []string
	if err := decodeData(op, env, &names); err != nil {
		return nil, nil, err
	}
	colors := make(domain.ColorTable, len(env.Colors))
	for name, color := range env.Colors {
		colors[name] = color
	}
	return names, colors, nil
}

// NextID implements ports.TicketStore
func (s *Store) NextID(ctx context.Context) (int, error) {
	const op = "next id"
	env, err := s.do(ctx, op, http.MethodGet, "/api/next-id", "", nil)
	if err != nil {
		return 0, err
	}
	var id int
	if err := decodeData(op, env, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateTicketLabel implements ports.TicketStore
func (s *Store) UpdateTicketLabel(ctx context.Context, id int, label string) (domain.Ticket, error) {
	const op = "update ticket label"
	body, err := json.Marshal(map[string]string{"label": label})
	if err != nil {
		return domain.Ticket{}, err
	}
	path := fmt.Sprintf("/api/tickets/%d/label", id)
	env, err := s.do(ctx, op, http.MethodPut, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return domain.Ticket{}, err
	}
	var t ticketJSON
	if err := decodeData(op, env, &t); err != nil {
		return domain.Ticket{}, err
	}
	return t.toDomain(), nil
}

// CreateLabel implements ports.TicketStore. The store answers success for a
// name it already has.
func (s *Store) CreateLabel(ctx context.Context, name string) error {
	const op = "create label"
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return err
	}
	_, err = s.do(ctx, op, http.MethodPost, "/api/labels", "application/json", bytes.NewReader(body))
	return err
}

// CreateTicket implements ports.TicketStore
func (s *Store) CreateTicket(ctx context.Context, title, content, label string) (domain.Ticket, error) {
	const op = "create ticket"
	body, err := json.Marshal(map[string]string{"title": title, "content": content, "label": label})
	if err != nil {
		return domain.Ticket{}, err
	}
	env, err := s.do(ctx, op, http.MethodPost, "/api/tickets", "application/json", bytes.NewReader(body))
	if err != nil {
		return domain.Ticket{}, err
	}
	var t ticketJSON
	if err := decodeData(op, env, &t); err != nil {
		return domain.Ticket{}, err
	}
	return t.toDomain(), nil
}

// Import implements ports.TicketStore. The file goes up as the multipart
// field "file".
func (s *Store) Import(ctx context.Context, filename string, r io.Reader) (string, error) {
	const op = "import"
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	env, err := s.do(ctx, op, http.MethodPost, "/api/tickets/import", mw.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// do sends one request and maps every failure onto a RemoteError
func (s *Store) do(ctx context.Context, op, method, path, contentType string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, &application.RemoteError{Op: op, Kind: application.ErrRemoteUnavailable, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("store unreachable", "op", op, "request_id", reqID, "err", err)
		return nil, &application.RemoteError{Op: op, Kind: application.ErrRemoteUnavailable, Err: err}
	}
	defer resp.Body.Close()
	s.logger.Debug("store call", "op", op, "status", resp.StatusCode, "request_id", reqID, "took", time.Since(start))

	env, decodeErr := decodeEnvelope(resp)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	switch {
	case decodeErr != nil && ok:
		return nil, &application.RemoteError{Op: op, Kind: application.ErrInvalidResponse, Status: resp.StatusCode, Err: decodeErr}
	case decodeErr != nil:
		return nil, &application.RemoteError{Op: op, Kind: application.ErrInvalidResponse, Status: resp.StatusCode}
	case !env.Success && env.Message != "":
		return nil, &application.RemoteError{Op: op, Kind: application.ErrApplicationRejected, Status: resp.StatusCode, Message: env.Message}
	case !ok:
		return nil, &application.RemoteError{Op: op, Kind: application.ErrInvalidResponse, Status: resp.StatusCode}
	case !env.Success:
		return nil, &application.RemoteError{Op: op, Kind: application.ErrApplicationRejected, Status: resp.StatusCode, Message: "request rejected"}
	}
	return env, nil
}

var errNotJSON = errors.New("response is not JSON")

func decodeEnvelope(resp *http.Response) (*envelope, error) {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil, errNotJSON
	}
	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&env); err != nil {
		return nil, fmt.Errorf("malformed body: %w", err)
	}
	return &env, nil
}

func decodeData(op string, env *envelope, v any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &application.RemoteError{Op: op, Kind: application.ErrInvalidResponse, Err: errors.New("missing data")}
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return &application.RemoteError{Op: op, Kind: application.ErrInvalidResponse, Err: err}
	}
	return nil
}
