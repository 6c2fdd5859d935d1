package views

import (
	"fmt"
	"strings"

	"labelboard/internal/adapters/tui/styles"
	"labelboard/internal/application"
)

// TicketList is a paged ticket list with a cursor that follows the selected
// ticket across reloads
type TicketList struct {
	tickets    []application.Ticket
	pageSize   int
	pageOffset int
	cursor     int
}

// NewTicketList creates a list showing pageSize rows per page
func NewTicketList(pageSize int) *TicketList {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &TicketList{pageSize: pageSize}
}

// SetTickets replaces the rows, keeping the cursor on the same ticket id
// when it is still present
func (l *TicketList) SetTickets(tickets []application.Ticket) {
	selected, hadSelection := l.Selected()
	l.tickets = tickets

	if hadSelection {
		for i, t := range tickets {
			if t.ID == selected.ID {
				l.cursor = i
				l.ensureCursorInPage()
				return
			}
		}
	}
	l.cursor = min(l.cursor, max(len(tickets)-1, 0))
	l.ensureCursorInPage()
}

// SetPageSize changes the rows per page
func (l *TicketList) SetPageSize(n int) {
	if n > 0 {
		l.pageSize = n
		l.ensureCursorInPage()
	}
}

// Len returns the number of rows
func (l *TicketList) Len() int {
	return len(l.tickets)
}

// Selected returns the ticket under the cursor
func (l *TicketList) Selected() (application.Ticket, bool) {
	if l.cursor < 0 || l.cursor >= len(l.tickets) {
		return application.Ticket{}, false
	}
	return l.tickets[l.cursor], true
}

// Select moves the cursor to the ticket with id
func (l *TicketList) Select(id int) bool {
	for i, t := range l.tickets {
		if t.ID == id {
			l.cursor = i
			l.ensureCursorInPage()
			return true
		}
	}
	return false
}

// CursorUp moves the cursor up by one
func (l *TicketList) CursorUp() bool {
	if l.cursor > 0 {
		l.cursor--
		l.ensureCursorInPage()
		return true
	}
	return false
}

// CursorDown moves the cursor down by one
func (l *TicketList) CursorDown() bool {
	if l.cursor < len(l.tickets)-1 {
		l.cursor++
		l.ensureCursorInPage()
		return true
	}
	return false
}

// NextPage moves to the first row of the next page
func (l *TicketList) NextPage() bool {
	if l.pageOffset+l.pageSize < len(l.tickets) {
		l.pageOffset += l.pageSize
		l.cursor = l.pageOffset
		return true
	}
	return false
}

// PrevPage moves to the first row of the previous page
func (l *TicketList) PrevPage() bool {
	if l.pageOffset > 0 {
		l.pageOffset = max(l.pageOffset-l.pageSize, 0)
		l.cursor = l.pageOffset
		return true
	}
	return false
}

// TotalPages returns the total number of pages
func (l *TicketList) TotalPages() int {
	if len(l.tickets) == 0 {
		return 1
	}
	return (len(l.tickets) + l.pageSize - 1) / l.pageSize
}

// CurrentPage returns the current page number (1-based)
func (l *TicketList) CurrentPage() int {
	return l.pageOffset/l.pageSize + 1
}

func (l *TicketList) ensureCursorInPage() {
	if l.cursor < l.pageOffset || l.cursor >= l.pageOffset+l.pageSize {
		l.pageOffset = (l.cursor / l.pageSize) * l.pageSize
	}
}

// Render draws the visible page. colorOf resolves label colors.
func (l *TicketList) Render(width int, colorOf func(string) string) string {
	if len(l.tickets) == 0 {
		return styles.MutedText.Render("No tickets yet. Press c to create one or i to import a CSV.")
	}

	titleWidth := max(width-24, 16)
	var b strings.Builder
	end := min(l.pageOffset+l.pageSize, len(l.tickets))
	for i := l.pageOffset; i < end; i++ {
		t := l.tickets[i]
		title := truncate(t.Title, titleWidth)
		line := fmt.Sprintf("#%-5d %-*s ", t.ID, titleWidth, title)
		if i == l.cursor {
			line = styles.RowSelected.Render(line)
		} else {
			line = styles.Row.Render(line)
		}
		b.WriteString(line + RenderBadge(t.Label, colorOf(t.Label)) + "\n")
	}
	if l.TotalPages() > 1 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d", l.CurrentPage(), l.TotalPages())))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
