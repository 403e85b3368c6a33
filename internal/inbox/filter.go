package inbox

import (
	"fmt"
	"strings"

	apperrors "github.com/welldanyogia/inboxzero/internal/errors"
	"github.com/welldanyogia/inboxzero/internal/models"
)

// View selects the container an email lives in
type View string

// Container views
const (
	ViewInbox    View = "inbox"
	ViewArchived View = "archived"
)

// Status refines a view by read state
type Status string

// Status filters
const (
	StatusAll    Status = "all"
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// ParseView parses a view name. The empty string selects the inbox.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewInbox:
		return ViewInbox, nil
	case ViewArchived:
		return ViewArchived, nil
	default:
		return "", apperrors.Validation(fmt.Sprintf("unknown view %q: expected inbox or archived", s))
	}
}

// ParseStatus parses a status filter name. The empty string selects all.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusUnread:
		return StatusUnread, nil
	case StatusRead:
		return StatusRead, nil
	default:
		return "", apperrors.Validation(fmt.Sprintf("unknown status %q: expected all, unread or read", s))
	}
}

// Filter is the composed view/status/search selection over an email list
type Filter struct {
	View   View
	Status Status
	Query  string
}

// DefaultFilter shows every email in the inbox
func DefaultFilter() Filter {
	return Filter{View: ViewInbox, Status: StatusAll}
}

// Apply returns the emails matching the view, then the status, then the query.
// The input slice is never modified and the result is never nil.
func (f Filter) Apply(emails []models.Email) []models.Email {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Email, 0, len(emails))
	for _, e := range emails {
		if !f.inView(e) || !f.hasStatus(e) {
			continue
		}
		if query != "" && !matches(e, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (f Filter) inView(e models.Email) bool {
	if f.View == ViewArchived {
		return e.IsArchived
	}
	return !e.IsArchived
}

func (f Filter) hasStatus(e models.Email) bool {
	switch f.Status {
	case StatusUnread:
		return !e.IsRead
	case StatusRead:
		return e.IsRead
	default:
		return true
	}
}

// matches expects query to be lower-cased already
func matches(e models.Email, query string) bool {
	return strings.Contains(strings.ToLower(e.Subject), query) ||
		strings.Contains(strings.ToLower(e.Body), query) ||
		strings.Contains(strings.ToLower(e.Sender), query)
}

// StatusCounts are the per-status totals shown in the filter bar
type StatusCounts struct {
	All    int `json:"all"`
	Unread int `json:"unread"`
	Read   int `json:"read"`
}

// CountStatuses counts emails by read state
func CountStatuses(emails []models.Email) StatusCounts {
	c := StatusCounts{All: len(emails)}
	for _, e := range emails {
		if e.IsRead {
			c.Read++
		} else {
			c.Unread++
		}
	}
	return c
}

// Count returns the count for one status
func (c StatusCounts) Count(s Status) int {
	switch s {
	case StatusUnread:
		return c.Unread
	case StatusRead:
		return c.Read
	default:
		return c.All
	}
}

// Replace returns a copy of emails with the entry sharing updated's ID swapped for updated
func Replace(emails []models.Email, updated models.Email) []models.Email {
	out := make([]models.Email, len(emails))
	copy(out, emails)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}
	return out
}
