package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
)

const (
	defaultWidth     = 80
	progressBarWidth = 30
	timeLayout       = "2006-01-02 15:04"
)

// ANSI escapes
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiCyan   = "\033[36m"
)

// Badge labels for the four read/archived combinations
const (
	BadgeNew            = "NEW"
	BadgeRead           = "READ"
	BadgeArchivedUnread = "ARCHIVED"
	BadgeArchivedRead   = "ARCHIVED·READ"
)

// Renderer writes the inbox screens as plain text, optionally coloured
type Renderer struct {
	w     io.Writer
	color bool
	width int
}

// NewRenderer creates a Renderer writing to w
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color, width: defaultWidth}
}

func (r *Renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

func (r *Renderer) line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *Renderer) rule() {
	r.line("%s", r.paint(ansiDim, strings.Repeat("─", r.width)))
}

// Header prints the page title with the user's name and the view totals
func (r *Renderer) Header(user *models.PublicUser, view inbox.View, emails []models.Email) {
	title := "Inbox"
	if view == inbox.ViewArchived {
		title = "Archived"
	}
	if user != nil && user.Name != "" {
		title += " - " + user.Name
	}

	inView := inbox.Filter{View: view, Status: inbox.StatusAll}.Apply(emails)
	counts := inbox.CountStatuses(inView)

	r.rule()
	r.line("%s", r.paint(ansiBold, title))
	if view == inbox.ViewArchived {
		r.line("%d archived emails", counts.All)
	} else {
		r.line("%d total emails, %d unread", counts.All, counts.Unread)
	}
	r.rule()
}

// Progress prints the progress bar with its message and tier
func (r *Renderer) Progress(p inbox.Progress) {
	filled := int(math.Round(p.Progress / 100 * progressBarWidth))
	filled = max(0, min(progressBarWidth, filled))

	tier := inbox.ProgressTier(p.Progress)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)

	r.line("Progress [%s] %.1f%% (%s)", r.paint(tierColor(tier), bar), p.Progress, tier)
	r.line("%s", inbox.ProgressMessage(p.Progress))
	r.line("%d of %d emails processed • %d read • %d archived",
		p.ProcessedEmails, p.TotalEmails, p.ReadCount, p.ArchivedCount)
}

func tierColor(t inbox.Tier) string {
	switch t {
	case inbox.TierComplete, inbox.TierHigh:
		return ansiGreen
	case inbox.TierMedium:
		return ansiYellow
	case inbox.TierLow:
		return ansiCyan
	default:
		return ansiRed
	}
}

// FilterSummary prints the "Showing N ..." line for the active filter
func (r *Renderer) FilterSummary(f inbox.Filter, counts inbox.StatusCounts) {
	r.line("%s", FilterSummaryText(f, counts))
}

// FilterSummaryText builds the filter summary line
func FilterSummaryText(f inbox.Filter, counts inbox.StatusCounts) string {
	var b strings.Builder
	n := counts.Count(f.Status)
	switch f.Status {
	case inbox.StatusUnread:
		fmt.Fprintf(&b, "Showing %d unread emails", n)
	case inbox.StatusRead:
		fmt.Fprintf(&b, "Showing %d read emails", n)
	default:
		fmt.Fprintf(&b, "Showing all %d emails", n)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		fmt.Fprintf(&b, " • Search: %q", q)
	}
	return b.String()
}

// Badge returns the label for an email's flag combination
func Badge(e models.Email) string {
	switch {
	case e.IsArchived && e.IsRead:
		return BadgeArchivedRead
	case e.IsArchived:
		return BadgeArchivedUnread
	case e.IsRead:
		return BadgeRead
	default:
		return BadgeNew
	}
}

func (r *Renderer) badge(e models.Email) string {
	label := "[" + Badge(e) + "]"
	switch {
	case e.IsArchived:
		return r.paint(ansiDim, label)
	case e.IsRead:
		return r.paint(ansiGreen, label)
	default:
		return r.paint(ansiBlue+ansiBold, label)
	}
}

// Emails prints one block per email, or the empty-state message for the view
func (r *Renderer) Emails(emails []models.Email, view inbox.View) {
	if len(emails) == 0 {
		if view == inbox.ViewArchived {
			r.line("No archived emails.")
		} else {
			r.line("🎉 Inbox Zero! No emails here.")
		}
		return
	}

	for _, e := range emails {
		subject := e.Subject
		if !e.IsRead {
			subject = r.paint(ansiBold, subject)
		}
		r.line("#%-5d %s %s", e.ID, r.badge(e), subject)
		r.line("       From: %s  %s", e.Sender, r.paint(ansiDim, e.CreatedAt.Local().Format(timeLayout)))
		if body := preview(e.Body, r.width-7); body != "" {
			r.line("       %s", body)
		}
	}
}

// preview collapses whitespace and truncates s to width display columns
func preview(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, "…")
}

// Banner prints an error line
func (r *Renderer) Banner(msg string) {
	r.line("%s", r.paint(ansiRed+ansiBold, "✖ "+msg))
}

// Info prints a plain status line
func (r *Renderer) Info(msg string) {
	r.line("%s", msg)
}

// Celebration prints the Inbox Zero panel
func (r *Renderer) Celebration() {
	r.rule()
	r.line("%s", r.paint(ansiGreen+ansiBold, "🎉 Inbox Zero Achieved!"))
	r.line("Congratulations! You've successfully cleared your inbox.")
	r.line("You're now at the zen state of email management!")
	r.line("🚀 ✨ 💯 🎯   (type 'dismiss' to close)")
	r.rule()
}

// Help lists the commands available in the current state
func (r *Renderer) Help(loggedIn bool) {
	if !loggedIn {
		r.line("Commands: signup, login, help, exit")
		return
	}
	r.line("Commands:")
	r.line("  inbox | archived           switch view")
	r.line("  filter all|unread|read     filter by read state")
	r.line("  search <text>              search subject, body and sender")
	r.line("  clear                      reset filter and search")
	r.line("  read <id> | archive <id>   update an email")
	r.line("  refresh | progress         reload from the server")
	r.line("  dismiss                    close the celebration")
	r.line("  logout | help | exit")
}
