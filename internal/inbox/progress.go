package inbox

import "github.com/welldanyogia/inboxzero/internal/models"

// Progress summarises how close a user is to Inbox Zero
type Progress struct {
	Progress        float64 `json:"progress"`
	TotalEmails     int     `json:"totalEmails"`
	ProcessedEmails int     `json:"processedEmails"`
	ArchivedCount   int     `json:"archivedCount"`
	ReadCount       int     `json:"readCount"`
	UnreadCount     int     `json:"unreadCount"`
	InboxCount      int     `json:"inboxCount"`
	IsInboxZero     bool    `json:"isInboxZero"`
}

// ComputeProgress derives Progress from the full email list (inbox and archived).
// An email that is read, archived or both counts once as processed.
// An empty list is vacuously complete.
func ComputeProgress(emails []models.Email) Progress {
	p := Progress{TotalEmails: len(emails)}
	unreadInInbox := 0

	for _, e := range emails {
		if e.IsProcessed() {
			p.ProcessedEmails++
		}
		if e.IsArchived {
			p.ArchivedCount++
		} else {
			p.InboxCount++
			if !e.IsRead {
				unreadInInbox++
			}
		}
		if e.IsRead {
			p.ReadCount++
		} else {
			p.UnreadCount++
		}
	}

	p.IsInboxZero = unreadInInbox == 0
	if p.TotalEmails == 0 {
		p.Progress = 100
		return p
	}
	p.Progress = clamp(float64(p.ProcessedEmails) / float64(p.TotalEmails) * 100)
	return p
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
