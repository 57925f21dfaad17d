package views

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/bookmarks"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

const cardDescriptionLen = 160

// Card is one job in a list. Index is the 1-based position the user can
// refer to as #n.
type Card struct {
	Index int
	Job   models.Job
	State bookmarks.State
}

// newCard combines a view's copy of the job with the tracker's toggle
// state. The job copy decides the marker; pending and the last error come
// from the tracker.
func newCard(i int, j models.Job, feed BookmarkFeed) Card {
	st := feed.State(j.ID)
	st.Bookmarked = j.IsBookmarked
	return Card{Index: i, Job: j, State: st}
}

// Render writes the card as a short indented block.
//
//	#1 [*] Backend Engineer
//	   Acme | Addis Ababa, Remote
//	   Builds and runs the payments API...
//	   In Person | IT, Engineering
//	   Posted Jan 2, 2026 (3 days ago) | Deadline Feb 1, 2026 (3 weeks from now)
func (c Card) Render(w io.Writer, now time.Time) {
	j := &c.Job
	fmt.Fprintf(w, "#%d %s %s\n", c.Index, marker(c.State), j.Title)
	fmt.Fprintf(w, "   %s | %s\n", j.OrgName, location(j))
	if d := plainText(j.Description); d != "" {
		fmt.Fprintf(w, "   %s\n", truncate(d, cardDescriptionLen))
	}

	var tags []string
	if j.OpType != "" {
		tags = append(tags, j.OpType)
	}
	if len(j.Categories) > 0 {
		tags = append(tags, strings.Join(j.Categories, ", "))
	}
	if len(tags) > 0 {
		fmt.Fprintf(w, "   %s\n", strings.Join(tags, " | "))
	}

	footer := posted(j, now)
	if d, ok := when(j.Deadline, now); ok {
		footer += " | Deadline " + d
	}
	fmt.Fprintf(w, "   %s\n", footer)

	if c.State.LastError != "" {
		fmt.Fprintf(w, "   ! %s\n", c.State.LastError)
	}
}
