package views

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/bookmarks"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
)

const dateLayout = "Jan 2, 2006"

var strict = bluemonday.StrictPolicy()

// plainText strips markup from API text and folds runs of whitespace.
func plainText(s string) string {
	s = html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

// when renders a timestamp as "Jan 2, 2006 (3 days ago)". ok is false for
// empty or unparsable input.
func when(raw string, now time.Time) (string, bool) {
	t, ok := models.ParseTime(raw)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s (%s)", t.Format(dateLayout), humanize.RelTime(t, now, "ago", "from now")), true
}

func posted(j *models.Job, now time.Time) string {
	t, ok := j.PostedAt()
	if !ok {
		return "Posted Recently"
	}
	return fmt.Sprintf("Posted %s (%s)", t.Format(dateLayout), humanize.RelTime(t, now, "ago", "from now"))
}

func location(j *models.Job) string {
	if len(j.Location) == 0 {
		return "Location not specified"
	}
	return strings.Join(j.Location, ", ")
}

func marker(st bookmarks.State) string {
	switch {
	case st.Pending:
		return "[~]"
	case st.Bookmarked:
		return "[*]"
	default:
		return "[ ]"
	}
}
