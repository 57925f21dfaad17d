package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// JobDetail shows one job in full.
type JobDetail struct {
	base

	src  JobSource
	feed BookmarkFeed
	now  func() time.Time

	id  string
	job *models.Job
}

func NewJobDetail(src JobSource, feed BookmarkFeed) *JobDetail {
	d := &JobDetail{src: src, feed: feed, now: time.Now}
	d.unsub = feed.Subscribe(d.onBookmark)
	return d
}

// Load fetches job id, replacing whatever was shown.
func (d *JobDetail) Load(ctx context.Context, id string) error {
	d.mu.Lock()
	d.id = id
	d.job = nil
	d.mu.Unlock()

	gen := d.begin()
	job, err := d.src.Get(ctx, id)
	d.finish(gen, err, "Failed to fetch job details", func() { d.job = job })
	return err
}

func (d *JobDetail) Retry(ctx context.Context) error {
	d.mu.Lock()
	id := d.id
	d.mu.Unlock()
	return d.Load(ctx, id)
}

// Job returns a copy of the loaded job, or nil.
func (d *JobDetail) Job() *models.Job {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.job == nil {
		return nil
	}
	j := *d.job
	return &j
}

func (d *JobDetail) onBookmark(jobID string, bookmarked bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.job != nil && d.job.ID == jobID {
		d.job.IsBookmarked = bookmarked
	}
}

func (d *JobDetail) Render(w io.Writer) {
	sec := d.Section()
	switch sec.Status {
	case StatusLoading:
		fmt.Fprintln(w, "Loading job details...")
		return
	case StatusError:
		renderError(w, sec.Message)
		return
	}

	j := d.Job()
	if j == nil {
		return
	}
	st := d.feed.State(j.ID)
	st.Bookmarked = j.IsBookmarked
	now := d.now()

	fmt.Fprintf(w, "%s %s\n", marker(st), j.Title)
	fmt.Fprintln(w, j.OrgName)
	var tags []string
	if j.OpType != "" {
		tags = append(tags, j.OpType)
	}
	tags = append(tags, j.Categories...)
	if len(tags) > 0 {
		fmt.Fprintln(w, strings.Join(tags, " | "))
	}
	if st.LastError != "" {
		fmt.Fprintf(w, "! %s\n", st.LastError)
	}

	section(w, "Description", plainText(j.Description))
	section(w, "Responsibilities", plainText(j.Responsibilities))
	section(w, "Requirements", plainText(j.Requirements))
	section(w, "Ideal Candidate", plainText(j.IdealCandidate))
	section(w, "When & Where", plainText(j.WhenAndWhere))

	var about []string
	if v, ok := when(j.DatePosted, now); ok {
		about = append(about, "Posted On: "+v)
	}
	if v, ok := when(j.Deadline, now); ok {
		about = append(about, "Deadline: "+v)
	}
	if len(j.Location) > 0 {
		about = append(about, "Location: "+strings.Join(j.Location, ", "))
	}
	if v, ok := when(j.StartDate, now); ok {
		about = append(about, "Start Date: "+v)
	}
	if v, ok := when(j.EndDate, now); ok {
		about = append(about, "End Date: "+v)
	}
	section(w, "About", strings.Join(about, "\n"))

	section(w, "Categories", strings.Join(j.Categories, ", "))
	section(w, "Required Skills", strings.Join(j.RequiredSkills, ", "))

	if j.OrgName != "" {
		company := j.OrgName
		if p := j.OrgProfile; p != nil {
			if p.Website != "" {
				company += "\n" + p.Website
			}
			if desc := plainText(p.Description); desc != "" {
				company += "\n" + desc
			}
		}
		section(w, "Company", company)
	}
}

// section prints a titled block, or nothing for empty body.
func section(w io.Writer, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, line := range strings.Split(body, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
