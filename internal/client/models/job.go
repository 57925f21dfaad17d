// Package models defines the data exchanged with the job-board API and the
// session data kept on the client.
package models

import (
	"strings"
	"time"
)

// OrgProfile describes the organization behind an opportunity.
type OrgProfile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Location    []string `json:"location,omitempty"`
	Logo        string   `json:"logo,omitempty"`
}

// Job is an opportunity as returned by /opportunities. IsBookmarked is never
// taken from the server; views recompute it from the bookmark set.
type Job struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Responsibilities string      `json:"responsibilities,omitempty"`
	Requirements     string      `json:"requirements,omitempty"`
	IdealCandidate   string      `json:"idealCandidate,omitempty"`
	Categories       []string    `json:"categories,omitempty"`
	OpType           string      `json:"opType"`
	StartDate        string      `json:"startDate,omitempty"`
	EndDate          string      `json:"endDate,omitempty"`
	Deadline         string      `json:"deadline,omitempty"`
	Location         []string    `json:"location,omitempty"`
	RequiredSkills   []string    `json:"requiredSkills,omitempty"`
	WhenAndWhere     string      `json:"whenAndWhere,omitempty"`
	OrgName          string      `json:"orgName"`
	LogoURL          string      `json:"logoUrl,omitempty"`
	IsBookmarked     bool        `json:"-"`
	IsRolling        bool        `json:"isRolling,omitempty"`
	Questions        string      `json:"questions,omitempty"`
	PerksAndBenefits string      `json:"perksAndBenefits,omitempty"`
	CreatedAt        string      `json:"createdAt,omitempty"`
	UpdatedAt        string      `json:"updatedAt,omitempty"`
	OrgPrimaryPhone  string      `json:"orgPrimaryPhone,omitempty"`
	OrgEmail         string      `json:"orgEmail,omitempty"`
	OrgID            string      `json:"orgID,omitempty"`
	DatePosted       string      `json:"datePosted,omitempty"`
	Status           string      `json:"status,omitempty"`
	ApplicantsCount  int         `json:"applicantsCount,omitempty"`
	ViewsCount       int         `json:"viewsCount,omitempty"`
	OrgProfile       *OrgProfile `json:"orgProfile,omitempty"`
}

// PostedAt returns when the job was posted, falling back to CreatedAt.
func (j *Job) PostedAt() (time.Time, bool) {
	if t, ok := ParseTime(j.DatePosted); ok {
		return t, true
	}
	return ParseTime(j.CreatedAt)
}

// MatchesTitle reports whether the title contains query, ignoring case.
// An empty query matches everything.
func (j *Job) MatchesTitle(query string) bool {
	return strings.Contains(strings.ToLower(j.Title), strings.ToLower(query))
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseTime accepts the timestamp formats the API is known to emit.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
