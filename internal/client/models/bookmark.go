package models

// Bookmark is one entry of GET /bookmarks. EventID is the job id.
type Bookmark struct {
	EventID        string   `json:"eventID"`
	DateBookmarked string   `json:"dateBookmarked,omitempty"`
	DatePosted     string   `json:"datePosted,omitempty"`
	LogoURL        string   `json:"logoUrl,omitempty"`
	OpType         string   `json:"opType,omitempty"`
	OrgName        string   `json:"orgName,omitempty"`
	Title          string   `json:"title,omitempty"`
	Location       []string `json:"location,omitempty"`
}

// BookmarkIDs returns the job ids of bs in order, skipping blanks and
// duplicates.
func BookmarkIDs(bs []Bookmark) []string {
	ids := make([]string, 0, len(bs))
	seen := make(map[string]struct{}, len(bs))
	for _, b := range bs {
		if b.EventID == "" {
			continue
		}
		if _, dup := seen[b.EventID]; dup {
			continue
		}
		seen[b.EventID] = struct{}{}
		ids = append(ids, b.EventID)
	}
	return ids
}
