package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_UnmarshalIgnoresServerBookmarkFlag(t *testing.T) {
	var j Job
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","title":"Go dev","orgName":"Acme","isBookmarked":true,"location":["Addis Ababa"]}`), &j))

	assert.Equal(t, "1", j.ID)
	assert.Equal(t, []string{"Addis Ababa"}, j.Location)
	assert.False(t, j.IsBookmarked)
}

func TestJob_MatchesTitle(t *testing.T) {
	j := Job{Title: "Senior Go Engineer"}

	assert.True(t, j.MatchesTitle("go eng"))
	assert.True(t, j.MatchesTitle("SENIOR"))
	assert.True(t, j.MatchesTitle(""))
	assert.False(t, j.MatchesTitle("rust"))
}

func TestJob_PostedAt(t *testing.T) {
	tests := []struct {
		name   string
		job    Job
		want   time.Time
		wantOK bool
	}{
		{
			name:   "rfc3339 with millis",
			job:    Job{DatePosted: "2024-07-01T10:00:00.000Z"},
			want:   time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "falls back to createdAt",
			job:    Job{CreatedAt: "2024-06-30"},
			want:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name: "unparseable",
			job:  Job{DatePosted: "Jul 1, 2023"},
		},
		{
			name: "missing",
			job:  Job{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.job.PostedAt()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestBookmarkIDs_SkipsBlankAndDuplicates(t *testing.T) {
	ids := BookmarkIDs([]Bookmark{{EventID: "2"}, {EventID: ""}, {EventID: "1"}, {EventID: "2"}})
	assert.Equal(t, []string{"2", "1"}, ids)
}

func TestEnvelope_DataOptional(t *testing.T) {
	var env Envelope[Job]
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"message":"ok"}`), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Data)

	var list Envelope[[]Job]
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"message":"","data":[{"id":"a"}],"count":1}`), &list))
	require.NotNil(t, list.Data)
	assert.Len(t, *list.Data, 1)
	assert.Equal(t, 1, list.Count)
}
