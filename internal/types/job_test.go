package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		want      time.Time
	}{
		{
			name:      "naive iso with microseconds",
			raw:       "2024-03-01T09:15:02.123456",
			wantValid: true,
			want:      time.Date(2024, 3, 1, 9, 15, 2, 123456000, time.UTC),
		},
		{
			name:      "rfc3339",
			raw:       "2024-03-01T09:15:02Z",
			wantValid: true,
			want:      time.Date(2024, 3, 1, 9, 15, 2, 0, time.UTC),
		},
		{
			name:      "date only",
			raw:       "2024-03-01",
			wantValid: true,
			want:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "garbage",
			raw:       "two days ago",
			wantValid: false,
		},
		{
			name:      "empty",
			raw:       "",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := ParseTimestamp(tt.raw)
			assert.Equal(t, tt.wantValid, ts.Valid)
			if tt.wantValid {
				assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
			}
		})
	}
}

func TestTimestampCompare(t *testing.T) {
	early := ParseTimestamp("2024-01-01T00:00:00")
	late := ParseTimestamp("2024-06-01T00:00:00")
	invalid := ParseTimestamp("not a date")
	absent := Timestamp{}

	assert.Equal(t, -1, early.Compare(late))
	assert.Equal(t, 1, late.Compare(early))
	assert.Equal(t, 0, early.Compare(early))
	assert.Equal(t, -1, invalid.Compare(early))
	assert.Equal(t, 1, early.Compare(absent))
	assert.Equal(t, 0, invalid.Compare(absent))
}

func TestJobJSON(t *testing.T) {
	payload := `{
		"id": "li-123",
		"title": "Backend Engineer",
		"company": "Acme",
		"location": "San Francisco, CA",
		"description": "Go services",
		"url": "https://www.linkedin.com/jobs/view/123",
		"visa_sponsorship": true,
		"date_posted": null,
		"date_found": "2024-03-01T09:15:02.123456"
	}`

	var job Job
	require.NoError(t, json.Unmarshal([]byte(payload), &job))

	assert.Equal(t, JobID("li-123"), job.ID)
	assert.True(t, job.SponsorsVisa())
	assert.True(t, job.DatePosted.IsZero())
	assert.True(t, job.DateFound.Valid)

	out, err := json.Marshal(job)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date_posted":null`)
	assert.Contains(t, string(out), `"date_found":"2024-03-01T09:15:02.123456"`)
}

func TestJobWithoutVisaField(t *testing.T) {
	var job Job
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","date_posted":12345}`), &job))

	assert.Nil(t, job.VisaSponsorship)
	assert.False(t, job.SponsorsVisa())
	assert.False(t, job.DatePosted.Valid)
	assert.Equal(t, "12345", job.DatePosted.Raw)
}

func TestJobIDDecoding(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    JobID
	}{
		{name: "string", payload: `{"id":"li-123"}`, want: "li-123"},
		{name: "linkedin numeric id", payload: `{"id":4012345678}`, want: "4012345678"},
		{name: "large number keeps every digit", payload: `{"id":12345678901234567890}`, want: "12345678901234567890"},
		{name: "null", payload: `{"id":null}`, want: ""},
		{name: "absent", payload: `{}`, want: ""},
		{name: "bool kept as text", payload: `{"id":true}`, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var job Job
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &job))
			assert.Equal(t, tt.want, job.ID)
		})
	}
}

func TestJobListWithMixedIDs(t *testing.T) {
	payload := `[
		{"id": 4012345678, "title": "Backend Engineer", "date_found": "2024-01-01T00:00:00"},
		{"id": "li-2", "title": "SRE", "date_found": "2024-01-02T00:00:00"}
	]`

	var list []Job
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	require.Len(t, list, 2)
	assert.Equal(t, JobID("4012345678"), list[0].ID)
	assert.Equal(t, "li-2", list[1].ID.String())

	out, err := json.Marshal(list[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":"4012345678"`)
}
