package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskInput_NormalizeDefaults(t *testing.T) {
	var in TaskInput
	require.NoError(t, json.Unmarshal([]byte(`{"client_id":"3","title":"Call","due_date":""}`), &in))
	require.NoError(t, in.Normalize())

	assert.Equal(t, ID(3), in.ClientID)
	assert.Equal(t, "", *in.Description)
	assert.Equal(t, PriorityMedium, *in.Priority)
	assert.Nil(t, in.DueDate)
}

func TestTaskInput_NormalizeRejects(t *testing.T) {
	high := Priority("urgent")
	tests := []struct {
		name string
		in   TaskInput
		want error
	}{
		{"missing title", TaskInput{ClientID: 1}, ErrTaskFieldsRequired},
		{"missing client", TaskInput{Title: "Call"}, ErrTaskFieldsRequired},
		{"long title", TaskInput{ClientID: 1, Title: strings.Repeat("t", MaxTextLength+1)}, ErrTitleTooLong},
		{"unknown priority", TaskInput{ClientID: 1, Title: "Call", Priority: &high}, ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.in.Normalize(), tt.want)
		})
	}
}

func TestTaskUpdate_Normalize(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"status only", `{"status":"done"}`, nil},
		{"completed is accepted", `{"status":"completed"}`, nil},
		{"priority and date", `{"priority":"high","due_date":"2026-05-01"}`, nil},
		{"empty body", `{}`, nil},
		{"unknown status", `{"status":"archived"}`, ErrInvalidStatus},
		{"unknown priority", `{"priority":"urgent"}`, ErrInvalidPriority},
		{"empty title", `{"title":""}`, ErrEmptyTitle},
		{"long title", `{"title":"` + strings.Repeat("t", MaxTextLength+1) + `"}`, ErrTitleTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in TaskUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			err := in.Normalize()
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTooLong(t *testing.T) {
	assert.False(t, TooLong(strings.Repeat("é", MaxTextLength)))
	assert.True(t, TooLong(strings.Repeat("a", MaxTextLength+1)))
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusDone.Terminal())
	assert.True(t, StatusCompleted.Terminal())
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-04T15:00:00Z"`), &d))
	assert.Equal(t, NewDate(2026, time.March, 4), d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-03-04"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"04/03/2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20260304`), &d))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 7, 9, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2026-07-09", d.String())

	require.NoError(t, d.Scan([]byte("2026-07-10")))
	assert.Equal(t, "2026-07-10", d.String())

	assert.Error(t, d.Scan(42))
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body    string
		want    ID
		wantErr bool
	}{
		{`12`, 12, false},
		{`"12"`, 12, false},
		{`""`, 0, false},
		{`"abc"`, 0, true},
		{`true`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.body), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-1", "1; DROP TABLE tasks", "abc"} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestUser_HidesPasswordHash(t *testing.T) {
	out, err := json.Marshal(User{ID: 1, Username: "alice", PasswordHash: "$2a$10$secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.NotContains(t, string(out), "password")
}
