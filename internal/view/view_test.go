package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordledger/wordledger/internal/app"
	"github.com/wordledger/wordledger/internal/model"
)

func render(t *testing.T, state app.State) string {
	t.Helper()

	r, err := New("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Index(&buf, state))
	return buf.String()
}

func TestIndex_Loading(t *testing.T) {
	t.Parallel()

	out := render(t, app.State{Loading: true, ServerTime: "0"})

	assert.Contains(t, out, "Loading API data (logging in...)")
	assert.NotContains(t, out, "The server time is")
	assert.Contains(t, out, "No words saved yet.")
}

func TestIndex_ServerTime(t *testing.T) {
	t.Parallel()

	out := render(t, app.State{Authenticated: true, ServerTime: "12:00:00"})

	assert.Contains(t, out, "The server time is: 12:00:00")
	assert.NotContains(t, out, "Loading API data")
}

func TestIndex_LoadingWordList(t *testing.T) {
	t.Parallel()

	out := render(t, app.State{Loading: true, Authenticated: true})
	assert.Contains(t, out, "Loading word list...")
	assert.NotContains(t, out, "No words saved yet.")
}

func TestIndex_EmptyList(t *testing.T) {
	t.Parallel()

	out := render(t, app.State{Authenticated: true, Words: []model.WordEntry{}})

	assert.Contains(t, out, "Saved Words (0)")
	assert.Contains(t, out, "No words saved yet.")
	assert.NotContains(t, out, "<table")
}

func TestIndex_TableRowsInOrder(t *testing.T) {
	t.Parallel()

	out := render(t, app.State{
		Authenticated: true,
		Words: []model.WordEntry{
			{ID: 9, Text: "Kubernetes", Timestamp: "2025-01-02 10:00:00"},
			{ID: 4, Text: "Docker", Timestamp: "2025-01-01 10:00:00"},
		},
	})

	assert.Contains(t, out, "Saved Words (2)")
	assert.Equal(t, 2, strings.Count(out, `class="word-row`))
	assert.Less(t, strings.Index(out, "Kubernetes"), strings.Index(out, "Docker"))
	assert.Contains(t, out, `action="/words/9/delete"`)
	assert.Contains(t, out, `action="/words/4/delete"`)
	assert.Contains(t, out, "even-row")
	assert.Contains(t, out, "odd-row")
	assert.NotContains(t, out, "No words saved yet.")
}

func TestIndex_StatusColors(t *testing.T) {
	t.Parallel()

	ok := render(t, app.State{Authenticated: true, Status: "Success: Docker saved!"})
	assert.Contains(t, ok, "Success: Docker saved!")
	assert.Contains(t, ok, "status-ok")

	bad := render(t, app.State{Authenticated: true, Status: "Error: Not logged in (missing token)."})
	assert.Contains(t, bad, "Error: Not logged in (missing token).")
	assert.Contains(t, bad, "status-error")
}

func TestIndex_FormDisabledWithoutSession(t *testing.T) {
	t.Parallel()

	out := render(t, app.State{})
	assert.Contains(t, out, `<button type="submit" disabled>Save Word</button>`)

	out = render(t, app.State{Authenticated: true, Input: "draft"})
	assert.Contains(t, out, `<button type="submit">Save Word</button>`)
	assert.Contains(t, out, `value="draft"`)
}

func TestIndex_EscapesUserText(t *testing.T) {
	t.Parallel()

	out := render(t, app.State{
		Authenticated: true,
		Words:         []model.WordEntry{{ID: 1, Text: "<script>alert(1)</script>"}},
	})

	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	r, err := New("Words")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Confirm(&buf, 5, &model.WordEntry{ID: 5, Text: "Docker"}))
	out := buf.String()

	assert.Contains(t, out, "Are you sure you want to delete this word?")
	assert.Contains(t, out, "Docker")
	assert.Contains(t, out, `action="/words/5/delete"`)
	assert.Contains(t, out, `value="yes"`)
	assert.Contains(t, out, `value="no"`)
	assert.Contains(t, out, "<title>Words</title>")

	buf.Reset()
	require.NoError(t, r.Confirm(&buf, 6, nil))
	assert.Contains(t, buf.String(), `action="/words/6/delete"`)
}
