// Package view renders the words page and the delete confirmation prompt.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/wordledger/wordledger/internal/app"
	"github.com/wordledger/wordledger/internal/ledger"
	"github.com/wordledger/wordledger/internal/model"
)

// DefaultTitle is the page heading.
const DefaultTitle = "Go + PostgreSQL Full-Stack App"

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"even": func(i int) bool { return i%2 == 0 },
}

// Renderer holds the parsed page templates.
type Renderer struct {
	title   string
	index   *template.Template
	confirm *template.Template
}

type indexData struct {
	Title string
	State app.State
}

type confirmData struct {
	Title  string
	Prompt string
	ID     int64
	Word   *model.WordEntry
}

// New parses the embedded templates.
func New(title string) (*Renderer, error) {
	if title == "" {
		title = DefaultTitle
	}

	index, err := parsePage("index.html")
	if err != nil {
		return nil, err
	}
	confirm, err := parsePage("confirm.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		title:   title,
		index:   index,
		confirm: confirm,
	}, nil
}

func parsePage(page string) (*template.Template, error) {
	tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", page, err)
	}
	return tmpl, nil
}

// Index renders the main page for state.
func (r *Renderer) Index(w io.Writer, state app.State) error {
	return r.index.ExecuteTemplate(w, "layout", indexData{
		Title: r.title,
		State: state,
	})
}

// Confirm renders the yes/no prompt for deleting id. word may be nil when
// the id is not in the cached list.
func (r *Renderer) Confirm(w io.Writer, id int64, word *model.WordEntry) error {
	return r.confirm.ExecuteTemplate(w, "layout", confirmData{
		Title:  r.title,
		Prompt: ledger.DeletePrompt,
		ID:     id,
		Word:   word,
	})
}
