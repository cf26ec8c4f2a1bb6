// Package page serves the roster as a server-rendered HTML page.
//
// The page is the browser view of one roster.Controller. Every action is a
// form POST that runs the controller synchronously and redirects back to
// GET /, so a reload never repeats a request.
//
//	GET  /                      → the roster, the form, the last error
//	POST /students              → submit the form (create or update)
//	POST /students/{id}/delete  → delete a record
//	POST /students/{id}/edit    → load a record into the form
//	POST /cancel                → leave edit mode
package page

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/students-roster/internal/form"
	"github.com/aanand-mishra/students-roster/internal/roster"
	"github.com/aanand-mishra/students-roster/internal/types"
)

//go:embed templates/roster.html
var templates embed.FS

var rosterTemplate = template.Must(template.ParseFS(templates, "templates/roster.html"))

type view struct {
	Variant      roster.Variant
	State        roster.State
	Busy         bool
	EmptyMessage string
	Extra        func(types.Student) string
}

// Register mounts the page handlers on mux.
func Register(mux *http.ServeMux, ctrl *roster.Controller) {
	mux.HandleFunc("GET /{$}", Index(ctrl))
	mux.HandleFunc("POST /students", Submit(ctrl))
	mux.HandleFunc("POST /students/{id}/delete", Delete(ctrl))
	mux.HandleFunc("POST /students/{id}/edit", Edit(ctrl))
	mux.HandleFunc("POST /cancel", Cancel(ctrl))
}

// Index renders the current state.
func Index(ctrl *roster.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := ctrl.Variant()
		st := ctrl.State()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := rosterTemplate.Execute(w, view{
			Variant:      v,
			State:        st,
			Busy:         v.Guarded && st.Loading,
			EmptyMessage: roster.MsgEmpty,
			Extra:        v.Extra,
		})
		if err != nil {
			slog.Error("error rendering roster", slog.String("error", err.Error()))
		}
	}
}

// Submit stores the posted fields and submits them.
func Submit(ctrl *roster.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctrl.SetFields(form.Fields{
			Name:  r.PostFormValue("name"),
			Age:   r.PostFormValue("age"),
			Extra: r.PostFormValue("extra"),
		})

		// The outcome is in the store; the page shows it after the redirect.
		if err := ctrl.Submit(r.Context()); err != nil {
			slog.Debug("submit failed", slog.String("error", err.Error()))
		}
		backToIndex(w, r)
	}
}

// Delete removes the record named in the path.
func Delete(ctrl *roster.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := ctrl.Delete(r.Context(), id); err != nil {
			slog.Debug("delete failed", slog.Int64("id", id), slog.String("error", err.Error()))
		}
		backToIndex(w, r)
	}
}

// Edit enters edit mode on the record named in the path.
func Edit(ctrl *roster.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := ctrl.BeginEdit(id); errors.Is(err, roster.ErrNotEditable) {
			http.Error(w, err.Error(), http.StatusMethodNotAllowed)
			return
		}
		backToIndex(w, r)
	}
}

// Cancel leaves edit mode.
func Cancel(ctrl *roster.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.CancelEdit(); err != nil {
			http.Error(w, err.Error(), http.StatusMethodNotAllowed)
			return
		}
		backToIndex(w, r)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id: must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func backToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
