package page

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-roster/internal/client"
	"github.com/aanand-mishra/students-roster/internal/http/api"
	"github.com/aanand-mishra/students-roster/internal/roster"
	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/storage/memory"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	mux   *http.ServeMux
	store storage.Storage
	ctrl  *roster.Controller
}

func newFixture(t *testing.T, v roster.Variant, seed bool) fixture {
	t.Helper()
	s := memory.New()
	if seed {
		require.NoError(t, storage.SeedIfEmpty(s))
	}
	backend := httptest.NewServer(api.NewRouter(s, nil, quiet))
	t.Cleanup(backend.Close)

	ctrl := roster.NewController(v, client.New(backend.URL+"/students"), quiet)
	require.NoError(t, ctrl.Load(context.Background()))

	mux := http.NewServeMux()
	Register(mux, ctrl)
	return fixture{mux: mux, store: s, ctrl: ctrl}
}

func (f fixture) get(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func (f fixture) post(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestIndex_Empty(t *testing.T) {
	f := newFixture(t, roster.Majors, false)
	body := f.get(t)
	assert.Contains(t, body, "Aucun étudiant trouvé")
	assert.Contains(t, body, "Ajouter un étudiant")
}

func TestIndex_Seeded(t *testing.T) {
	f := newFixture(t, roster.Majors, true)
	body := f.get(t)
	assert.Contains(t, body, "<strong>Alice</strong>")
	assert.Contains(t, body, "20 ans - Informatique")
	assert.Contains(t, body, `action="/students/1/edit"`)
	assert.Contains(t, body, `min="1"`)
}

func TestSubmit_CreatesAndRedirects(t *testing.T) {
	f := newFixture(t, roster.Majors, false)

	rec := f.post(t, "/students", url.Values{"name": {"Dana"}, "age": {"23"}, "extra": {"Chimie"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	students, err := f.store.GetStudents()
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Chimie", students[0].Major)

	body := f.get(t)
	assert.Contains(t, body, "<strong>Dana</strong>")
	assert.NotContains(t, body, "Aucun étudiant trouvé")
}

func TestSubmit_InvalidShowsError(t *testing.T) {
	f := newFixture(t, roster.Majors, false)

	f.post(t, "/students", url.Values{"name": {"Dana"}, "age": {"-4"}, "extra": {"Chimie"}})

	students, err := f.store.GetStudents()
	require.NoError(t, err)
	assert.Empty(t, students)

	body := f.get(t)
	assert.Contains(t, body, "L&#39;âge doit être un nombre positif.")
	assert.Contains(t, body, `value="Dana"`)
}

func TestEditFlow(t *testing.T) {
	f := newFixture(t, roster.Majors, true)

	rec := f.post(t, "/students/2/edit", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	body := f.get(t)
	assert.Contains(t, body, "Modifier un étudiant")
	assert.Contains(t, body, `value="Bob"`)
	assert.Contains(t, body, "Annuler")

	f.post(t, "/students", url.Values{"name": {"Bobby"}, "age": {"23"}, "extra": {"Physique"}})

	got, err := f.store.GetStudentByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Bobby", got.Name)
	assert.Contains(t, f.get(t), "Ajouter un étudiant")
}

func TestCancel(t *testing.T) {
	f := newFixture(t, roster.Majors, true)
	f.post(t, "/students/1/edit", nil)
	f.post(t, "/cancel", nil)
	assert.False(t, f.ctrl.State().IsEditing())
}

func TestDelete(t *testing.T) {
	f := newFixture(t, roster.Majors, true)

	rec := f.post(t, "/students/1/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotContains(t, f.get(t), "<strong>Alice</strong>")

	// Already gone on the server: the list stays, the error shows.
	require.NoError(t, f.store.DeleteStudentByID(2))
	f.post(t, "/students/2/delete", nil)
	body := f.get(t)
	assert.Contains(t, body, "<strong>Bob</strong>")
	assert.Contains(t, body, "Erreur lors de la suppression")
}

func TestContacts_NoEditButtons(t *testing.T) {
	f := newFixture(t, roster.Contacts, true)
	body := f.get(t)
	assert.NotContains(t, body, "/edit")
	assert.Contains(t, body, `type="email"`)

	rec := f.post(t, "/students/1/edit", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestInvalidPathID(t *testing.T) {
	f := newFixture(t, roster.Majors, true)
	rec := f.post(t, "/students/abc/delete", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
