// Package roster holds the local state of a roster frontend and the
// controller that keeps it in step with the backend.
//
// Every user action goes through a Controller: it validates, calls the
// remote client, and on success mutates the Store. Failures are logged and
// turned into one static message; nothing is retried and nothing is rolled
// back, because the store is only touched once a call has succeeded.
package roster

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/aanand-mishra/students-roster/internal/client"
	"github.com/aanand-mishra/students-roster/internal/form"
	"github.com/aanand-mishra/students-roster/internal/types"
)

// User-facing messages, one per failure class.
const (
	MsgEmpty        = "Aucun étudiant trouvé. Ajoutez-en un pour commencer."
	MsgMissingField = "Tous les champs sont obligatoires."
	MsgInvalidAge   = "L'âge doit être un nombre positif."
	MsgLoad         = "Erreur lors de la récupération des étudiants."
	MsgCreate       = "Erreur lors de l'ajout de l'étudiant."
	MsgUpdate       = "Erreur lors de la mise à jour de l'étudiant."
	MsgDelete       = "Erreur lors de la suppression de l'étudiant."
	MsgNoID         = "Étudiant enregistré mais sans ID valide."
	MsgBusy         = "Une requête est déjà en cours."
	MsgUnknown      = "Étudiant introuvable dans la liste."
)

var (
	// ErrValidation wraps a form that failed its client-side checks.
	ErrValidation = errors.New("roster: validation failed")
	// ErrBusy is returned by a guarded variant while a request is in flight.
	ErrBusy = errors.New("roster: request already in flight")
	// ErrNotEditable is returned by edit operations on a read-only variant.
	ErrNotEditable = errors.New("roster: variant has no edit mode")
	// ErrUnknownStudent is returned when an id is not in the local list.
	ErrUnknownStudent = errors.New("roster: student not in roster")
	// ErrNoID is returned when the server answered a create without an id.
	ErrNoID = errors.New("roster: server returned no id")
)

// Remote is the backend as the controller sees it. *client.Client
// satisfies it.
type Remote interface {
	List(ctx context.Context) ([]types.Student, error)
	Create(ctx context.Context, in types.StudentInput) (types.Student, error)
	Update(ctx context.Context, id int64, s types.Student) (types.Student, error)
	Delete(ctx context.Context, id int64) error
}

// Controller drives one roster variant.
type Controller struct {
	variant Variant
	remote  Remote
	store   *Store
	log     *slog.Logger
}

// NewController returns a controller with an empty store. log may be nil.
func NewController(v Variant, remote Remote, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		variant: v,
		remote:  remote,
		store:   NewStore(),
		log:     log.With(slog.String("variant", v.Name)),
	}
}

// Variant returns the variant the controller drives.
func (c *Controller) Variant() Variant { return c.variant }

// State returns a snapshot for rendering.
func (c *Controller) State() State { return c.store.Snapshot() }

// SetFields records what the user typed.
func (c *Controller) SetFields(f form.Fields) { c.store.SetForm(f) }

// Load fetches the full list and replaces the local copy.
func (c *Controller) Load(ctx context.Context) error {
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	students, err := c.remote.List(ctx)
	if err != nil {
		c.fail(MsgLoad, "fetching students", err)
		return err
	}
	c.store.Replace(students)
	return nil
}

// Submit validates the form and creates a record, or updates the edit
// target when one is set. A form that fails validation never reaches the
// network. On success the form is reset and edit mode is left.
func (c *Controller) Submit(ctx context.Context) error {
	fields := c.store.Form()

	values, err := form.Parse(fields, form.Rules{PositiveAge: c.variant.PositiveAge})
	if err != nil {
		msg := MsgMissingField
		if errors.Is(err, form.ErrInvalidAge) {
			msg = MsgInvalidAge
		}
		c.store.SetError(msg)
		c.log.Debug("form rejected", slog.String("error", err.Error()))
		return errors.Join(ErrValidation, err)
	}

	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	in := c.variant.Input(values.Name, values.Age, values.Extra)

	if target, ok := c.store.Editing(); ok && c.variant.Editable {
		return c.update(ctx, target.ID, in)
	}
	return c.create(ctx, in)
}

func (c *Controller) create(ctx context.Context, in types.StudentInput) error {
	created, err := c.remote.Create(ctx, in)
	if err != nil {
		c.fail(MsgCreate, "adding student", err)
		return err
	}
	if created.ID <= 0 {
		c.store.SetError(MsgNoID)
		c.log.Error("student added without a valid id")
		return ErrNoID
	}

	c.store.Append(created)
	c.store.ResetForm()
	c.log.Info("student added", slog.Int64("id", created.ID))
	return nil
}

func (c *Controller) update(ctx context.Context, id int64, in types.StudentInput) error {
	updated, err := c.remote.Update(ctx, id, in.WithID(id))
	if err != nil {
		c.fail(MsgUpdate, "updating student", err)
		return err
	}
	if updated.ID <= 0 {
		c.store.SetError(MsgNoID)
		c.log.Error("student updated but response has no valid id")
		return ErrNoID
	}

	c.store.ReplaceOne(updated)
	c.store.ResetForm()
	c.log.Info("student updated", slog.Int64("id", updated.ID))
	return nil
}

// Delete removes record id remotely and then locally. On failure the list
// is left as it is.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		c.store.SetError(MsgUnknown)
		return ErrUnknownStudent
	}

	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	if err := c.remote.Delete(ctx, id); err != nil {
		c.fail(MsgDelete, "deleting student", err)
		return err
	}

	c.store.Remove(id)
	c.log.Info("student deleted", slog.Int64("id", id))
	return nil
}

// BeginEdit loads record id into the form and enters edit mode.
func (c *Controller) BeginEdit(id int64) error {
	if !c.variant.Editable {
		return ErrNotEditable
	}
	st, ok := c.store.Find(id)
	if !ok || st.ID <= 0 {
		c.store.SetError(MsgUnknown)
		return ErrUnknownStudent
	}

	c.store.StartEditing(st, c.FieldsOf(st))
	c.store.SetError("")
	return nil
}

// CancelEdit clears the form and leaves edit mode.
func (c *Controller) CancelEdit() error {
	if !c.variant.Editable {
		return ErrNotEditable
	}
	c.store.ResetForm()
	return nil
}

// FieldsOf renders st as form input.
func (c *Controller) FieldsOf(st types.Student) form.Fields {
	f := form.Fields{Name: st.Name, Extra: c.variant.Extra(st)}
	if st.Age != 0 {
		f.Age = strconv.Itoa(st.Age)
	}
	return f
}

// begin clears the previous error and, for a guarded variant, takes the
// loading flag. The returned func releases it.
func (c *Controller) begin() (func(), error) {
	if c.variant.Guarded {
		if !c.store.TryBeginLoading() {
			c.store.SetError(MsgBusy)
			return nil, ErrBusy
		}
		c.store.SetError("")
		return c.store.EndLoading, nil
	}
	c.store.SetError("")
	return func() {}, nil
}

// fail stores msg and logs err. Only a variant that reads error bodies logs
// what the server said.
func (c *Controller) fail(msg, action string, err error) {
	c.store.SetError(msg)

	attrs := []any{slog.String("action", action)}

	var se *client.StatusError
	switch {
	case errors.As(err, &se):
		attrs = append(attrs, slog.Int("status", se.Code))
		if c.variant.LogErrorBody && se.Message != "" {
			attrs = append(attrs, slog.String("detail", se.Message))
		}
	default:
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	c.log.Error("request failed", attrs...)
}
