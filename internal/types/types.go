// Package types holds the data structures shared by the backend, the remote
// client and every roster frontend. Keeping them in one place prevents import
// cycles: handlers, storage, client and roster all import types without
// depending on each other.
package types

// Student is a student record as exchanged with the backend.
//
// The two roster variants manage slightly different shapes of the same
// entity: the majors roster sends {id, name, age, major}, the contacts roster
// sends {id, name, age, email}. Both extra fields are omitempty so each
// variant only puts its own field on the wire.
//
// ID is assigned by the server and is required for update and delete.
type Student struct {
	ID    int64  `json:"id"               yaml:"id"`
	Name  string `json:"name"             yaml:"name"             validate:"required"`
	Age   int    `json:"age"              yaml:"age"              validate:"required"`
	Major string `json:"major,omitempty"  yaml:"major,omitempty"`
	Email string `json:"email,omitempty"  yaml:"email,omitempty"  validate:"omitempty,email"`
}

// StudentInput is the body of a create request: a Student without an ID.
type StudentInput struct {
	Name  string `json:"name"             validate:"required"`
	Age   int    `json:"age"              validate:"required"`
	Major string `json:"major,omitempty"`
	Email string `json:"email,omitempty"  validate:"omitempty,email"`
}

// WithID returns the stored record for this input under the given id.
func (in StudentInput) WithID(id int64) Student {
	return Student{
		ID:    id,
		Name:  in.Name,
		Age:   in.Age,
		Major: in.Major,
		Email: in.Email,
	}
}

// Input strips the server-assigned id.
func (s Student) Input() StudentInput {
	return StudentInput{
		Name:  s.Name,
		Age:   s.Age,
		Major: s.Major,
		Email: s.Email,
	}
}
