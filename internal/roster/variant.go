package roster

import (
	"fmt"
	"strings"

	"github.com/aanand-mishra/students-roster/internal/types"
)

// Variant describes one of the two roster frontends. They manage the same
// entity against the same backend but differ in the record's third field,
// in whether records can be edited, and in how they guard and report
// requests.
type Variant struct {
	// Name selects the variant in config and on the command line.
	Name string
	// Title heads the list.
	Title string
	// ExtraLabel is the placeholder of the third form field.
	ExtraLabel string
	// DefaultBaseURL is the collection endpoint when none is configured.
	DefaultBaseURL string

	// Editable enables edit mode and the update call.
	Editable bool
	// Guarded holds a loading flag that refuses new requests while one is
	// in flight.
	Guarded bool
	// PositiveAge rejects ages <= 0 before submitting.
	PositiveAge bool
	// LogErrorBody logs the message a failed response carried.
	LogErrorBody bool

	extra func(types.Student) string
	set   func(*types.StudentInput, string)
}

// Extra returns the variant's third field of s.
func (v Variant) Extra(s types.Student) string { return v.extra(s) }

// Input builds the create payload from validated form values.
func (v Variant) Input(name string, age int, extra string) types.StudentInput {
	in := types.StudentInput{Name: name, Age: age}
	v.set(&in, extra)
	return in
}

// Majors is the editable roster: {id, name, age, major}.
var Majors = Variant{
	Name:           "majors",
	Title:          "Liste des étudiants",
	ExtraLabel:     "Majeure",
	DefaultBaseURL: "http://127.0.0.1:8000/students",
	Editable:       true,
	PositiveAge:    true,
	LogErrorBody:   true,
	extra:          func(s types.Student) string { return s.Major },
	set:            func(in *types.StudentInput, v string) { in.Major = v },
}

// Contacts is the guarded roster: {id, name, age, email}, no edit mode.
var Contacts = Variant{
	Name:           "contacts",
	Title:          "Gestion des étudiants",
	ExtraLabel:     "Email",
	DefaultBaseURL: "http://localhost:8000/students",
	Guarded:        true,
	extra:          func(s types.Student) string { return s.Email },
	set:            func(in *types.StudentInput, v string) { in.Email = v },
}

// Variants lists every known variant.
var Variants = []Variant{Majors, Contacts}

// VariantByName looks a variant up by Name, case-insensitively.
func VariantByName(name string) (Variant, error) {
	for _, v := range Variants {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown roster variant %q (want majors or contacts)", name)
}
