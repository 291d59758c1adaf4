package entity

import "math"

// Person is one member of a vampire lineage.
type Person struct {
	Name       string
	Position   int
	Word       string
	InfoBefore string // hint shown on the successor's front page
	InfoAfter  string // hint shown on the predecessor's front page
}

func (p Person) Kind() Kind    { return KindPerson }
func (p Person) Label() string { return p.Name }
func (p Person) Quantity() int { return 1 }

// The second column holds notes that are not printed.
var personColumns = []string{"name", "note", "position", "word", "info before", "info after"}

// ParsePerson parses a row of name, an ignored note, position, word and the
// two neighbor hints.
func ParsePerson(cells []string) (Person, error) {
	r, err := newRow(KindPerson, personColumns, cells)
	if err != nil {
		return Person{}, err
	}
	name, err := r.name(0)
	if err != nil {
		return Person{}, err
	}
	pos, err := r.integer(2, math.MinInt, math.MaxInt)
	if err != nil {
		return Person{}, err
	}
	return Person{
		Name:       name,
		Position:   pos,
		Word:       r.str(3),
		InfoBefore: r.str(4),
		InfoAfter:  r.str(5),
	}, nil
}
