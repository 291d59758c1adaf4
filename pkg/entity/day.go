package entity

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ProgramType is the part of the day a program block belongs to.
type ProgramType string

const (
	Morning   ProgramType = "Dopo"
	Afternoon ProgramType = "Odpo"
	Evening   ProgramType = "Večer"
)

// ProgramTypes lists the day parts in chronological order.
var ProgramTypes = []ProgramType{Morning, Afternoon, Evening}

// ParseProgramType validates s against the known day parts.
func ParseProgramType(s string) (ProgramType, error) {
	for _, p := range ProgramTypes {
		if string(p) == s {
			return p, nil
		}
	}
	return "", &ParseError{
		Kind:   KindDayPart,
		Column: "name",
		Value:  s,
		Err:    fmt.Errorf("%w: program type must be one of %v", ErrInvalidEnum, ProgramTypes),
	}
}

// Field is one key/value pair of a day part, kept in sheet order.
type Field struct {
	Key   string
	Value string
}

// DayPart is one program block of a day.
type DayPart struct {
	Name   ProgramType
	CTH    bool
	Values []Field
}

// Value returns the value stored under key.
func (p DayPart) Value(key string) (string, bool) {
	for _, f := range p.Values {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// DaySummary is one row of the overview sheet.
type DaySummary struct {
	Physical   int
	Psychical  int
	Theme      string
	Guarantees string
}

var summaryColumns = []string{"physical", "psychical", "theme", "guarantees"}

// ParseDaySummary parses an overview row of physical and psychical load,
// theme and guarantees.
func ParseDaySummary(cells []string) (DaySummary, error) {
	r, err := newRow(KindDay, summaryColumns, cells)
	if err != nil {
		return DaySummary{}, err
	}
	phys, err := r.integer(0, math.MinInt, math.MaxInt)
	if err != nil {
		return DaySummary{}, err
	}
	psych, err := r.integer(1, math.MinInt, math.MaxInt)
	if err != nil {
		return DaySummary{}, err
	}
	return DaySummary{
		Physical:   phys,
		Psychical:  psych,
		Theme:      strings.TrimSpace(r.str(2)),
		Guarantees: r.str(3),
	}, nil
}

// Day is the complete program of one day.
type Day struct {
	Number    int
	Date      time.Time
	SheetName string
	DaySummary
	Parts []DayPart
}

func (d Day) Kind() Kind    { return KindDay }
func (d Day) Label() string { return d.SheetName }
func (d Day) Quantity() int { return 1 }

// DisplayName formats the day as "<sheet> (dd.mm.) - <guarantees>".
func (d Day) DisplayName() string {
	return fmt.Sprintf("%s (%s) - %s", d.SheetName, d.Date.Format("02.01."), d.Guarantees)
}

var czechWeekdays = [...]string{"ne", "po", "út", "st", "čt", "pá", "so"}

// WeekDay returns the Czech two-letter abbreviation of the day of week.
func (d Day) WeekDay() string {
	return czechWeekdays[d.Date.Weekday()]
}

// Part returns the day part of the given type.
func (d Day) Part(t ProgramType) (DayPart, bool) {
	for _, p := range d.Parts {
		if p.Name == t {
			return p, true
		}
	}
	return DayPart{}, false
}

// Value looks up key in the day part of type t.
func (d Day) Value(t ProgramType, key string) (string, bool) {
	p, ok := d.Part(t)
	if !ok {
		return "", false
	}
	return p.Value(key)
}

// SetPart stores p, replacing an existing part of the same type in place.
func (d *Day) SetPart(p DayPart) {
	for i := range d.Parts {
		if d.Parts[i].Name == p.Name {
			d.Parts[i] = p
			return
		}
	}
	d.Parts = append(d.Parts, p)
}
