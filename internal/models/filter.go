package models

import (
	"fmt"
	"strings"
)

// Status is the life status filter. The zero value means unset.
type Status string

const (
	StatusUnset   Status = ""
	StatusAlive   Status = "alive"
	StatusDead    Status = "dead"
	StatusUnknown Status = "unknown"
)

// Species is the species filter. The zero value means unset.
type Species string

const (
	SpeciesUnset Species = ""
	SpeciesHuman Species = "human"
	SpeciesAlien Species = "alien"
)

// Gender is the gender filter. The zero value means unset.
type Gender string

const (
	GenderUnset   Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Statuses, SpeciesOptions and Genders list the selectable values in button order
var (
	Statuses       = []Status{StatusAlive, StatusDead, StatusUnknown}
	SpeciesOptions = []Species{SpeciesHuman, SpeciesAlien}
	Genders        = []Gender{GenderMale, GenderFemale, GenderUnknown}
)

// FilterState holds the four independent filter fields
type FilterState struct {
	Search  string  `json:"search"`
	Status  Status  `json:"status,omitempty"`
	Species Species `json:"species,omitempty"`
	Gender  Gender  `json:"gender,omitempty"`
}

// IsZero reports whether every field is unset
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// String returns a compact description used in logs and the status line
func (f FilterState) String() string {
	parts := []string{fmt.Sprintf("name=%q", f.Search)}
	if f.Status != StatusUnset {
		parts = append(parts, "status="+string(f.Status))
	}
	if f.Species != SpeciesUnset {
		parts = append(parts, "species="+string(f.Species))
	}
	if f.Gender != GenderUnset {
		parts = append(parts, "gender="+string(f.Gender))
	}
	return strings.Join(parts, " ")
}

// Label returns the button caption for a filter value
func Label(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// ParseStatus validates a status value coming from outside the UI (flags, config)
func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	if v == StatusUnset {
		return v, nil
	}
	for _, allowed := range Statuses {
		if v == allowed {
			return v, nil
		}
	}
	return StatusUnset, fmt.Errorf("invalid status %q (want alive, dead or unknown)", s)
}

// ParseSpecies validates a species value
func ParseSpecies(s string) (Species, error) {
	v := Species(strings.ToLower(strings.TrimSpace(s)))
	if v == SpeciesUnset {
		return v, nil
	}
	for _, allowed := range SpeciesOptions {
		if v == allowed {
			return v, nil
		}
	}
	return SpeciesUnset, fmt.Errorf("invalid species %q (want human or alien)", s)
}

// ParseGender validates a gender value
func ParseGender(s string) (Gender, error) {
	v := Gender(strings.ToLower(strings.TrimSpace(s)))
	if v == GenderUnset {
		return v, nil
	}
	for _, allowed := range Genders {
		if v == allowed {
			return v, nil
		}
	}
	return GenderUnset, fmt.Errorf("invalid gender %q (want male, female or unknown)", s)
}
