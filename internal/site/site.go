package site

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned by New when a required field is empty.
var ErrMissingField = errors.New("missing required field")

// Site is one national site parsed from its detail page.
// Values are immutable once built by New.
type Site struct {
	name       string
	category   string
	address    string
	postalCode string
	phone      string
}

// New builds a Site. Every field except category must be non-empty.
// The address is composed as "<locality>, <region>".
func New(name, category, locality, region, postalCode, phone string) (Site, error) {
	required := []struct {
		field, value string
	}{
		{"name", name},
		{"locality", locality},
		{"region", region},
		{"postal code", postalCode},
		{"phone", phone},
	}
	for _, r := range required {
		if r.value == "" {
			return Site{}, fmt.Errorf("%w: %s", ErrMissingField, r.field)
		}
	}

	return Site{
		name:       name,
		category:   category,
		address:    locality + ", " + region,
		postalCode: postalCode,
		phone:      phone,
	}, nil
}

func (s Site) Name() string       { return s.name }
func (s Site) Category() string   { return s.category }
func (s Site) Address() string    { return s.address }
func (s Site) PostalCode() string { return s.postalCode }
func (s Site) Phone() string      { return s.phone }

// Info renders the one-line menu form, e.g.
// "Isle Royale (National Park): Houghton, MI 49931".
func (s Site) Info() string {
	return fmt.Sprintf("%s (%s): %s %s", s.name, s.category, s.address, s.postalCode)
}
