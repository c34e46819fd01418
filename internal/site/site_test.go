package site

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		siteName   string
		category   string
		locality   string
		region     string
		postalCode string
		phone      string
		wantErr    bool
	}{
		{
			name:       "complete record",
			siteName:   "Isle Royale",
			category:   "National Park",
			locality:   "Houghton",
			region:     "MI",
			postalCode: "49931",
			phone:      "(906) 482-0984",
		},
		{
			name:       "empty category allowed",
			siteName:   "Motor Cities",
			locality:   "Detroit",
			region:     "MI",
			postalCode: "48243",
			phone:      "313-259-3425",
		},
		{
			name:       "postal code with extension",
			siteName:   "Yellowstone",
			category:   "National Park",
			locality:   "Yellowstone National Park",
			region:     "WY",
			postalCode: "82190-0168",
			phone:      "307-344-7381",
		},
		{
			name:       "missing name",
			locality:   "Houghton",
			region:     "MI",
			postalCode: "49931",
			phone:      "(906) 482-0984",
			wantErr:    true,
		},
		{
			name:       "missing region",
			siteName:   "Isle Royale",
			locality:   "Houghton",
			postalCode: "49931",
			phone:      "(906) 482-0984",
			wantErr:    true,
		},
		{
			name:       "missing phone",
			siteName:   "Isle Royale",
			locality:   "Houghton",
			region:     "MI",
			postalCode: "49931",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.siteName, tt.category, tt.locality, tt.region, tt.postalCode, tt.phone)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingField) {
					t.Fatalf("New() error = %v, want ErrMissingField", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if s.PostalCode() != tt.postalCode {
				t.Errorf("PostalCode() = %q, want %q", s.PostalCode(), tt.postalCode)
			}
			if want := tt.locality + ", " + tt.region; s.Address() != want {
				t.Errorf("Address() = %q, want %q", s.Address(), want)
			}
		})
	}
}

func TestSite_Info(t *testing.T) {
	s, err := New("Isle Royale", "National Park", "Houghton", "MI", "49931", "(906) 482-0984")
	if err != nil {
		t.Fatal(err)
	}

	want := "Isle Royale (National Park): Houghton, MI 49931"
	if got := s.Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestIsState(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Michigan", true},
		{"michigan", true},
		{"  NEW YORK ", true},
		{"district of columbia", true},
		{"national", true},
		{"virgin islands", true},
		{"Narnia", false},
		{"mich", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsState(NormalizeState(tt.input)); got != tt.want {
				t.Errorf("IsState(NormalizeState(%q)) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStateCount(t *testing.T) {
	if got := StateCount(); got != 57 {
		t.Errorf("StateCount() = %d, want 57", got)
	}
}
