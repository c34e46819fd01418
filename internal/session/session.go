package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/nps-sites/internal/logger"
	"github.com/pfrederiksen/nps-sites/internal/places"
	"github.com/pfrederiksen/nps-sites/internal/site"
)

const (
	StatePrompt     = "Enter a state name (e.g. Michigan, michigan) or \"exit\"\n:"
	SelectionPrompt = "Choose number for detail search or \"exit\" or \"back\"\n:"
	Farewell        = "Bye!"

	bannerRule = "----------------------------------------"
	errorRule  = "--------------------------"
)

// SiteSource resolves states and scrapes their sites.
type SiteSource interface {
	StateURL(state string) (string, error)
	SitesForState(stateURL string) ([]site.Site, error)
}

// PlaceFinder looks up places near a postal code.
type PlaceFinder interface {
	FindNearby(postalCode string) ([]places.Place, error)
}

// Session is one interactive exploration run.
type Session struct {
	sites  SiteSource
	finder PlaceFinder
	in     *bufio.Scanner
	out    io.Writer

	state     State
	stateName string
	current   []site.Site
}

// New creates a session reading commands from in and writing to out.
func New(sites SiteSource, finder PlaceFinder, in io.Reader, out io.Writer) *Session {
	return &Session{
		sites:  sites,
		finder: finder,
		in:     bufio.NewScanner(in),
		out:    out,
		state:  AwaitingState,
	}
}

// State returns the current navigation state.
func (s *Session) State() State {
	return s.state
}

// Sites returns the site list currently on screen.
func (s *Session) Sites() []site.Site {
	return s.current
}

// Run drives the loop until the user exits or input ends. Failures of
// individual actions are reported and the loop continues; only a read
// error on the input is returned.
func (s *Session) Run() error {
	for s.state != Exit {
		if s.state == AwaitingState {
			fmt.Fprint(s.out, StatePrompt)
		} else {
			fmt.Fprint(s.out, SelectionPrompt)
		}

		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			fmt.Fprintln(s.out)
			s.state = Exit
			break
		}

		s.Handle(s.in.Text())
	}

	fmt.Fprintln(s.out, Farewell)
	return nil
}

// Handle applies one line of input.
func (s *Session) Handle(input string) {
	step := Transition(s.state, input, len(s.current))

	switch step.Action {
	case ActionRejectState:
		fmt.Fprintln(s.out, "[Error] Enter proper state name")

	case ActionRejectSelection:
		fmt.Fprintln(s.out, "[Error] Invalid input")
		fmt.Fprintln(s.out, errorRule)

	case ActionLoadState:
		if err := s.loadState(step.State); err != nil {
			logger.Error("loading state failed", logger.Fields{"state": step.State}, err)
			fmt.Fprintf(s.out, "[Error] Could not load sites for %s\n", step.State)
			s.current = nil
			s.state = AwaitingState
			return
		}
		logger.IncrCounter("session.state_loaded")

	case ActionShowNearby:
		s.showNearby(s.current[step.Index])

	case ActionBack:
		s.current = nil
		s.stateName = ""
	}

	s.state = step.Next
}

func (s *Session) loadState(name string) error {
	stateURL, err := s.sites.StateURL(name)
	if err != nil {
		return err
	}

	sites, err := s.sites.SitesForState(stateURL)
	if err != nil {
		return err
	}

	s.stateName = name
	s.current = sites

	fmt.Fprintln(s.out, bannerRule)
	fmt.Fprintf(s.out, "List of national sites in %s\n", name)
	fmt.Fprintln(s.out, bannerRule)
	for i, st := range sites {
		logger.Debug("site loaded", logger.Fields{
			"state":    name,
			"name":     st.Name(),
			"category": st.Category(),
			"address":  st.Address(),
			"phone":    st.Phone(),
		})
		fmt.Fprintf(s.out, "[%d] %s\n", i+1, st.Info())
	}
	return nil
}

func (s *Session) showNearby(st site.Site) {
	results, err := s.finder.FindNearby(st.PostalCode())
	if err != nil {
		logger.Error("nearby lookup failed", logger.Fields{"state": s.stateName, "site": st.Name(), "postal_code": st.PostalCode()}, err)
		fmt.Fprintf(s.out, "[Error] Could not find places near %s\n", st.Name())
		return
	}
	logger.IncrCounter("session.nearby_lookup")

	var b strings.Builder
	fmt.Fprintln(&b, bannerRule)
	fmt.Fprintf(&b, "Places near %s\n", st.Name())
	fmt.Fprintln(&b, bannerRule)
	for _, p := range results {
		fmt.Fprintln(&b, p.Line())
	}
	fmt.Fprint(s.out, b.String())
}
