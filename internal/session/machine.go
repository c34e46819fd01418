package session

import (
	"strconv"
	"strings"

	"github.com/pfrederiksen/nps-sites/internal/site"
)

// State is a navigation state.
type State int

const (
	AwaitingState State = iota
	ShowingSiteList
	Exit
)

func (s State) String() string {
	switch s {
	case AwaitingState:
		return "awaiting_state"
	case ShowingSiteList:
		return "showing_site_list"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Action is the side effect a transition asks for.
type Action int

const (
	ActionRejectState Action = iota
	ActionLoadState
	ActionRejectSelection
	ActionShowNearby
	ActionBack
	ActionExit
)

// Step is the outcome of one transition.
type Step struct {
	Action Action
	Next   State
	State  string // normalized state name for ActionLoadState
	Index  int    // 0-based site index for ActionShowNearby
}

// Transition decides what one line of input does in state cur. listLen is
// the length of the site list currently on screen. Selections are 1-based.
func Transition(cur State, input string, listLen int) Step {
	token := strings.ToLower(strings.TrimSpace(input))

	switch cur {
	case AwaitingState:
		if token == "exit" {
			return Step{Action: ActionExit, Next: Exit}
		}
		if !site.IsState(token) {
			return Step{Action: ActionRejectState, Next: AwaitingState}
		}
		return Step{Action: ActionLoadState, Next: ShowingSiteList, State: token}

	case ShowingSiteList:
		switch token {
		case "exit":
			return Step{Action: ActionExit, Next: Exit}
		case "back":
			return Step{Action: ActionBack, Next: AwaitingState}
		}
		n, err := strconv.Atoi(token)
		if err != nil || n < 1 || n > listLen {
			return Step{Action: ActionRejectSelection, Next: ShowingSiteList}
		}
		return Step{Action: ActionShowNearby, Next: ShowingSiteList, Index: n - 1}
	}

	return Step{Action: ActionExit, Next: Exit}
}
