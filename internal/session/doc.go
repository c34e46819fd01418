// Package session runs the interactive state-by-state exploration loop.
//
// Navigation is a small state machine. Transition is a pure function from the
// current state and one line of input to the next state and the action to
// perform; Session.Run performs the actions against the scraper and places
// client and handles all console I/O.
package session
