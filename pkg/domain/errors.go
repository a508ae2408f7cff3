package domain

import "errors"

// ErrAutomatonNotFound is returned when a named automaton cannot be found in a store.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrEmptyStateName is returned by strict editors when a state name is blank.
var ErrEmptyStateName = errors.New("state name cannot be empty")

// ErrDuplicateState is returned by strict editors when a state name is already taken.
var ErrDuplicateState = errors.New("state already exists")

// ErrUnknownState is returned when a state name does not resolve to a state.
var ErrUnknownState = errors.New("unknown state")

// ErrTransitionExists is returned by strict editors when (state, symbol) already has a target.
var ErrTransitionExists = errors.New("transition already exists")

// ErrInvalidName is returned when an automaton name is not usable as a storage key.
var ErrInvalidName = errors.New("invalid automaton name")
