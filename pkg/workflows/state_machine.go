package workflows

// StateMachine enforces entity status transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewStateMachine creates a state machine from an explicit transition table
func NewStateMachine(transitions map[string][]string) *StateMachine {
	return &StateMachine{allowedTransitions: transitions}
}

// NewListingLifecycle returns the marketplace listing lifecycle: a listing
// is sold exactly once and SOLD is terminal
func NewListingLifecycle() *StateMachine {
	return NewStateMachine(map[string][]string{
		"AVAILABLE": {"SOLD"},
		"SOLD":      {},
	})
}

// NewCreditLifecycle returns the carbon credit NFT lifecycle: conversion
// burns the credit and CONVERTED is terminal
func NewCreditLifecycle() *StateMachine {
	return NewStateMachine(map[string][]string{
		"OWNED":     {"CONVERTED"},
		"CONVERTED": {},
	})
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}
