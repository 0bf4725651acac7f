// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"strconv"
)

// WorkflowStatus is the phase a ballot is in. Values only ever advance by one.
type WorkflowStatus uint8

const (
	RegisteringVoters WorkflowStatus = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var statusNames = [...]string{
	RegisteringVoters:            "RegisteringVoters",
	ProposalsRegistrationStarted: "ProposalsRegistrationStarted",
	ProposalsRegistrationEnded:   "ProposalsRegistrationEnded",
	VotingSessionStarted:         "VotingSessionStarted",
	VotingSessionEnded:           "VotingSessionEnded",
	VotesTallied:                 "VotesTallied",
}

func (s WorkflowStatus) String() string {
	if s.Valid() {
		return statusNames[s]
	}
	return "WorkflowStatus(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the six known phases.
func (s WorkflowStatus) Valid() bool {
	return int(s) < len(statusNames)
}

// Next returns the immediate successor of s. VotesTallied has none.
func (s WorkflowStatus) Next() (WorkflowStatus, bool) {
	if !s.Valid() || s == VotesTallied {
		return s, false
	}
	return s + 1, true
}

// IsTerminal returns true once votes have been tallied.
func (s WorkflowStatus) IsTerminal() bool {
	return s == VotesTallied
}

func (s WorkflowStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid workflow status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *WorkflowStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseWorkflowStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseWorkflowStatus accepts either the CamelCase name or the numeric code.
func ParseWorkflowStatus(v string) (WorkflowStatus, error) {
	for i, name := range statusNames {
		if name == v {
			return WorkflowStatus(i), nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < len(statusNames) {
		return WorkflowStatus(n), nil
	}
	return 0, fmt.Errorf("unknown workflow status %q", v)
}
