// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

type EventKind string

const (
	EventVoterRegistered    EventKind = "ballot.voter_registered"
	EventProposalRegistered EventKind = "ballot.proposal_registered"
	EventVoteCast           EventKind = "ballot.vote_cast"
	EventStatusChanged      EventKind = "ballot.status_changed"
)

// EventKinds lists every kind the engine emits, in no particular order.
var EventKinds = []EventKind{
	EventVoterRegistered,
	EventProposalRegistered,
	EventVoteCast,
	EventStatusChanged,
}

// Event is emitted once per applied command. Fields that do not apply to a
// kind are left zero.
type Event struct {
	Seq   uint64    `json:"seq"`
	Kind  EventKind `json:"kind"`
	Actor Account   `json:"actor"`

	// voter_registered, vote_cast
	Voter Account `json:"voter,omitempty"`

	// proposal_registered, vote_cast
	ProposalID  uint64 `json:"proposal_id"`
	Description string `json:"description,omitempty"`

	// status_changed
	Previous WorkflowStatus `json:"previous"`
	Current  WorkflowStatus `json:"current"`
}

// Notifier receives events in the order their mutations were applied.
// Notify must not call back into a mutating engine command.
type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(evt Event) { f(evt) }

// Committer makes an event durable before its mutation is applied. Commit is
// called under the engine's write lock, in sequence order, and must not call
// back into the engine.
type Committer interface {
	Commit(Event) error
}

type CommitterFunc func(Event) error

func (f CommitterFunc) Commit(evt Event) error { return f(evt) }
