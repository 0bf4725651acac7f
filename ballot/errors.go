// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorizedCaller        = errors.New("unauthorized caller")
	ErrNotARegisteredVoter       = errors.New("not a registered voter")
	ErrAlreadyRegistered         = errors.New("voter already registered")
	ErrInvalidWorkflowTransition = errors.New("invalid workflow transition")
	ErrEmptyProposalDescription  = errors.New("empty proposal description")
	ErrProposalNotFound          = errors.New("proposal not found")
	ErrAlreadyVoted              = errors.New("voter already voted")
	ErrCommitFailed              = errors.New("event commit failed")
)

// UnauthorizedCallerError is returned when a non-administrator issues an
// administrator-only command.
type UnauthorizedCallerError struct {
	Caller Account
}

func (e *UnauthorizedCallerError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnauthorizedCaller, e.Caller)
}

func (e *UnauthorizedCallerError) Unwrap() error { return ErrUnauthorizedCaller }

type NotARegisteredVoterError struct {
	Caller Account
}

func (e *NotARegisteredVoterError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNotARegisteredVoter, e.Caller)
}

func (e *NotARegisteredVoterError) Unwrap() error { return ErrNotARegisteredVoter }

type AlreadyRegisteredError struct {
	Voter Account
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s: %q", ErrAlreadyRegistered, e.Voter)
}

func (e *AlreadyRegisteredError) Unwrap() error { return ErrAlreadyRegistered }

// InvalidWorkflowTransitionError carries the status the ballot was in and the
// status the command needed.
type InvalidWorkflowTransitionError struct {
	Actual   WorkflowStatus
	Required WorkflowStatus
}

func (e *InvalidWorkflowTransitionError) Error() string {
	return fmt.Sprintf("%s: status is %s, requires %s", ErrInvalidWorkflowTransition, e.Actual, e.Required)
}

func (e *InvalidWorkflowTransitionError) Unwrap() error { return ErrInvalidWorkflowTransition }

type EmptyProposalDescriptionError struct {
	Caller Account
}

func (e *EmptyProposalDescriptionError) Error() string {
	return fmt.Sprintf("%s from %q", ErrEmptyProposalDescription, e.Caller)
}

func (e *EmptyProposalDescriptionError) Unwrap() error { return ErrEmptyProposalDescription }

// ProposalNotFoundError carries the requested id and the highest assigned id at
// the time of the request.
type ProposalNotFoundError struct {
	Requested uint64
	Highest   uint64
}

func (e *ProposalNotFoundError) Error() string {
	return fmt.Sprintf("%s: id %d, highest is %d", ErrProposalNotFound, e.Requested, e.Highest)
}

func (e *ProposalNotFoundError) Unwrap() error { return ErrProposalNotFound }

type AlreadyVotedError struct {
	Voter Account
}

func (e *AlreadyVotedError) Error() string {
	return fmt.Sprintf("%s: %q", ErrAlreadyVoted, e.Voter)
}

func (e *AlreadyVotedError) Unwrap() error { return ErrAlreadyVoted }

// CommitError is returned when a command passed every check but its event
// could not be committed. The ballot is left as it was.
type CommitError struct {
	Seq  uint64
	Kind EventKind
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("%s: seq %d (%s): %v", ErrCommitFailed, e.Seq, e.Kind, e.Err)
}

func (e *CommitError) Unwrap() []error { return []error{ErrCommitFailed, e.Err} }

// ErrorCode returns a stable snake_case code for err, or "internal" when err
// is not a ballot rejection.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorizedCaller):
		return "unauthorized_caller"
	case errors.Is(err, ErrNotARegisteredVoter):
		return "not_a_registered_voter"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrInvalidWorkflowTransition):
		return "invalid_workflow_transition"
	case errors.Is(err, ErrEmptyProposalDescription):
		return "empty_proposal_description"
	case errors.Is(err, ErrProposalNotFound):
		return "proposal_not_found"
	case errors.Is(err, ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, ErrCommitFailed):
		return "commit_failed"
	default:
		return "internal"
	}
}
