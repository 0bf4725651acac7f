// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkflowStatusNext(t *testing.T) {
	tests := []struct {
		from WorkflowStatus
		to   WorkflowStatus
		ok   bool
	}{
		{RegisteringVoters, ProposalsRegistrationStarted, true},
		{ProposalsRegistrationStarted, ProposalsRegistrationEnded, true},
		{ProposalsRegistrationEnded, VotingSessionStarted, true},
		{VotingSessionStarted, VotingSessionEnded, true},
		{VotingSessionEnded, VotesTallied, true},
		{VotesTallied, VotesTallied, false},
		{WorkflowStatus(9), WorkflowStatus(9), false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			to, ok := tt.from.Next()
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.to, to)
		})
	}
}

func TestWorkflowStatusText(t *testing.T) {
	b, err := json.Marshal(map[string]WorkflowStatus{"s": VotingSessionStarted})
	require.NoError(t, err)
	require.JSONEq(t, `{"s":"VotingSessionStarted"}`, string(b))

	var out map[string]WorkflowStatus
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, VotingSessionStarted, out["s"])

	_, err = WorkflowStatus(6).MarshalText()
	require.Error(t, err)
	require.Equal(t, "WorkflowStatus(6)", WorkflowStatus(6).String())
}

func TestParseWorkflowStatus(t *testing.T) {
	s, err := ParseWorkflowStatus("3")
	require.NoError(t, err)
	require.Equal(t, VotingSessionStarted, s)

	s, err = ParseWorkflowStatus("VotesTallied")
	require.NoError(t, err)
	require.Equal(t, VotesTallied, s)

	_, err = ParseWorkflowStatus("6")
	require.Error(t, err)
	_, err = ParseWorkflowStatus("Closed")
	require.Error(t, err)
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		msg      string
	}{
		{&UnauthorizedCallerError{Caller: "bob"}, ErrUnauthorizedCaller, `unauthorized caller: "bob"`},
		{&NotARegisteredVoterError{Caller: "bob"}, ErrNotARegisteredVoter, `not a registered voter: "bob"`},
		{&AlreadyRegisteredError{Voter: "bob"}, ErrAlreadyRegistered, `voter already registered: "bob"`},
		{&InvalidWorkflowTransitionError{Actual: VotesTallied, Required: RegisteringVoters}, ErrInvalidWorkflowTransition,
			"invalid workflow transition: status is VotesTallied, requires RegisteringVoters"},
		{&EmptyProposalDescriptionError{Caller: "bob"}, ErrEmptyProposalDescription, `empty proposal description from "bob"`},
		{&ProposalNotFoundError{Requested: 7, Highest: 2}, ErrProposalNotFound, "proposal not found: id 7, highest is 2"},
		{&AlreadyVotedError{Voter: "bob"}, ErrAlreadyVoted, `voter already voted: "bob"`},
		{&CommitError{Seq: 3, Kind: EventVoteCast, Err: errors.New("disk full")}, ErrCommitFailed,
			"event commit failed: seq 3 (ballot.vote_cast): disk full"},
	}
	for _, tt := range tests {
		require.True(t, errors.Is(tt.err, tt.sentinel), tt.msg)
		require.Equal(t, tt.msg, tt.err.Error())
	}
}

func TestErrorCode(t *testing.T) {
	require.Equal(t, "unauthorized_caller", ErrorCode(&UnauthorizedCallerError{Caller: "bob"}))
	require.Equal(t, "not_a_registered_voter", ErrorCode(&NotARegisteredVoterError{}))
	require.Equal(t, "already_registered", ErrorCode(&AlreadyRegisteredError{}))
	require.Equal(t, "invalid_workflow_transition", ErrorCode(&InvalidWorkflowTransitionError{}))
	require.Equal(t, "empty_proposal_description", ErrorCode(&EmptyProposalDescriptionError{}))
	require.Equal(t, "proposal_not_found", ErrorCode(&ProposalNotFoundError{}))
	require.Equal(t, "already_voted", ErrorCode(&AlreadyVotedError{}))
	require.Equal(t, "commit_failed", ErrorCode(&CommitError{Seq: 3, Err: errors.New("disk full")}))
	require.Equal(t, "internal", ErrorCode(errors.New("boom")))
}
