// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/models"
	"github.com/danielhkuo/quickly-ballot/testutil"
)

func uint64Ptr(v uint64) *uint64 { return &v }

func TestAddProposal(t *testing.T) {
	engine := testutil.NewTestEngine(t)
	testutil.RegisterVoters(t, engine, alice)
	testutil.AdvanceTo(t, engine, ballot.ProposalsRegistrationStarted)
	handler := NewVotingHandler(engine)

	for i, desc := range []string{"Pizza", "Sushi"} {
		w := serve(handler.AddProposal, signed("POST", "/proposals", models.AddProposalRequest{Description: desc}, alice))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.AddProposalResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ProposalID != uint64(i+1) {
			t.Errorf("Expected proposal id %d, got %d", i+1, resp.ProposalID)
		}
		if resp.Description != desc {
			t.Errorf("Expected description %q, got %q", desc, resp.Description)
		}
	}
}

func TestAddProposalErrors(t *testing.T) {
	engine := testutil.NewTestEngine(t)
	testutil.RegisterVoters(t, engine, alice)
	handler := NewVotingHandler(engine)

	// Registration has not started yet
	w := serve(handler.AddProposal, signed("POST", "/proposals", models.AddProposalRequest{Description: "Early"}, alice))
	assertErrorCode(t, w, http.StatusConflict, "invalid_workflow_transition")

	testutil.AdvanceTo(t, engine, ballot.ProposalsRegistrationStarted)

	testCases := []struct {
		name   string
		desc   string
		caller ballot.Account
		status int
		code   string
	}{
		{"not a voter", "Pizza", mallory, http.StatusForbidden, "not_a_registered_voter"},
		{"administrator is not a voter", "Pizza", testutil.TestAdmin, http.StatusForbidden, "not_a_registered_voter"},
		{"empty description", "", alice, http.StatusBadRequest, "empty_proposal_description"},
		// Role is checked before the description
		{"empty from non-voter", "", mallory, http.StatusForbidden, "not_a_registered_voter"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(handler.AddProposal, signed("POST", "/proposals", models.AddProposalRequest{Description: tc.desc}, tc.caller))
			assertErrorCode(t, w, tc.status, tc.code)
		})
	}

	proposals, err := engine.Proposals(alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(proposals) != 1 {
		t.Errorf("Expected only GENESIS after rejections, got %d proposals", len(proposals))
	}
}

func TestSetVote(t *testing.T) {
	engine := testutil.NewTestEngine(t)
	testutil.RegisterVoters(t, engine, alice, bob)
	testutil.AdvanceTo(t, engine, ballot.ProposalsRegistrationStarted)
	testutil.AddTestProposals(t, engine, alice, "Pizza", "Sushi")
	testutil.AdvanceTo(t, engine, ballot.VotingSessionStarted)
	handler := NewVotingHandler(engine)

	w := serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(2)}, alice))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SetVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ProposalID != 2 {
		t.Errorf("Expected proposal 2, got %d", resp.ProposalID)
	}

	// GENESIS is a valid target once real proposals exist
	w = serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(0)}, bob))
	testutil.AssertStatus(t, w, http.StatusOK)

	if engine.WinningProposalID() != 2 || engine.MaxVotes() != 1 {
		t.Errorf("Expected proposal 2 to lead with 1 vote, got %d with %d",
			engine.WinningProposalID(), engine.MaxVotes())
	}
}

func TestSetVoteErrors(t *testing.T) {
	engine := testutil.NewTestEngine(t)
	testutil.RegisterVoters(t, engine, alice, bob)
	testutil.AdvanceTo(t, engine, ballot.ProposalsRegistrationStarted)
	testutil.AddTestProposals(t, engine, alice, "Pizza", "Sushi")
	testutil.AdvanceTo(t, engine, ballot.VotingSessionStarted)
	if err := engine.SetVote(bob, 1); err != nil {
		t.Fatal(err)
	}
	handler := NewVotingHandler(engine)

	t.Run("missing proposal id", func(t *testing.T) {
		w := serve(handler.SetVote, signed("POST", "/votes", map[string]any{}, alice))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		w := serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(999)}, alice))
		resp := assertErrorCode(t, w, http.StatusNotFound, "proposal_not_found")
		if resp.Details["requested"] != float64(999) || resp.Details["highest"] != float64(2) {
			t.Errorf("Unexpected details: %v", resp.Details)
		}
	})

	t.Run("already voted", func(t *testing.T) {
		w := serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(2)}, bob))
		assertErrorCode(t, w, http.StatusConflict, "already_voted")
	})

	t.Run("not a voter", func(t *testing.T) {
		w := serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(1)}, mallory))
		assertErrorCode(t, w, http.StatusForbidden, "not_a_registered_voter")
	})

	if engine.Snapshot().VotesCast != 1 {
		t.Errorf("Expected one vote cast, got %d", engine.Snapshot().VotesCast)
	}
}

func TestSetVoteOutsideSession(t *testing.T) {
	engine := testutil.NewTestEngine(t)
	testutil.RegisterVoters(t, engine, alice)
	testutil.AdvanceTo(t, engine, ballot.ProposalsRegistrationStarted)
	testutil.AddTestProposals(t, engine, alice, "Pizza")
	handler := NewVotingHandler(engine)

	w := serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(1)}, alice))
	assertErrorCode(t, w, http.StatusConflict, "invalid_workflow_transition")

	testutil.AdvanceTo(t, engine, ballot.VotingSessionEnded)
	w = serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(1)}, alice))
	assertErrorCode(t, w, http.StatusConflict, "invalid_workflow_transition")
}

func TestSetVoteNotCommitted(t *testing.T) {
	var unavailable atomic.Bool
	engine := testutil.NewTestEngine(t, ballot.WithCommitter(ballot.CommitterFunc(func(evt ballot.Event) error {
		if unavailable.Load() {
			return errors.New("journal unavailable")
		}
		return nil
	})))
	testutil.RegisterVoters(t, engine, alice)
	testutil.AdvanceTo(t, engine, ballot.ProposalsRegistrationStarted)
	testutil.AddTestProposals(t, engine, alice, "Pizza")
	testutil.AdvanceTo(t, engine, ballot.VotingSessionStarted)
	handler := NewVotingHandler(engine)

	unavailable.Store(true)
	w := serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(1)}, alice))
	resp := assertErrorCode(t, w, http.StatusServiceUnavailable, "commit_failed")
	if resp.Details["kind"] != string(ballot.EventVoteCast) {
		t.Errorf("Expected kind detail %q, got %v", ballot.EventVoteCast, resp.Details["kind"])
	}

	// Retrying once the journal is back succeeds
	unavailable.Store(false)
	w = serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: uint64Ptr(1)}, alice))
	testutil.AssertStatus(t, w, http.StatusOK)
}
