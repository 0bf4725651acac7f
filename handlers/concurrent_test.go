// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/models"
	"github.com/danielhkuo/quickly-ballot/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different voters
// are all counted exactly once
func TestConcurrentVotes(t *testing.T) {
	engine := testutil.NewTestEngine(t)
	handler := NewVotingHandler(engine)

	numVoters := 30
	voters := make([]ballot.Account, numVoters)
	for i := range voters {
		voters[i] = ballot.Account(fmt.Sprintf("0xVoter%02d", i))
	}
	testutil.RegisterVoters(t, engine, voters...)
	testutil.AdvanceTo(t, engine, ballot.ProposalsRegistrationStarted)
	testutil.AddTestProposals(t, engine, voters[0], "A", "B", "C")
	testutil.AdvanceTo(t, engine, ballot.VotingSessionStarted)

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			id := uint64(idx%3 + 1)
			w := serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: &id}, voters[idx]))
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	proposals, err := engine.Proposals(voters[0])
	if err != nil {
		t.Fatal(err)
	}
	var total uint64
	for _, p := range proposals[1:] {
		if p.VoteCount != 10 {
			t.Errorf("Expected 10 votes for proposal %d, got %d", p.ID, p.VoteCount)
		}
		total += p.VoteCount
	}
	if total != uint64(numVoters) || engine.Snapshot().VotesCast != uint64(numVoters) {
		t.Errorf("Expected %d votes in total, got %d", numVoters, total)
	}
	if engine.MaxVotes() != 10 {
		t.Errorf("Expected max votes 10, got %d", engine.MaxVotes())
	}
}

// TestConcurrentDoubleVote verifies that when one voter sends many votes at
// once, exactly one is accepted
func TestConcurrentDoubleVote(t *testing.T) {
	engine := testutil.NewTestEngine(t)
	handler := NewVotingHandler(engine)

	testutil.RegisterVoters(t, engine, alice)
	testutil.AdvanceTo(t, engine, ballot.ProposalsRegistrationStarted)
	testutil.AddTestProposals(t, engine, alice, "A", "B")
	testutil.AdvanceTo(t, engine, ballot.VotingSessionStarted)

	numAttempts := 10
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			id := uint64(idx%2 + 1)
			w := serve(handler.SetVote, signed("POST", "/votes", models.SetVoteRequest{ProposalID: &id}, alice))
			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted vote, got %d", successCount.Load())
	}
	if int(conflictCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}
	if engine.MaxVotes() != 1 {
		t.Errorf("Expected max votes 1, got %d", engine.MaxVotes())
	}
}
