// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-ballot/ballot"
)

var ErrSequenceGap = errors.New("journal sequence does not match engine")

// Restore replays records through the engine's public commands, so every
// invariant is checked again. The engine must be fresh. If its committer is a
// journal, that journal must have been opened with Open so the replay is not
// appended a second time.
func Restore(ctx context.Context, engine *ballot.Engine, records []Record) error {
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := replay(engine, rec); err != nil {
			return fmt.Errorf("replay seq %d (%s): %w", rec.Seq, rec.Kind, err)
		}
		if got := engine.LastSeq(); got != rec.Seq {
			return fmt.Errorf("%w: record %d applied as %d", ErrSequenceGap, rec.Seq, got)
		}
	}
	return nil
}

func replay(engine *ballot.Engine, rec Record) error {
	evt := rec.Event
	switch rec.Kind {
	case ballot.EventVoterRegistered:
		return engine.AddVoter(rec.Actor, evt.Voter)
	case ballot.EventProposalRegistered:
		return engine.AddProposal(rec.Actor, evt.Description)
	case ballot.EventVoteCast:
		return engine.SetVote(rec.Actor, evt.ProposalID)
	case ballot.EventStatusChanged:
		switch evt.Previous {
		case ballot.RegisteringVoters:
			return engine.StartProposalsRegistering(rec.Actor)
		case ballot.ProposalsRegistrationStarted:
			return engine.EndProposalsRegistering(rec.Actor)
		case ballot.ProposalsRegistrationEnded:
			return engine.StartVotingSession(rec.Actor)
		case ballot.VotingSessionStarted:
			return engine.EndVotingSession(rec.Actor)
		case ballot.VotingSessionEnded:
			return engine.TallyVotes(rec.Actor)
		}
		return fmt.Errorf("no transition leaves %s", evt.Previous)
	}
	return fmt.Errorf("unknown event kind %q", rec.Kind)
}

// Open loads the journal, binds it to the engine's administrator, and replays
// it. The engine should have been built with WithCommitter(j) so that every
// later command is journaled before it is applied.
func (j *Journal) Open(ctx context.Context, engine *ballot.Engine) (int, error) {
	if err := j.Init(ctx, engine.Administrator()); err != nil {
		return 0, err
	}
	records, err := j.Load(ctx)
	if err != nil {
		return 0, err
	}
	if n := len(records); n > 0 {
		j.mu.Lock()
		j.loadedSeq = records[n-1].Seq
		j.mu.Unlock()
	}
	if err := Restore(ctx, engine, records); err != nil {
		return 0, err
	}
	j.logger.Info("journal restored", "events", len(records), "status", engine.WorkflowStatus())
	return len(records), nil
}
