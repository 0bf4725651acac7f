// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"log/slog"
	"sync"
)

var ErrNoAdministrator = errors.New("administrator account is required")

// Engine runs a single ballot. All mutations are serialized; reads see the
// state left by the last completed mutation.
type Engine struct {
	mu     sync.RWMutex
	emitMu sync.Mutex

	admin     Account
	status    WorkflowStatus
	voters    map[Account]Voter
	proposals []Proposal
	leader    Leader
	votesCast uint64
	seq       uint64

	publicReads bool
	notifier    Notifier
	committer   Committer
	onReject    func(op string, err error)
	logger      *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithCommitter makes c part of every mutation. A command whose event c fails
// to commit is rejected and leaves no trace.
func WithCommitter(c Committer) Option {
	return func(e *Engine) { e.committer = c }
}

// WithPublicReads lets any caller use Voter, Proposal and Proposals.
func WithPublicReads() Option {
	return func(e *Engine) { e.publicReads = true }
}

// WithRejectionHook is called, outside the state lock, for every rejected command.
func WithRejectionHook(fn func(op string, err error)) Option {
	return func(e *Engine) { e.onReject = fn }
}

func NewEngine(admin Account, opts ...Option) (*Engine, error) {
	if admin == "" {
		return nil, ErrNoAdministrator
	}
	e := &Engine{
		admin:  admin,
		status: RegisteringVoters,
		voters: make(map[Account]Voter),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// apply runs check under the write lock. If it passes, the event is numbered
// and handed to the committer; only once that succeeds does mutate run and the
// state change become visible. Notification happens after the state lock is
// dropped but before any later mutation can notify its own.
func (e *Engine) apply(op string, caller Account, check func() (Event, func(), error)) (Event, error) {
	e.mu.Lock()
	evt, mutate, err := check()
	if err == nil {
		evt.Seq = e.seq + 1
		evt.Actor = caller
		err = e.commitLocked(evt)
	}
	if err != nil {
		e.mu.Unlock()
		if errors.Is(err, ErrCommitFailed) {
			e.logger.Error("ballot command not committed", "op", op, "caller", caller, "error", err)
		} else {
			e.logger.Debug("ballot command rejected", "op", op, "caller", caller, "error", err)
		}
		if e.onReject != nil {
			e.onReject(op, err)
		}
		return Event{}, err
	}
	mutate()
	e.seq = evt.Seq
	e.emitMu.Lock()
	e.mu.Unlock()
	defer e.emitMu.Unlock()
	if e.notifier != nil {
		e.notifier.Notify(evt)
	}
	return evt, nil
}

func (e *Engine) commitLocked(evt Event) error {
	if e.committer == nil {
		return nil
	}
	if err := e.committer.Commit(evt); err != nil {
		return &CommitError{Seq: evt.Seq, Kind: evt.Kind, Err: err}
	}
	return nil
}

func (e *Engine) requireAdminLocked(caller Account) error {
	if caller != e.admin {
		return &UnauthorizedCallerError{Caller: caller}
	}
	return nil
}

func (e *Engine) requireVoterLocked(caller Account) error {
	if !e.voters[caller].IsRegistered {
		return &NotARegisteredVoterError{Caller: caller}
	}
	return nil
}

func (e *Engine) requireStatusLocked(required WorkflowStatus) error {
	if e.status != required {
		return &InvalidWorkflowTransitionError{Actual: e.status, Required: required}
	}
	return nil
}

func (e *Engine) highestLocked() uint64 {
	if len(e.proposals) == 0 {
		return 0
	}
	return uint64(len(e.proposals) - 1)
}

func (e *Engine) AddVoter(caller, voter Account) error {
	_, err := e.apply("add_voter", caller, func() (Event, func(), error) {
		if err := e.requireAdminLocked(caller); err != nil {
			return Event{}, nil, err
		}
		if err := e.requireStatusLocked(RegisteringVoters); err != nil {
			return Event{}, nil, err
		}
		if e.voters[voter].IsRegistered {
			return Event{}, nil, &AlreadyRegisteredError{Voter: voter}
		}
		return Event{Kind: EventVoterRegistered, Voter: voter}, func() {
			e.voters[voter] = Voter{IsRegistered: true}
		}, nil
	})
	return err
}

func (e *Engine) AddProposal(caller Account, description string) error {
	_, err := e.RegisterProposal(caller, description)
	return err
}

// RegisterProposal is AddProposal that also reports the id it assigned.
func (e *Engine) RegisterProposal(caller Account, description string) (uint64, error) {
	evt, err := e.apply("add_proposal", caller, func() (Event, func(), error) {
		if err := e.requireVoterLocked(caller); err != nil {
			return Event{}, nil, err
		}
		if err := e.requireStatusLocked(ProposalsRegistrationStarted); err != nil {
			return Event{}, nil, err
		}
		if description == "" {
			return Event{}, nil, &EmptyProposalDescriptionError{Caller: caller}
		}
		id := uint64(len(e.proposals))
		return Event{Kind: EventProposalRegistered, ProposalID: id, Description: description}, func() {
			e.proposals = append(e.proposals, Proposal{ID: id, Description: description})
		}, nil
	})
	return evt.ProposalID, err
}

// SetVote records caller's single vote. Nothing can be voted for until at
// least one proposal besides GENESIS exists.
func (e *Engine) SetVote(caller Account, proposalID uint64) error {
	_, err := e.apply("set_vote", caller, func() (Event, func(), error) {
		if err := e.requireVoterLocked(caller); err != nil {
			return Event{}, nil, err
		}
		if err := e.requireStatusLocked(VotingSessionStarted); err != nil {
			return Event{}, nil, err
		}
		if e.voters[caller].HasVoted {
			return Event{}, nil, &AlreadyVotedError{Voter: caller}
		}
		highest := e.highestLocked()
		if highest < 1 || proposalID > highest {
			return Event{}, nil, &ProposalNotFoundError{Requested: proposalID, Highest: highest}
		}

		return Event{Kind: EventVoteCast, Voter: caller, ProposalID: proposalID}, func() {
			e.voters[caller] = Voter{IsRegistered: true, HasVoted: true, VotedProposalID: proposalID}
			e.proposals[proposalID].VoteCount++
			e.votesCast++

			// Strictly greater: the first proposal to reach a count keeps the lead.
			if count := e.proposals[proposalID].VoteCount; count > e.leader.MaxVotes {
				e.leader = Leader{ProposalID: proposalID, MaxVotes: count}
			}
		}, nil
	})
	return err
}

func (e *Engine) transition(op string, caller Account, from WorkflowStatus, onEnter func()) error {
	_, err := e.apply(op, caller, func() (Event, func(), error) {
		if err := e.requireAdminLocked(caller); err != nil {
			return Event{}, nil, err
		}
		if err := e.requireStatusLocked(from); err != nil {
			return Event{}, nil, err
		}
		to, _ := from.Next()
		return Event{Kind: EventStatusChanged, Previous: from, Current: to}, func() {
			if onEnter != nil {
				onEnter()
			}
			e.status = to
			e.logger.Info("workflow status changed", "previous", from, "current", to)
		}, nil
	})
	return err
}

func (e *Engine) StartProposalsRegistering(caller Account) error {
	return e.transition("start_proposals_registering", caller, RegisteringVoters, func() {
		e.proposals = append(e.proposals, Proposal{ID: GenesisProposalID, Description: GenesisDescription})
	})
}

func (e *Engine) EndProposalsRegistering(caller Account) error {
	return e.transition("end_proposals_registering", caller, ProposalsRegistrationStarted, nil)
}

func (e *Engine) StartVotingSession(caller Account) error {
	return e.transition("start_voting_session", caller, ProposalsRegistrationEnded, nil)
}

func (e *Engine) EndVotingSession(caller Account) error {
	return e.transition("end_voting_session", caller, VotingSessionStarted, nil)
}

// TallyVotes closes the ballot. The leader has been tracked all along, so this
// only freezes it.
func (e *Engine) TallyVotes(caller Account) error {
	return e.transition("tally_votes", caller, VotingSessionEnded, func() {
		e.logger.Info("votes tallied",
			"winning_proposal_id", e.leader.ProposalID,
			"max_votes", e.leader.MaxVotes,
			"votes_cast", e.votesCast,
		)
	})
}

func (e *Engine) checkReaderLocked(caller Account) error {
	if e.publicReads {
		return nil
	}
	return e.requireVoterLocked(caller)
}

// Voter returns the record for id. Unknown ids yield the zero Voter.
func (e *Engine) Voter(caller, id Account) (Voter, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.checkReaderLocked(caller); err != nil {
		return Voter{}, err
	}
	return e.voters[id], nil
}

func (e *Engine) Proposal(caller Account, id uint64) (Proposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.checkReaderLocked(caller); err != nil {
		return Proposal{}, err
	}
	if id >= uint64(len(e.proposals)) {
		return Proposal{}, &ProposalNotFoundError{Requested: id, Highest: e.highestLocked()}
	}
	return e.proposals[id], nil
}

// Proposals returns every proposal, GENESIS included, ordered by id.
func (e *Engine) Proposals(caller Account) ([]Proposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.checkReaderLocked(caller); err != nil {
		return nil, err
	}
	out := make([]Proposal, len(e.proposals))
	copy(out, e.proposals)
	return out, nil
}

func (e *Engine) WorkflowStatus() WorkflowStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

func (e *Engine) WinningProposalID() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.leader.ProposalID
}

func (e *Engine) MaxVotes() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.leader.MaxVotes
}

func (e *Engine) Administrator() Account {
	return e.admin
}

// PublicReads reports whether registry reads skip the voter check.
func (e *Engine) PublicReads() bool {
	return e.publicReads
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Administrator: e.admin,
		Status:        e.status,
		Leader:        e.leader,
		ProposalCount: len(e.proposals),
		VoterCount:    len(e.voters),
		VotesCast:     e.votesCast,
	}
}

// LastSeq is the sequence number of the most recent event.
func (e *Engine) LastSeq() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq
}
