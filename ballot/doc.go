// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot implements the ballot engine: a single administrator drives a
fixed workflow in which registered voters submit proposals and then cast one
vote each.

# Workflow

	RegisteringVoters → ProposalsRegistrationStarted → ProposalsRegistrationEnded
	  → VotingSessionStarted → VotingSessionEnded → VotesTallied

Every transition is administrator-only and moves exactly one step. Starting
proposal registration creates the GENESIS proposal (id 0).

# Usage

	engine, err := ballot.NewEngine("admin", ballot.WithNotifier(bus))
	engine.AddVoter("admin", "alice")
	engine.StartProposalsRegistering("admin")
	engine.AddProposal("alice", "Pizza on Fridays")

# Leader tracking

The winning proposal is updated as each vote lands, and only when a proposal
strictly exceeds the current maximum. On a tie the proposal that reached the
count first keeps the lead.

# Errors

Rejected commands return a typed error (for example *ProposalNotFoundError)
that also matches its sentinel with errors.Is. A rejected command never
changes state or emits an event.

# Committing

WithCommitter installs a sink that receives each numbered event before its
mutation is applied. If Commit fails, the command returns a *CommitError and
the ballot is left exactly as it was, sequence number included.
*/
package ballot
