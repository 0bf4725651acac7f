// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

// Account identifies a participant. Authentication happens before the engine
// sees it.
type Account string

// GenesisDescription is the description of the placeholder proposal with id 0.
const GenesisDescription = "GENESIS"

// GenesisProposalID is the id of the placeholder proposal.
const GenesisProposalID uint64 = 0

type Voter struct {
	IsRegistered    bool   `json:"is_registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID uint64 `json:"voted_proposal_id"`
}

type Proposal struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
	VoteCount   uint64 `json:"vote_count"`
}

// Leader is the live (winning proposal, vote count) pair.
type Leader struct {
	ProposalID uint64 `json:"winning_proposal_id"`
	MaxVotes   uint64 `json:"max_votes"`
}

// Snapshot is a consistent copy of everything world-readable about a ballot.
type Snapshot struct {
	Administrator Account        `json:"administrator"`
	Status        WorkflowStatus `json:"status"`
	Leader        Leader         `json:"leader"`
	ProposalCount int            `json:"proposal_count"`
	VoterCount    int            `json:"voter_count"`
	VotesCast     uint64         `json:"votes_cast"`
}
