package models

import "github.com/danielhkuo/quickly-ballot/ballot"

// Workflow actions accepted by POST /workflow/{action}
const (
	ActionStartProposals = "start-proposals"
	ActionEndProposals   = "end-proposals"
	ActionStartVoting    = "start-voting"
	ActionEndVoting      = "end-voting"
	ActionTally          = "tally"
)

// Request types

type AddVoterRequest struct {
	Voter string `json:"voter"`
}

type AddProposalRequest struct {
	Description string `json:"description"`
}

// ProposalID is a pointer so a missing field can be told apart from GENESIS.
type SetVoteRequest struct {
	ProposalID *uint64 `json:"proposal_id"`
}

// Response types

type AddVoterResponse struct {
	Voter string `json:"voter"`
}

type AddProposalResponse struct {
	ProposalID  uint64 `json:"proposal_id"`
	Description string `json:"description"`
}

type SetVoteResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	Message    string `json:"message"`
}

type TransitionResponse struct {
	Previous ballot.WorkflowStatus `json:"previous"`
	Current  ballot.WorkflowStatus `json:"current"`
}

type StatusResponse struct {
	Administrator     string                `json:"administrator"`
	Status            ballot.WorkflowStatus `json:"status"`
	StatusCode        uint8                 `json:"status_code"`
	WinningProposalID uint64                `json:"winning_proposal_id"`
	MaxVotes          uint64                `json:"max_votes"`
	ProposalCount     int                   `json:"proposal_count"`
	VoterCount        int                   `json:"voter_count"`
	VotesCast         uint64                `json:"votes_cast"`
	PublicReads       bool                  `json:"public_reads"`
}

type VoterResponse struct {
	Account string `json:"account"`
	ballot.Voter
}

type ProposalsResponse struct {
	Proposals []ballot.Proposal `json:"proposals"`
}

type RankedProposal struct {
	Rank      int    `json:"rank"`
	RankLabel string `json:"rank_label"`
	ballot.Proposal
	Share  float64 `json:"share"`
	Winner bool    `json:"winner"`
}

type ResultsResponse struct {
	WinningProposalID uint64           `json:"winning_proposal_id"`
	MaxVotes          uint64           `json:"max_votes"`
	VotesCast         uint64           `json:"votes_cast"`
	VotesCastLabel    string           `json:"votes_cast_label"`
	Rankings          []RankedProposal `json:"rankings"`
}

type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
