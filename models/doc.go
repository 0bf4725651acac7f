// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

  - AddVoterRequest: voter
  - AddProposalRequest: description
  - SetVoteRequest: proposal_id (required, 0 is GENESIS)

# Response Types

  - StatusResponse: workflow status and the current leader
  - VoterResponse, ProposalsResponse: registry reads
  - TransitionResponse: previous and current status
  - ResultsResponse: ranked proposals once votes are tallied
  - ErrorResponse: error, message, code, details

Ballot records (ballot.Voter, ballot.Proposal) are embedded directly, so
their JSON tags are the wire format.
*/
package models
