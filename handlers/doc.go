// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Ballot API.

# Handler Types

Each handler is a struct over the ballot engine:

  - WorkflowHandler: voter registration and workflow transitions
  - VotingHandler: proposal registration and vote casting
  - ResultsHandler: status, registry reads, and tallied results

	workflowHandler := handlers.NewWorkflowHandler(engine)

Handlers read the caller from the request context, so they must be mounted
behind middleware.WithAccount. Anonymous requests reach the engine with an
empty account and are rejected by its role checks.

# Workflow

The ballot moves through six statuses, one step at a time:

	RegisteringVoters → ProposalsRegistrationStarted → ProposalsRegistrationEnded
	→ VotingSessionStarted → VotingSessionEnded → VotesTallied

	POST /workflow/start-proposals
	POST /workflow/end-proposals
	POST /workflow/start-voting
	POST /workflow/end-voting
	POST /workflow/tally

# Error Mapping

Engine rejections map to HTTP statuses:

	unauthorized_caller          401
	not_a_registered_voter       403
	empty_proposal_description   400
	proposal_not_found           404
	already_registered           409
	already_voted                409
	invalid_workflow_transition  409
	commit_failed                503

The error body carries the code plus the rejection's fields as details.

# Rankings

RankProposals orders tallied proposals: the winner first, then by vote
count, then by id. Rank labels ("1st", "2nd") come from go-humanize.
*/
package handlers
