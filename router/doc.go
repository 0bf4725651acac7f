// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(engine, cfg, recorder, registry)

The recorder may be nil, in which case per-route metrics are skipped.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Administration (signed administrator account):

	POST /voters            - Register a voter
	POST /workflow/{action} - start-proposals, end-proposals,
	                          start-voting, end-voting, tally

Voting (signed voter account):

	POST /proposals - Register a proposal
	POST /votes     - Cast the caller's vote

Reads:

	GET /status            - Workflow status and current leader (public)
	GET /voters/{account}  - Voter record
	GET /proposals/{id}    - One proposal
	GET /proposals         - All proposals, GENESIS included
	GET /results           - Ranked results once votes are tallied

Registry reads and results require a signed voter account unless the
engine was built with public reads.
*/
package router
