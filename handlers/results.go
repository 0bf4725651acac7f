// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-ballot/auth"
	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
)

type ResultsHandler struct {
	engine *ballot.Engine
}

func NewResultsHandler(engine *ballot.Engine) *ResultsHandler {
	return &ResultsHandler{engine: engine}
}

// GetStatus handles GET /status
// Always public: status and the current leader are readable by anyone
func (h *ResultsHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Administrator:     string(snap.Administrator),
		Status:            snap.Status,
		StatusCode:        uint8(snap.Status),
		WinningProposalID: snap.Leader.ProposalID,
		MaxVotes:          snap.Leader.MaxVotes,
		ProposalCount:     snap.ProposalCount,
		VoterCount:        snap.VoterCount,
		VotesCast:         snap.VotesCast,
		PublicReads:       h.engine.PublicReads(),
	})
}

// GetVoter handles GET /voters/{account}
func (h *ResultsHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	account, err := auth.NormalizeAccount(r.PathValue("account"))
	if err != nil {
		middleware.ErrorDetailResponse(w, http.StatusBadRequest, "invalid_account", err.Error(), nil)
		return
	}

	voter, err := h.engine.Voter(callerFrom(r), ballot.Account(account))
	if err != nil {
		writeBallotError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterResponse{Account: account, Voter: voter})
}

// GetProposal handles GET /proposals/{id}
func (h *ResultsHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id must be a non-negative integer")
		return
	}

	proposal, err := h.engine.Proposal(callerFrom(r), id)
	if err != nil {
		writeBallotError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposal)
}

// ListProposals handles GET /proposals
func (h *ResultsHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.engine.Proposals(callerFrom(r))
	if err != nil {
		writeBallotError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalsResponse{Proposals: proposals})
}

// GetResults handles GET /results
// Returns 409 until votes are tallied
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	if !snap.Status.IsTerminal() {
		middleware.ErrorDetailResponse(w, http.StatusConflict, "results_sealed",
			"Results are available once votes are tallied",
			map[string]any{"status": snap.Status})
		return
	}

	proposals, err := h.engine.Proposals(callerFrom(r))
	if err != nil {
		writeBallotError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		WinningProposalID: snap.Leader.ProposalID,
		MaxVotes:          snap.Leader.MaxVotes,
		VotesCast:         snap.VotesCast,
		VotesCastLabel:    humanize.Comma(int64(snap.VotesCast)) + " votes",
		Rankings:          RankProposals(proposals, snap.Leader, snap.VotesCast),
	})
}
