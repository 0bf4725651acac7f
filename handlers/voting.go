// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
)

type VotingHandler struct {
	engine *ballot.Engine
}

func NewVotingHandler(engine *ballot.Engine) *VotingHandler {
	return &VotingHandler{engine: engine}
}

// AddProposal handles POST /proposals
// An empty description is passed through so the engine can reject it in order
func (h *VotingHandler) AddProposal(w http.ResponseWriter, r *http.Request) {
	var req models.AddProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	caller := callerFrom(r)
	id, err := h.engine.RegisterProposal(caller, req.Description)
	if err != nil {
		writeBallotError(w, err)
		return
	}

	slog.Info("proposal registered", "proposal_id", id, "caller", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.AddProposalResponse{
		ProposalID:  id,
		Description: req.Description,
	})
}

// SetVote handles POST /votes
func (h *VotingHandler) SetVote(w http.ResponseWriter, r *http.Request) {
	var req models.SetVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	caller := callerFrom(r)
	if err := h.engine.SetVote(caller, *req.ProposalID); err != nil {
		writeBallotError(w, err)
		return
	}

	slog.Info("vote cast", "proposal_id", *req.ProposalID, "voter", caller)

	middleware.JSONResponse(w, http.StatusOK, models.SetVoteResponse{
		ProposalID: *req.ProposalID,
		Message:    "Vote recorded",
	})
}
