// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-ballot/auth"
	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
)

type WorkflowHandler struct {
	engine *ballot.Engine
}

func NewWorkflowHandler(engine *ballot.Engine) *WorkflowHandler {
	return &WorkflowHandler{engine: engine}
}

// AddVoter handles POST /voters
func (h *WorkflowHandler) AddVoter(w http.ResponseWriter, r *http.Request) {
	var req models.AddVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, err := auth.NormalizeAccount(req.Voter)
	if err != nil {
		middleware.ErrorDetailResponse(w, http.StatusBadRequest, "invalid_account", "voter: "+err.Error(), nil)
		return
	}

	caller := callerFrom(r)
	if err := h.engine.AddVoter(caller, ballot.Account(voter)); err != nil {
		writeBallotError(w, err)
		return
	}

	slog.Info("voter registered", "voter", voter)

	middleware.JSONResponse(w, http.StatusCreated, models.AddVoterResponse{Voter: voter})
}

type workflowStep struct {
	from ballot.WorkflowStatus
	run  func(*ballot.Engine, ballot.Account) error
}

var workflowSteps = map[string]workflowStep{
	models.ActionStartProposals: {ballot.RegisteringVoters, (*ballot.Engine).StartProposalsRegistering},
	models.ActionEndProposals:   {ballot.ProposalsRegistrationStarted, (*ballot.Engine).EndProposalsRegistering},
	models.ActionStartVoting:    {ballot.ProposalsRegistrationEnded, (*ballot.Engine).StartVotingSession},
	models.ActionEndVoting:      {ballot.VotingSessionStarted, (*ballot.Engine).EndVotingSession},
	models.ActionTally:          {ballot.VotingSessionEnded, (*ballot.Engine).TallyVotes},
}

// Transition handles POST /workflow/{action}
func (h *WorkflowHandler) Transition(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	step, ok := workflowSteps[action]
	if !ok {
		middleware.ErrorDetailResponse(w, http.StatusNotFound, "unknown_action",
			"unknown workflow action", map[string]any{"action": action})
		return
	}

	if err := step.run(h.engine, callerFrom(r)); err != nil {
		writeBallotError(w, err)
		return
	}

	to, _ := step.from.Next()
	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{
		Previous: step.from,
		Current:  to,
	})
}
