// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/middleware"
)

// writeBallotError maps an engine rejection to its HTTP status and writes the
// error body with the rejection's fields as details.
func writeBallotError(w http.ResponseWriter, err error) {
	var (
		unauthorized *ballot.UnauthorizedCallerError
		notVoter     *ballot.NotARegisteredVoterError
		registered   *ballot.AlreadyRegisteredError
		transition   *ballot.InvalidWorkflowTransitionError
		empty        *ballot.EmptyProposalDescriptionError
		notFound     *ballot.ProposalNotFoundError
		voted        *ballot.AlreadyVotedError
		commit       *ballot.CommitError
	)

	code := ballot.ErrorCode(err)
	switch {
	case errors.As(err, &unauthorized):
		middleware.ErrorDetailResponse(w, http.StatusUnauthorized, code, err.Error(),
			map[string]any{"caller": unauthorized.Caller})
	case errors.As(err, &notVoter):
		middleware.ErrorDetailResponse(w, http.StatusForbidden, code, err.Error(),
			map[string]any{"caller": notVoter.Caller})
	case errors.As(err, &registered):
		middleware.ErrorDetailResponse(w, http.StatusConflict, code, err.Error(),
			map[string]any{"voter": registered.Voter})
	case errors.As(err, &transition):
		middleware.ErrorDetailResponse(w, http.StatusConflict, code, err.Error(),
			map[string]any{"actual": transition.Actual, "required": transition.Required})
	case errors.As(err, &empty):
		middleware.ErrorDetailResponse(w, http.StatusBadRequest, code, err.Error(),
			map[string]any{"caller": empty.Caller})
	case errors.As(err, &notFound):
		middleware.ErrorDetailResponse(w, http.StatusNotFound, code, err.Error(),
			map[string]any{"requested": notFound.Requested, "highest": notFound.Highest})
	case errors.As(err, &voted):
		middleware.ErrorDetailResponse(w, http.StatusConflict, code, err.Error(),
			map[string]any{"voter": voted.Voter})
	case errors.As(err, &commit):
		middleware.ErrorDetailResponse(w, http.StatusServiceUnavailable, code,
			"The ballot could not record this command, try again",
			map[string]any{"seq": commit.Seq, "kind": commit.Kind})
	default:
		slog.Error("unexpected ballot error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// callerFrom returns the authenticated caller, or "" for anonymous requests.
func callerFrom(r *http.Request) ballot.Account {
	caller, _ := middleware.AccountFromContext(r.Context())
	return caller
}
