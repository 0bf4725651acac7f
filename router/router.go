// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/cliparse"
	"github.com/danielhkuo/quickly-ballot/handlers"
	"github.com/danielhkuo/quickly-ballot/metrics"
	"github.com/danielhkuo/quickly-ballot/middleware"
)

func NewRouter(engine *ballot.Engine, cfg cliparse.Config, rec *metrics.Recorder, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	workflowHandler := handlers.NewWorkflowHandler(engine)
	votingHandler := handlers.NewVotingHandler(engine)
	resultsHandler := handlers.NewResultsHandler(engine)

	// Registry reads need a signed account unless the ballot is public
	readsRequireAccount := !engine.PublicReads()

	handle := func(pattern string, requireAccount bool, h http.HandlerFunc) {
		h = middleware.WithAccount(cfg.AccountSalt, requireAccount, h)
		if rec != nil {
			h = middleware.WithMetrics(rec, pattern, h)
		}
		mux.HandleFunc(pattern, middleware.WithLogging(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Administration
	handle("POST /voters", true, workflowHandler.AddVoter)
	handle("POST /workflow/{action}", true, workflowHandler.Transition)

	// Voting
	handle("POST /proposals", true, votingHandler.AddProposal)
	handle("POST /votes", true, votingHandler.SetVote)

	// Reads
	handle("GET /status", false, resultsHandler.GetStatus)
	handle("GET /voters/{account}", readsRequireAccount, resultsHandler.GetVoter)
	handle("GET /proposals/{id}", readsRequireAccount, resultsHandler.GetProposal)
	handle("GET /proposals", readsRequireAccount, resultsHandler.ListProposals)
	handle("GET /results", readsRequireAccount, resultsHandler.GetResults)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-ballot API v1"))
	})

	return mux
}
