// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-ballot/ballot"
)

const admin ballot.Account = "0xAdmin"

func TestRejectionsCountedByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg)

	engine, err := ballot.NewEngine(admin, ballot.WithRejectionHook(rec.ObserveRejection))
	require.NoError(t, err)

	require.Error(t, engine.AddVoter("0xMallory", "0xVoter1"))
	require.Error(t, engine.AddVoter("0xMallory", "0xVoter2"))
	require.NoError(t, engine.AddVoter(admin, "0xVoter1"))
	require.Error(t, engine.AddVoter(admin, "0xVoter1"))

	require.Equal(t, 2.0, testutil.ToFloat64(rec.rejections.WithLabelValues("add_voter", "unauthorized_caller")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.rejections.WithLabelValues("add_voter", "already_registered")))
}

func TestObserveEngineGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg)

	engine, err := ballot.NewEngine(admin)
	require.NoError(t, err)
	rec.Observe(engine)

	require.NoError(t, engine.AddVoter(admin, "0xVoter1"))
	require.NoError(t, engine.StartProposalsRegistering(admin))
	require.NoError(t, engine.AddProposal("0xVoter1", "A"))
	require.NoError(t, engine.EndProposalsRegistering(admin))
	require.NoError(t, engine.StartVotingSession(admin))
	require.NoError(t, engine.SetVote("0xVoter1", 1))

	families, err := reg.Gather()
	require.NoError(t, err)
	got := make(map[string]float64)
	for _, mf := range families {
		if len(mf.GetMetric()) == 1 && mf.GetMetric()[0].GetGauge() != nil {
			got[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}

	require.Equal(t, float64(ballot.VotingSessionStarted), got["ballot_workflow_status"])
	require.Equal(t, 1.0, got["ballot_winning_proposal_id"])
	require.Equal(t, 1.0, got["ballot_max_votes"])
	require.Equal(t, 1.0, got["ballot_votes_cast"])
	require.Equal(t, 1.0, got["ballot_voters_registered"])
	require.Equal(t, 2.0, got["ballot_proposals"])
}

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg)

	rec.ObserveRequest("POST /votes", http.StatusOK, 5*time.Millisecond)
	rec.ObserveRequest("POST /votes", http.StatusConflict, time.Millisecond)
	rec.ObserveRequest("POST /votes", http.StatusOK, time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(rec.requests.WithLabelValues("POST /votes", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.requests.WithLabelValues("POST /votes", "409")))
	require.Equal(t, 1, testutil.CollectAndCount(rec.latency))
}
