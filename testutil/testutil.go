// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-ballot/auth"
	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/cliparse"
	"github.com/danielhkuo/quickly-ballot/db"
	"github.com/danielhkuo/quickly-ballot/middleware"
)

// TestAdmin administers every engine built by NewTestEngine
const TestAdmin ballot.Account = "0xAdmin"

// SetupTestDB opens a private in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeMemory,
		AdminAccount: string(TestAdmin),
		AccountSalt:  "test-account-salt",
	}
}

// NewTestEngine creates an engine administered by TestAdmin
func NewTestEngine(t *testing.T, opts ...ballot.Option) *ballot.Engine {
	t.Helper()

	engine, err := ballot.NewEngine(TestAdmin, opts...)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

// RegisterVoters adds each account as a voter
func RegisterVoters(t *testing.T, engine *ballot.Engine, voters ...ballot.Account) {
	t.Helper()

	for _, v := range voters {
		if err := engine.AddVoter(TestAdmin, v); err != nil {
			t.Fatalf("Failed to register voter %s: %v", v, err)
		}
	}
}

// AddTestProposals registers each description on behalf of author
func AddTestProposals(t *testing.T, engine *ballot.Engine, author ballot.Account, descriptions ...string) {
	t.Helper()

	for _, d := range descriptions {
		if err := engine.AddProposal(author, d); err != nil {
			t.Fatalf("Failed to add proposal %q: %v", d, err)
		}
	}
}

// AdvanceTo runs workflow transitions until the engine reaches target
func AdvanceTo(t *testing.T, engine *ballot.Engine, target ballot.WorkflowStatus) {
	t.Helper()

	steps := map[ballot.WorkflowStatus]func(ballot.Account) error{
		ballot.RegisteringVoters:            engine.StartProposalsRegistering,
		ballot.ProposalsRegistrationStarted: engine.EndProposalsRegistering,
		ballot.ProposalsRegistrationEnded:   engine.StartVotingSession,
		ballot.VotingSessionStarted:         engine.EndVotingSession,
		ballot.VotingSessionEnded:           engine.TallyVotes,
	}
	for engine.WorkflowStatus() < target {
		current := engine.WorkflowStatus()
		if err := steps[current](TestAdmin); err != nil {
			t.Fatalf("Failed to leave %s: %v", current, err)
		}
	}
}

// SignedHeaders returns the identity headers for account
func SignedHeaders(cfg cliparse.Config, account ballot.Account) map[string]string {
	return map[string]string{
		middleware.HeaderAccount:          string(account),
		middleware.HeaderAccountSignature: auth.SignAccount(string(account), cfg.AccountSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
