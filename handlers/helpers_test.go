// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
	"github.com/danielhkuo/quickly-ballot/testutil"
)

const (
	alice   ballot.Account = "0xAlice"
	bob     ballot.Account = "0xBob"
	charlie ballot.Account = "0xCharlie"
	mallory ballot.Account = "0xMallory"
)

// serve runs h behind the account middleware, the way the router mounts it
func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	cfg := testutil.GetTestConfig()
	w := httptest.NewRecorder()
	middleware.WithAccount(cfg.AccountSalt, false, h)(w, req)
	return w
}

// signed builds a request carrying account's identity headers
func signed(method, path string, body any, account ballot.Account) *http.Request {
	var headers map[string]string
	if account != "" {
		headers = testutil.SignedHeaders(testutil.GetTestConfig(), account)
	}
	return testutil.MakeRequest(method, path, body, headers)
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) models.ErrorResponse {
	t.Helper()
	testutil.AssertStatus(t, w, status)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Code != code {
		t.Errorf("Expected code %q, got %q (%s)", code, resp.Code, resp.Message)
	}
	return resp
}
