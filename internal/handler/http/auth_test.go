// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FinPay Authors

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/finpay/gateway/internal/utils"
	"github.com/finpay/gateway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, router http.Handler, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeTokenPair(t *testing.T, body []byte) models.TokenPair {
	t.Helper()
	var envelope models.APIResponse[models.TokenPair]
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Equal(t, "success", envelope.Status)
	return envelope.Data
}

func registerAndLogin(t *testing.T, router http.Handler) models.TokenPair {
	t.Helper()

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register",
		`{"firstname":"John","lastname":"Doe","email":"john@example.com","password":"hunter22"}`, "")
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"john@example.com","password":"hunter22"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)

	return decodeTokenPair(t, resp.Body.Bytes())
}

func TestRegisterLoginMe_FullFlow(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()

	pair := registerAndLogin(t, router)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	resp := doJSON(t, router, http.MethodGet, "/api/auth/me", "", pair.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope models.APIResponse[models.User]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "john@example.com", envelope.Data.Email)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()

	body := `{"firstname":"John","lastname":"Doe","email":"john@example.com","password":"hunter22"}`
	resp := doJSON(t, router, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusConflict, resp.Code)

	var errBody models.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "error", errBody.Status)
	assert.NotEmpty(t, errBody.Message)
}

func TestLogin_WrongPasswordUniformErrorBody(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()
	registerAndLogin(t, router)

	resp := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"john@example.com","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var errBody models.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "error", errBody.Status)
	assert.Equal(t, "invalid email or password", errBody.Message)
}

func TestMe_WithoutTokenUnauthorized(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()

	resp := doJSON(t, router, http.MethodGet, "/api/auth/me", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var errBody models.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "error", errBody.Status)
}

func TestMe_ExpiredTokenDistinctMessage(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()
	registerAndLogin(t, router)

	expired, err := utils.GenerateAccessToken("finpay-gateway", 1, -time.Minute, "test-sign-key")
	require.NoError(t, err)

	resp := doJSON(t, router, http.MethodGet, "/api/auth/me", "", expired.SignedString)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var errBody models.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Contains(t, errBody.Message, "expired")
}

func TestRefresh_RotatesAndInvalidatesOldToken(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()
	pair := registerAndLogin(t, router)

	resp := doJSON(t, router, http.MethodPost, "/api/auth/refresh",
		`{"refresh_token":"`+pair.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)

	rotated := decodeTokenPair(t, resp.Body.Bytes())
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the consumed token must be rejected on reuse
	resp = doJSON(t, router, http.MethodPost, "/api/auth/refresh",
		`{"refresh_token":"`+pair.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	// the rotated token still works
	resp = doJSON(t, router, http.MethodPost, "/api/auth/refresh",
		`{"refresh_token":"`+rotated.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRefresh_UnknownToken(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()

	resp := doJSON(t, router, http.MethodPost, "/api/auth/refresh",
		`{"refresh_token":"never-issued"}`, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_RevokesRefreshTokens(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()
	pair := registerAndLogin(t, router)

	resp := doJSON(t, router, http.MethodPost, "/api/auth/logout", "", pair.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	// the refresh token issued before logout is gone
	resp = doJSON(t, router, http.MethodPost, "/api/auth/refresh",
		`{"refresh_token":"`+pair.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRateLimit_RejectsBeforeAuth(t *testing.T) {
	f := newFixture(t, withRateLimitConfig(3, time.Hour))
	router := f.handler.Init()

	// exhaust the bucket with unauthenticated requests
	for i := 0; i < 3; i++ {
		resp := doJSON(t, router, http.MethodGet, "/api/auth/me", "", "")
		require.Equal(t, http.StatusUnauthorized, resp.Code, "request %d should reach auth", i+1)
	}

	// over capacity: 429 wins over 401 even with no credentials at all
	resp := doJSON(t, router, http.MethodGet, "/api/auth/me", "", "")
	require.Equal(t, http.StatusTooManyRequests, resp.Code)

	var errBody models.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "error", errBody.Status)
	assert.Equal(t, "rate limit exceeded", errBody.Message)
}

func TestInvalidJSON_BadRequest(t *testing.T) {
	f := newFixture(t)
	router := f.handler.Init()

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register", `{not json`, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errBody models.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "error", errBody.Status)
}
