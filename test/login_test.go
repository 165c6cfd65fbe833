package test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()

	cases := map[string]struct {
		username       string
		password       string
		expectedStatus int
	}{
		"good creds": {
			username:       testUsername,
			password:       testPassword,
			expectedStatus: http.StatusOK,
		},
		"email instead of username": {
			username:       testEmail,
			password:       testPassword,
			expectedStatus: http.StatusOK,
		},
		"bad password": {
			username:       testUsername,
			password:       "bad-password",
			expectedStatus: http.StatusBadRequest,
		},
		"unknown user": {
			username:       "nobody",
			password:       testPassword,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, loginResp := s.login(tc.username, tc.password)
			require.Equal(t, tc.expectedStatus, status)
			if tc.expectedStatus == http.StatusOK {
				assert.NotEmpty(t, loginResp.Token)
				assert.Positive(t, loginResp.UserID)
			}
		})
	}
}

func (s *IntegrationTestSuite) TestRegister_Conflicts() {
	t := s.T()
	ctx := context.Background()

	status, body := s.doWithToken(ctx, "", "POST", "/a/register", map[string]string{
		"username": testUsername,
		"email":    "other@workoutware.test",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, status, string(body))

	status, body = s.doWithToken(ctx, "", "POST", "/a/register", map[string]string{
		"username": "weakling",
		"email":    "weakling@workoutware.test",
		"password": "12345678",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, strings.TrimSpace(string(body)))
}

func (s *IntegrationTestSuite) TestLogout() {
	t := s.T()
	ctx := context.Background()

	token := s.registerAndLogin("leaving", "leaving@workoutware.test", "deadlift-forever")

	status, _ := s.doWithToken(ctx, token, "GET", "/sessions", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := s.doWithToken(ctx, token, "GET", "/a/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "logged-out", string(body))

	// the token is gone
	status, _ = s.doWithToken(ctx, token, "GET", "/sessions", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.doWithToken(ctx, "", "GET", "/sessions", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
