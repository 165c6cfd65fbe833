package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/require"
)

type loginResponse struct {
	Token  string `json:"token"`
	UserID int    `json:"userId"`
}

// do sends a request to the running server as the test user, with body
// marshalled to JSON when not nil.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path string, body any) (int, []byte) {
	return s.doWithToken(ctx, s.token, method, path, body)
}

func (s *IntegrationTestSuite) doWithToken(ctx context.Context, token, method, path string, body any) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBytes
}

// doJSON is do that expects the given status and unmarshals the response into out.
func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path string, body any, expectedStatus int, out any) {
	t := s.T()
	status, respBytes := s.do(ctx, method, path, body)
	require.Equal(t, expectedStatus, status, "%s %s: %s", method, path, respBytes)
	if out != nil {
		require.NoError(t, json.Unmarshal(respBytes, out), string(respBytes))
	}
}

func (s *IntegrationTestSuite) login(username, password string) (int, *loginResponse) {
	t := s.T()
	status, respBytes := s.doWithToken(context.Background(), "", "POST", "/a/login", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusOK {
		return status, nil
	}

	var loginResp loginResponse
	require.NoError(t, json.Unmarshal(respBytes, &loginResp))
	return status, &loginResp
}

func (s *IntegrationTestSuite) registerAndLogin(username, email, password string) string {
	t := s.T()
	status, respBytes := s.doWithToken(context.Background(), "", "POST", "/a/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status, string(respBytes))

	status, loginResp := s.login(username, password)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, loginResp.Token, fmt.Sprintf("login of %s", username))
	return loginResp.Token
}
