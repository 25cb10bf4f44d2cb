// Package tests holds helpers for the route tests. The app is built without
// Redis and Postgres, so only the parts that work without storage are covered.
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/lk16/reversi-search/internal"
	"github.com/lk16/reversi-search/internal/config"
	"github.com/lk16/reversi-search/internal/services"
)

const (
	TestToken    = "test-token"
	TestUser     = "test-user"
	TestPassword = "test-password"
)

// NewApp builds an app without external services.
func NewApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "0",
		BasicAuthUsername: TestUser,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
	}

	return internal.BuildApp(cfg, &services.Services{})
}

// Request describes a request sent by Do.
type Request struct {
	Method string
	Path   string
	Body     any
	Token    string
	User     string
	Password string
}

// Do sends request to app and returns the status code and the body.
func Do(t *testing.T, app *fiber.App, request Request) (int, []byte) {
	t.Helper()

	var body io.Reader
	if request.Body != nil {
		data, err := json.Marshal(request.Body)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(request.Method, request.Path, body)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if request.Token != "" {
		req.Header.Set("x-token", request.Token)
	}
	if request.User != "" {
		req.SetBasicAuth(request.User, request.Password)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}
