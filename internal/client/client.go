package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lk16/reversi-search/internal/config"
	"github.com/lk16/reversi-search/internal/models"
)

const (
	clientTimeout = 30 * time.Second
)

// APIClient talks to the move server.
type APIClient struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	// httpClient sends the requests
	httpClient *http.Client
}

func NewAPIClient(config *config.ClientConfig) *APIClient {
	return &APIClient{
		config: config,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

// logRequestAsCurl logs the request as a curl command at debug level.
func (c *APIClient) logRequestAsCurl(request *http.Request) {
	// Do not build string if we're not logging it
	if !slog.Default().Enabled(request.Context(), slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(request.Method)
	builder.WriteString(" '")
	builder.WriteString(request.URL.String())
	builder.WriteString("'")

	for key, values := range request.Header {
		if strings.EqualFold(key, "x-token") {
			continue
		}

		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if request.Body != nil && request.Body != http.NoBody {
		body, err := io.ReadAll(request.Body)
		if err != nil {
			slog.Debug("Failed to read request body", "error", err)
		}

		if len(body) > 0 {
			builder.WriteString(" -d '")
			builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
			builder.WriteString("'")
		}

		// Restore the original body
		request.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	slog.Debug("Sending request", "curl", builder.String())
}

func (c *APIClient) request(method string, path string, payload any, result any) error {
	var body io.Reader

	if payload == nil {
		body = http.NoBody
	} else {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = buf
	}

	request, err := http.NewRequest(method, c.config.ServerURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	request.Header.Set("x-token", c.config.Token)

	c.logRequestAsCurl(request)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	slog.Debug("Received response", "status", response.Status, "body", string(responseBody))

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errorBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(responseBody, &errorBody) == nil && errorBody.Error != "" {
			return fmt.Errorf("server returned unexpected status %v: %s", response.Status, errorBody.Error)
		}
		return fmt.Errorf("server returned unexpected status %v", response.Status)
	}

	if result == nil {
		return nil
	}

	if err = json.Unmarshal(responseBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// BestMove asks the server to search a position.
func (c *APIClient) BestMove(payload models.MoveRequest) (models.MoveResponse, error) {
	var response models.MoveResponse
	if err := c.request(http.MethodPost, "/api/move", payload, &response); err != nil {
		return models.MoveResponse{}, fmt.Errorf("failed to get move: %w", err)
	}

	return response, nil
}

// PlayGame asks the server to play and store a game.
func (c *APIClient) PlayGame(payload models.GameRequest) (models.GameRecord, error) {
	var record models.GameRecord
	if err := c.request(http.MethodPost, "/api/games", payload, &record); err != nil {
		return models.GameRecord{}, fmt.Errorf("failed to play game: %w", err)
	}

	return record, nil
}

// GetGame loads a stored game.
func (c *APIClient) GetGame(id uuid.UUID) (models.GameRecord, error) {
	var record models.GameRecord
	if err := c.request(http.MethodGet, "/api/games/"+id.String(), nil, &record); err != nil {
		return models.GameRecord{}, fmt.Errorf("failed to get game: %w", err)
	}

	return record, nil
}

// GameStats returns the outcome counters of the server.
func (c *APIClient) GameStats() (models.GameStats, error) {
	var stats models.GameStats
	if err := c.request(http.MethodGet, "/api/games/stats", nil, &stats); err != nil {
		return models.GameStats{}, fmt.Errorf("failed to get game stats: %w", err)
	}

	return stats, nil
}
