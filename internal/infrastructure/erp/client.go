package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 20 * 1024 * 1024 // 20MB max response

// TransportError is returned when the ERP answers with a non-2xx
// status. The raw body is carried so callers can log what the ERP said.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("erp: HTTP %d: %s", e.Status, e.Body)
}

// GraphQLError is returned when the response envelope contains an
// errors array, which the ERP emits even on HTTP 200.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "erp: graphql: " + strings.Join(e.Messages, "; ")
}

// Client executes GraphQL documents against the ERP. It performs no
// retries; retry policy belongs to the orchestrator.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a client for the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// graphQLRequest is the wire shape of one GraphQL POST body
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse is the standard GraphQL response envelope
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Execute runs one GraphQL document with variables and returns the raw
// data payload on success.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("erp: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erp: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.config.AuthorizationHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erp: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("erp: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("erp: failed to parse response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return nil, &GraphQLError{Messages: messages}
	}

	return envelope.Data, nil
}
