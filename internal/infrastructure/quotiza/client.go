package quotiza

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"quotiza-connect/internal/domain"
	"quotiza-connect/internal/ports"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production Quotiza API host.
const DefaultBaseURL = "https://app.quotiza.com"

const defaultTimeout = 30 * time.Second

// Client is the Quotiza API adapter. Authentication is a bearer token per
// request; credentials belong to the shop, not the client, so they are
// passed per call. No retries: a rejected batch is reported to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Quotiza API client. An empty baseURL selects the
// production host.
func NewClient(baseURL string, logger zerolog.Logger) ports.QuotizaClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

type importRequest struct {
	AccountID string                  `json:"account_id"`
	Products  []domain.QuotizaProduct `json:"products"`
}

type importResponse struct {
	// Quotiza has returned job_id both as a number and as a string.
	JobID json.Number `json:"job_id"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SubmitProducts posts a product batch to the import endpoint and returns
// the partner-assigned job ID.
func (c *Client) SubmitProducts(ctx context.Context, creds domain.Credentials, products []domain.QuotizaProduct) (string, error) {
	payload := importRequest{AccountID: creds.AccountID, Products: products}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/v1/products/import", creds.APIKey, payload)
	if err != nil {
		return "", err
	}

	var resp importResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding import response: %w", err)
	}

	c.logger.Info().
		Str("accountId", creds.AccountID).
		Int("products", len(products)).
		Str("jobId", resp.JobID.String()).
		Msg("Submitted products to Quotiza")

	return resp.JobID.String(), nil
}

// CheckImportStatus polls the status of an import job.
func (c *Client) CheckImportStatus(ctx context.Context, creds domain.Credentials, jobID string) (*domain.ImportStatus, error) {
	params := url.Values{}
	params.Set("account_id", creds.AccountID)
	params.Set("job_id", jobID)

	body, err := c.doRequest(ctx, http.MethodGet, "/api/v1/products/import_status?"+params.Encode(), creds.APIKey, nil)
	if err != nil {
		return nil, err
	}

	var status domain.ImportStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("decoding import status response: %w", err)
	}
	if status.JobID == "" {
		status.JobID = jobID
	}
	return &status, nil
}

// doRequest executes one request with the bearer token header and unwraps
// the remote error message on non-2xx responses.
func (c *Client) doRequest(ctx context.Context, method, path, apiKey string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing quotiza request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &domain.QuotizaAPIError{StatusCode: resp.StatusCode}
		var remote errorResponse
		if err := json.Unmarshal(body, &remote); err == nil {
			apiErr.Message = remote.Error.Message
		}
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("Quotiza API rejected request")
		return nil, apiErr
	}

	return body, nil
}
