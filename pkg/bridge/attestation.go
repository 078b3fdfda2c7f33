package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AttestationResult is the attestor's signed proof that a burn
// occurred. Fetched during a bridge run and never stored beyond it.
type AttestationResult struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Attestation string `json:"attestation"`
}

// Complete reports whether the attestation is ready to submit
func (r AttestationResult) Complete() bool {
	return r.Status == "complete" && r.Attestation != ""
}

// AttestationTimeoutError means the attestor did not produce a complete
// attestation within the bounded wait. The burn already executed and
// funds are in flight: the run must be resumed against the same burn,
// never re-burned.
type AttestationTimeoutError struct {
	TxHash   string
	Attempts int
}

func (e *AttestationTimeoutError) Error() string {
	return fmt.Sprintf("attestation for burn %s not complete after %d attempts", e.TxHash, e.Attempts)
}

type messagesResponse struct {
	Messages []AttestationResult `json:"messages"`
}

// AttestationClient reads burn attestations from the bridge's
// eventually consistent messages API.
type AttestationClient struct {
	baseURL    string
	httpClient *http.Client

	// Polling bounds for AwaitAttestation
	MaxAttempts  int
	PollInterval time.Duration
}

// NewAttestationClient creates an attestation bridge client
func NewAttestationClient(baseURL string) *AttestationClient {
	return &AttestationClient{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		MaxAttempts:  30,
		PollInterval: 10 * time.Second,
	}
}

// FetchAttestation performs a single lookup for the burn transaction.
// A pending attestation is returned with its non-complete status, not
// as an error.
func (c *AttestationClient) FetchAttestation(ctx context.Context, sourceDomain uint32, txHash string) (AttestationResult, error) {
	url := fmt.Sprintf("%s/v2/messages/%d?transactionHash=%s", c.baseURL, sourceDomain, txHash)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return AttestationResult{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AttestationResult{}, fmt.Errorf("failed to fetch attestation: %w", err)
	}
	defer resp.Body.Close()

	// The API returns 404 until the message is indexed
	if resp.StatusCode == http.StatusNotFound {
		return AttestationResult{Status: "pending_confirmations"}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return AttestationResult{}, fmt.Errorf("attestation API returned status %d: %s", resp.StatusCode, string(body))
	}

	var msgResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return AttestationResult{}, fmt.Errorf("failed to decode attestation response: %w", err)
	}
	if len(msgResp.Messages) == 0 {
		return AttestationResult{Status: "pending_confirmations"}, nil
	}
	return msgResp.Messages[0], nil
}

// AwaitAttestation polls FetchAttestation until the attestation is
// complete or the attempt budget runs out. Transient lookup errors
// consume an attempt and are retried.
func (c *AttestationClient) AwaitAttestation(ctx context.Context, sourceDomain uint32, txHash string) (AttestationResult, error) {
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		result, err := c.FetchAttestation(ctx, sourceDomain, txHash)
		if err == nil && result.Complete() {
			return result, nil
		}

		// No sleep after the final attempt
		if attempt == c.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return AttestationResult{}, ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}

	return AttestationResult{}, &AttestationTimeoutError{TxHash: txHash, Attempts: c.MaxAttempts}
}
