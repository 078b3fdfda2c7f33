package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"stable-wallet/pkg/types"
)

// ProviderError is a rejection from the wallet provider API. The
// provider's message is preserved verbatim for the user; these are
// never retried automatically.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}

// Client is a typed client over the external programmable-wallet
// service. Every mutating call carries a fresh idempotency key so a
// retried request never produces a duplicate on-chain operation; the
// provider does not deduplicate across already-confirmed effects.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a wallet provider client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type createWalletRequest struct {
	IdempotencyKey string `json:"idempotencyKey"`
	NetworkKey     string `json:"networkKey"`
}

type walletResponse struct {
	WalletID string `json:"walletId"`
	Address  string `json:"address"`
}

// CreateWallet provisions a provider-held wallet on the given network
func (c *Client) CreateWallet(ctx context.Context, networkKey string) (types.WalletHandle, error) {
	req := createWalletRequest{
		IdempotencyKey: uuid.NewString(),
		NetworkKey:     networkKey,
	}

	var resp walletResponse
	if err := c.post(ctx, "/v1/wallets", req, &resp); err != nil {
		return types.WalletHandle{}, fmt.Errorf("failed to create wallet: %w", err)
	}

	return types.WalletHandle{
		WalletID:   resp.WalletID,
		Address:    resp.Address,
		NetworkKey: networkKey,
	}, nil
}

type balanceResponse struct {
	Amount string `json:"amount"`
}

// GetBalance reads the balance of one token in the wallet, as a
// decimal string in asset units.
func (c *Client) GetBalance(ctx context.Context, handle types.WalletHandle, tokenID string) (string, error) {
	path := fmt.Sprintf("/v1/wallets/%s/balances?tokenId=%s", handle.WalletID, url.QueryEscape(tokenID))

	var resp balanceResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return "", fmt.Errorf("failed to get balance: %w", err)
	}
	return resp.Amount, nil
}

type transferRequest struct {
	IdempotencyKey     string `json:"idempotencyKey"`
	WalletID           string `json:"walletId"`
	TokenID            string `json:"tokenId"`
	DestinationAddress string `json:"destinationAddress"`
	Amount             string `json:"amount"` // Base units
}

type transactionResponse struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	TxHash string `json:"txHash,omitempty"`
}

func (r transactionResponse) toRecord() types.TransactionRecord {
	return types.TransactionRecord{
		ID:     r.ID,
		State:  types.TxState(r.State),
		TxHash: r.TxHash,
	}
}

// SubmitTransfer submits a simple same-chain token move. Amount is in
// base units.
func (c *Client) SubmitTransfer(ctx context.Context, handle types.WalletHandle, tokenID, destination, amount string) (types.TransactionRecord, error) {
	req := transferRequest{
		IdempotencyKey:     uuid.NewString(),
		WalletID:           handle.WalletID,
		TokenID:            tokenID,
		DestinationAddress: destination,
		Amount:             amount,
	}

	var resp transactionResponse
	if err := c.post(ctx, "/v1/transactions/transfer", req, &resp); err != nil {
		return types.TransactionRecord{}, fmt.Errorf("failed to submit transfer: %w", err)
	}
	return resp.toRecord(), nil
}

type contractCallRequest struct {
	IdempotencyKey       string   `json:"idempotencyKey"`
	WalletID             string   `json:"walletId"`
	ContractAddress      string   `json:"contractAddress"`
	ABIFunctionSignature string   `json:"abiFunctionSignature"`
	ABIParameters        []string `json:"abiParameters"`
}

// SubmitContractCall submits an arbitrary contract call (approve, burn,
// swap, receive). Parameters are passed as strings in the function
// signature's order.
func (c *Client) SubmitContractCall(ctx context.Context, handle types.WalletHandle, contract, functionSignature string, args []string) (types.TransactionRecord, error) {
	req := contractCallRequest{
		IdempotencyKey:       uuid.NewString(),
		WalletID:             handle.WalletID,
		ContractAddress:      contract,
		ABIFunctionSignature: functionSignature,
		ABIParameters:        args,
	}

	var resp transactionResponse
	if err := c.post(ctx, "/v1/transactions/contract-execution", req, &resp); err != nil {
		return types.TransactionRecord{}, fmt.Errorf("failed to submit contract call: %w", err)
	}
	return resp.toRecord(), nil
}

// GetStatus reads the current state of a submitted transaction
func (c *Client) GetStatus(ctx context.Context, providerTxID string) (types.TransactionRecord, error) {
	var resp transactionResponse
	if err := c.get(ctx, "/v1/transactions/"+providerTxID, &resp); err != nil {
		return types.TransactionRecord{}, fmt.Errorf("failed to get status: %w", err)
	}
	return resp.toRecord(), nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Try to extract the actual error message from the response
		var errorResp map[string]interface{}
		if jsonErr := json.Unmarshal(bodyBytes, &errorResp); jsonErr == nil {
			if message, ok := errorResp["message"].(string); ok {
				return &ProviderError{StatusCode: resp.StatusCode, Message: message}
			}
		}
		return &ProviderError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
