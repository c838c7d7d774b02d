// Package verification talks to the external zero-knowledge proof verifier
// used for gender verification. The proof payload is opaque to this service;
// only the verifier's verdict and disclosed claims are interpreted.
package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type VerifyRequest struct {
	AttestationID   json.RawMessage `json:"attestationId"`
	Proof           json.RawMessage `json:"proof"`
	PublicSignals   json.RawMessage `json:"publicSignals"`
	UserContextData json.RawMessage `json:"userContextData"`
}

// DisclosedClaims carries the subject fields the proof chose to reveal.
type DisclosedClaims struct {
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	MinimumAge  string `json:"minimumAge,omitempty"`
}

type VerifyResult struct {
	IsValid  bool            `json:"isValid"`
	Claims   DisclosedClaims `json:"discloseOutput"`
	UserData json.RawMessage `json:"userData,omitempty"`
}

type ProofVerifier interface {
	Verify(ctx context.Context, request VerifyRequest) (VerifyResult, error)
}

// Client posts proofs to the configured verifier endpoint.
type Client struct {
	endpoint string
	scope    string
	http     *http.Client
}

func NewClient(endpoint string, scope string) *Client {
	return &Client{
		endpoint: endpoint,
		scope:    scope,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (client *Client) Verify(ctx context.Context, request VerifyRequest) (VerifyResult, error) {
	payload := struct {
		VerifyRequest
		Scope string `json:"scope,omitempty"`
	}{VerifyRequest: request, Scope: client.scope}

	body, err := json.Marshal(payload)
	if err != nil {
		return VerifyResult{}, err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint, bytes.NewReader(body))
	if err != nil {
		return VerifyResult{}, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	response, err := client.http.Do(httpRequest)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verifier request: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verifier response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return VerifyResult{}, fmt.Errorf("verifier returned status %d", response.StatusCode)
	}

	var result VerifyResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return VerifyResult{}, fmt.Errorf("verifier response: %w", err)
	}
	return result, nil
}
