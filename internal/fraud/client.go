package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/0xkaran/chainsentry/internal/ledger"
)

// Severity buckets for an alert.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Alert is a derived fraud signal for one transaction. It is recomputed per
// request and never authoritative.
type Alert struct {
	TxHash      string    `json:"tx_hash"`
	Reason      string    `json:"reason"`
	Severity    Severity  `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
	Fraud       bool      `json:"fraud"`
	Probability float64   `json:"probability"`
}

// Result wraps an alert with the explicit fallback marker, so callers and
// tests can tell a degraded answer from a real one.
type Result struct {
	Alert
	Fallback bool
}

// defaultFee is the flat fee estimate sent to the scoring endpoint when the
// actual gas cost is not known locally.
const defaultFee = 0.001

// Client calls the external fraud-scoring endpoint. The service is
// best-effort enrichment: every failure degrades to a deterministic
// fallback, never to an error.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a fraud client for baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type scoreRequest struct {
	Amount       float64 `json:"amount"`
	Fee          float64 `json:"fee"`
	SenderWallet string  `json:"sender_wallet"`
	Timestamp    string  `json:"timestamp"`
}

type scoreResponse struct {
	Fraud       bool    `json:"fraud"`
	Probability float64 `json:"probability"`
	Severity    string  `json:"severity"`
	Reason      string  `json:"reason"`
}

// Score classifies a single transaction via POST /predict-fraud-real-time.
// On any transport or endpoint error it resolves to the deterministic
// fallback (fraud=false, probability=0, severity=Low, reason="Error").
func (c *Client) Score(ctx context.Context, tx ledger.Transaction) Result {
	amount, _ := strconv.ParseFloat(tx.Amount, 64)
	req := scoreRequest{
		Amount:       amount,
		Fee:          defaultFee,
		SenderWallet: tx.From,
		Timestamp:    tx.Timestamp.UTC().Format(time.RFC3339),
	}

	var resp scoreResponse
	if err := c.post(ctx, "/predict-fraud-real-time", req, &resp); err != nil {
		return Result{Alert: fallbackAlert(tx.Hash), Fallback: true}
	}

	return Result{Alert: Alert{
		TxHash:      tx.Hash,
		Reason:      resp.Reason,
		Severity:    parseSeverity(resp.Severity),
		Timestamp:   time.Now().UTC(),
		Fraud:       resp.Fraud,
		Probability: clamp01(resp.Probability),
	}}
}

// ScoreBatch classifies a candidate set via POST /predict-fraud. A
// whole-batch failure substitutes the static example alerts so callers
// always have representative content; the second return reports whether
// that fallback was taken.
func (c *Client) ScoreBatch(ctx context.Context, txs []ledger.Transaction) ([]Alert, bool) {
	reqs := make([]scoreRequest, len(txs))
	for i, tx := range txs {
		amount, _ := strconv.ParseFloat(tx.Amount, 64)
		reqs[i] = scoreRequest{
			Amount:       amount,
			Fee:          defaultFee,
			SenderWallet: tx.From,
			Timestamp:    tx.Timestamp.UTC().Format(time.RFC3339),
		}
	}

	var resps []scoreResponse
	if err := c.post(ctx, "/predict-fraud", reqs, &resps); err != nil || len(resps) != len(txs) {
		return ExampleAlerts(), true
	}

	alerts := make([]Alert, len(txs))
	for i, resp := range resps {
		alerts[i] = Alert{
			TxHash:      txs[i].Hash,
			Reason:      resp.Reason,
			Severity:    parseSeverity(resp.Severity),
			Timestamp:   time.Now().UTC(),
			Fraud:       resp.Fraud,
			Probability: clamp01(resp.Probability),
		}
	}
	return alerts, false
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("scoring request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scoring endpoint returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading scoring response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing scoring response: %w", err)
	}
	return nil
}

func parseSeverity(s string) Severity {
	switch s {
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
