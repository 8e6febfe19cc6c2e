package fraud

import "time"

// fallbackAlert is the deterministic single-transaction degrade value.
func fallbackAlert(txHash string) Alert {
	return Alert{
		TxHash:      txHash,
		Reason:      "Error",
		Severity:    SeverityLow,
		Timestamp:   time.Now().UTC(),
		Fraud:       false,
		Probability: 0,
	}
}

// ExampleAlerts returns the static representative set shown when the
// scoring endpoint is unreachable for a whole batch. Keeping this as a
// named policy (rather than a hidden catch) lets callers and tests assert
// on fallback activation distinctly from success.
func ExampleAlerts() []Alert {
	now := time.Now().UTC()
	return []Alert{
		{
			TxHash:      "0x5f2b3c7d9e4a1b8c6d0e2f4a8b1c3d5e7f9a0b2c4d6e8f0a1b3c5d7e9f2a4b6c",
			Reason:      "Amount far above sender's rolling average",
			Severity:    SeverityHigh,
			Timestamp:   now.Add(-2 * time.Minute),
			Fraud:       true,
			Probability: 0.91,
		},
		{
			TxHash:      "0x8d1e4f7a2b5c8d0e3f6a9b1c4d7e0f3a6b9c2d5e8f1a4b7c0d3e6f9a2b5c8d1e",
			Reason:      "Burst of transfers to a newly seen wallet",
			Severity:    SeverityMedium,
			Timestamp:   now.Add(-14 * time.Minute),
			Fraud:       true,
			Probability: 0.64,
		},
		{
			TxHash:      "0x3c6d9e2f5a8b1c4d7e0f3a6b9c2d5e8f1a4b7c0d3e6f9a2b5c8d1e4f7a0b3c6d",
			Reason:      "Pattern consistent with routine activity",
			Severity:    SeverityLow,
			Timestamp:   now.Add(-41 * time.Minute),
			Fraud:       false,
			Probability: 0.12,
		},
	}
}
