package config

import "time"

// Gas limits used as EstimateGas fallbacks when the node cannot simulate
// the tx. These are conservative upper bounds; actual gas used will be lower.
const (
	GasLimitTokenTransfer = uint64(60_000)    // ERC-20 transfer
	GasLimitTokenDeploy   = uint64(1_500_000) // full token contract deployment
)

// Timeout constants used across cmd and the deploy orchestrator.
const (
	TxConfirmTimeout = 3 * time.Minute // standard transaction confirmation wait
	TxDeployTimeout  = 5 * time.Minute // contract deployment confirmation wait
)
