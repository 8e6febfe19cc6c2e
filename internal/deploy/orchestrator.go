package deploy

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/0xkaran/chainsentry/internal/chain"
	"github.com/0xkaran/chainsentry/internal/config"
	"github.com/0xkaran/chainsentry/internal/contract"
)

// State is a step of the deployment state machine.
type State string

const (
	StateIdle                 State = "Idle"
	StatePreconditionCheck    State = "PreconditionCheck"
	StateSubmitting           State = "Submitting"
	StateAwaitingConfirmation State = "AwaitingConfirmation"
	StateReadingMetadata      State = "ReadingMetadata"
	StatePersisting           State = "Persisting"
	StateDone                 State = "Done"
	StateFailed               State = "Failed"
)

// TxSigner signs raw transactions for the deploying account. wallet.Signer
// is the production implementation.
type TxSigner interface {
	Address() string
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

// Request describes the token contract to deploy. Bytecode is the compiled
// creation code from a compiler artifact (contract.LoadDeployArtifact).
type Request struct {
	TokenName     string
	TokenSymbol   string
	Decimals      uint8
	InitialSupply *big.Int
	Bytecode      []byte
}

// Result is the outcome of one deployment attempt. FailedAt records the
// state the attempt was in when it failed; ContractAddress is populated as
// soon as the deployment is mined, even when a later stage fails, so an
// operator can reconcile an orphaned contract by hand.
type Result struct {
	State           State
	FailedAt        State // stage reached when State is StateFailed
	Reason          Reason
	Err             error
	TxHash          string
	ContractAddress string
	Record          *Record
	RecordPath      string
}

// Orchestrator drives a contract deployment end to end:
// precondition check, submit, confirmation wait, metadata read-back,
// record persistence.
type Orchestrator struct {
	provider    chain.Provider
	signer      TxSigner
	store       *RecordStore
	networkName string
	minBalance  *big.Int // wei floor for non-dev networks
	logf        func(format string, args ...interface{})
}

// NewOrchestrator creates an orchestrator. logf may be nil.
func NewOrchestrator(provider chain.Provider, signer TxSigner, store *RecordStore, networkName string, minBalance *big.Int, logf func(string, ...interface{})) *Orchestrator {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Orchestrator{
		provider:    provider,
		signer:      signer,
		store:       store,
		networkName: networkName,
		minBalance:  minBalance,
		logf:        logf,
	}
}

// Deploy runs the full state machine. It never returns a nil Result; on
// failure the Result's State is StateFailed, Reason classifies the failure
// for user messaging, and Err keeps the raw diagnostic.
func (o *Orchestrator) Deploy(ctx context.Context, req Request) *Result {
	deployer := o.signer.Address()

	// ── PreconditionCheck ─────────────────────────────────────────────────
	o.logf("precondition check for %s", deployer)
	chainID, err := o.provider.ChainID(ctx)
	if err != nil {
		return fail(StatePreconditionCheck, ReasonNetworkMisconfig, fmt.Errorf("resolving chain id: %w", err))
	}
	balance, err := o.provider.GetBalance(ctx, deployer)
	if err != nil {
		return fail(StatePreconditionCheck, ReasonNetworkMisconfig, fmt.Errorf("reading deployer balance: %w", err))
	}
	if err := CheckPreconditions(chainID, balance, o.minBalance); err != nil {
		return fail(StatePreconditionCheck, ReasonInsufficientFunds, err)
	}

	// ── Submitting ────────────────────────────────────────────────────────
	o.logf("submitting deployment of %q (%s)", req.TokenName, req.TokenSymbol)
	deployData, err := contract.BuildTokenDeployData(req.Bytecode, req.TokenName, req.TokenSymbol, req.Decimals, req.InitialSupply)
	if err != nil {
		return fail(StateSubmitting, ReasonUnknown, fmt.Errorf("building deploy data: %w", err))
	}
	deployHex := "0x" + hex.EncodeToString(deployData)

	gasPrice, err := o.provider.GasPrice(ctx)
	if err != nil {
		return fail(StateSubmitting, ClassifySubmitError(err), fmt.Errorf("getting gas price: %w", err))
	}
	gasLimit, err := o.provider.EstimateGas(ctx, deployer, "", deployHex, nil)
	if err != nil {
		gasLimit = config.GasLimitTokenDeploy
	}
	nonce, err := o.provider.GetNonce(ctx, deployer)
	if err != nil {
		return fail(StateSubmitting, ClassifySubmitError(err), fmt.Errorf("getting nonce: %w", err))
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(chainID),
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gasLimit,
		To:        nil, // contract creation
		Value:     big.NewInt(0),
		Data:      deployData,
	})

	raw, err := o.signer.SignTx(tx, big.NewInt(chainID))
	if err != nil {
		return fail(StateSubmitting, ReasonUnknown, fmt.Errorf("signing deployment: %w", err))
	}

	hash, err := o.provider.SendRawTransaction(ctx, "0x"+hex.EncodeToString(raw))
	if err != nil {
		return fail(StateSubmitting, ClassifySubmitError(err), fmt.Errorf("broadcasting deployment: %w", err))
	}

	// ── AwaitingConfirmation ──────────────────────────────────────────────
	o.logf("deployment tx %s broadcast, awaiting confirmation", hash)
	receipt, err := o.provider.WaitForReceipt(ctx, hash)
	if err != nil {
		r := fail(StateAwaitingConfirmation, ReasonUnknown, fmt.Errorf("awaiting confirmation of %s: %w", hash, err))
		r.TxHash = hash
		return r
	}
	address := receipt.ContractAddress

	// ── ReadingMetadata ───────────────────────────────────────────────────
	// A fixed, ordered read-back of the contract's own fields. Any failure
	// here means the deployment is structurally broken: hard failure, no
	// record is written.
	o.logf("reading back metadata from %s", address)
	details, err := o.readback(ctx, address)
	if err != nil {
		r := fail(StateReadingMetadata, ReasonReadbackFailure, fmt.Errorf("%w: %v", ErrReadback, err))
		r.TxHash = hash
		r.ContractAddress = address
		return r
	}

	// ── Persisting ────────────────────────────────────────────────────────
	rec := &Record{
		Network: NetworkInfo{Name: o.networkName, ChainID: chainID},
		Contract: ContractInfo{
			Name:       req.TokenName,
			Address:    address,
			Deployer:   deployer,
			TxHash:     hash,
			DeployedAt: time.Now().UTC(),
		},
		Details: details,
	}
	path, err := o.store.Save(rec)
	if err != nil {
		// The contract is live on-chain; persistence is not transactional
		// with the chain mutation and nothing is rolled back. The address
		// stays on the Result for manual reconciliation.
		r := fail(StatePersisting, ReasonPersistenceFailure, fmt.Errorf("%w: %v", ErrPersistence, err))
		r.TxHash = hash
		r.ContractAddress = address
		return r
	}

	return &Result{
		State:           StateDone,
		TxHash:          hash,
		ContractAddress: address,
		Record:          rec,
		RecordPath:      path,
	}
}

// readback performs the ordered metadata reads used for the detail snapshot.
func (o *Orchestrator) readback(ctx context.Context, address string) (map[string]string, error) {
	token := contract.NewTokenCaller(o.provider, address)

	name, err := token.Name(ctx)
	if err != nil {
		return nil, err
	}
	symbol, err := token.Symbol(ctx)
	if err != nil {
		return nil, err
	}
	owner, err := token.Owner(ctx)
	if err != nil {
		return nil, err
	}
	supply, err := token.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"name":         name,
		"symbol":       symbol,
		"owner":        owner,
		"total_supply": supply.String(),
	}, nil
}

func fail(state State, reason Reason, err error) *Result {
	return &Result{State: StateFailed, FailedAt: state, Reason: reason, Err: fmt.Errorf("%s: %w", state, err)}
}
