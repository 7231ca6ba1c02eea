// Package deploy provides Pixels contracts deployment functionality.
//
// The procedure brings the Luna token and the Pixels marketplace onto a
// particular Neo blockchain. It is idempotent: contracts that are already
// on-chain are left intact, so interrupted deployments may simply be re-run.
package deploy

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// LunaPrm groups deployment parameters of the Luna token contract.
type LunaPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest

	// Amount of lunas minted to the owner on deployment.
	TotalSupply int64
}

// PixelsPrm groups deployment parameters of the Pixels contract.
type PixelsPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest

	// Market parameters, zero values are defaulted by the contract.
	MinPriceIncrement int64
	UpdateFee         int64
}

// Prm groups all parameters of the deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Neo RPC connection to the target blockchain.
	Blockchain actor.RPCActor

	// Local account used for transaction signing (must be unlocked). It
	// becomes the owner of both contracts.
	LocalAccount *wallet.Account

	Luna   LunaPrm
	Pixels PixelsPrm
}

// Hashes groups addresses of the deployed contracts.
type Hashes struct {
	Luna   util.Uint160
	Pixels util.Uint160
}

// Deploy initializes Pixels contracts on the blockchain represented by
// given Prm.Blockchain. The owner of both contracts is Prm.LocalAccount,
// so is the holder of the initial luna supply.
//
// Deploy logs progress of the procedure. If Deploy fails, retry is possible:
// contracts deployed in previous attempts are detected by address and
// skipped.
func Deploy(ctx context.Context, prm Prm) (Hashes, error) {
	var res Hashes

	localAcc, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	sender := prm.LocalAccount.ScriptHash()

	res.Luna, err = deployContract(ctx, localAcc, prm.Logger, contractPrm{
		name:     "luna",
		nef:      prm.Luna.NEF,
		manifest: prm.Luna.Manifest,
		data:     []any{sender, prm.Luna.TotalSupply},
	})
	if err != nil {
		return res, fmt.Errorf("deploy Luna contract: %w", err)
	}

	res.Pixels, err = deployContract(ctx, localAcc, prm.Logger, contractPrm{
		name:     "pixels",
		nef:      prm.Pixels.NEF,
		manifest: prm.Pixels.Manifest,
		data:     []any{sender, res.Luna, prm.Pixels.MinPriceIncrement, prm.Pixels.UpdateFee},
	})
	if err != nil {
		return res, fmt.Errorf("deploy Pixels contract: %w", err)
	}

	return res, nil
}

type contractPrm struct {
	name     string
	nef      nef.File
	manifest manifest.Manifest
	data     []any
}

func deployContract(ctx context.Context, localAcc *actor.Actor, l *zap.Logger, prm contractPrm) (util.Uint160, error) {
	hash := state.CreateContractHash(localAcc.Sender(), prm.nef.Checksum, prm.manifest.Name)

	l = l.With(zap.String("contract", prm.name), zap.Stringer("address", hash))

	_, err := management.NewReader(localAcc).GetContract(hash)
	if err == nil {
		l.Info("contract is already deployed, skip")
		return hash, nil
	}

	if ctx.Err() != nil {
		return hash, ctx.Err()
	}

	l.Info("contract is missing, deploying...")

	txHash, vub, err := management.New(localAcc).Deploy(&prm.nef, &prm.manifest, prm.data)
	if err != nil {
		return hash, fmt.Errorf("send deployment transaction: %w", err)
	}

	aer, err := localAcc.Wait(txHash, vub, nil)
	if err != nil {
		return hash, fmt.Errorf("wait for deployment transaction: %w", err)
	}
	if aer.VMState != vmstate.Halt {
		return hash, fmt.Errorf("deployment transaction failed: %s", aer.FaultException)
	}

	l.Info("contract deployed successfully", zap.Stringer("tx", txHash))

	return hash, nil
}
