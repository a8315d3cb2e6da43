package revenue

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/biomark/biomark-contract/common"
)

// SplitConfig is the revenue split between the asset owner, the attesting
// institution and the protocol account, in basis points. The three weights
// always sum to 10000.
type SplitConfig struct {
	Owner       int
	Institution int
	Protocol    int
}

const totalBasisPoints = 10000

const (
	assetContractKey       = 'a'
	institutionContractKey = 'i'
	protocolAccountKey     = 't'
	sharesKey              = 's'

	prefixPending = 'p'
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]interface{})
	addrAsset := args[0].(interop.Hash160)
	addrInstitution := args[1].(interop.Hash160)
	protocolAccount := args[2].(interop.Hash160)

	common.RequireHash160(addrAsset, "init: incorrect length of contract script hash")
	common.RequireHash160(addrInstitution, "init: incorrect length of contract script hash")
	common.RequireHash160(protocolAccount, "init: incorrect protocol account")

	shares := SplitConfig{Owner: 7000, Institution: 2000, Protocol: 1000}
	if len(args) > 3 {
		shares.Owner = args[3].(int)
		shares.Institution = args[4].(int)
		shares.Protocol = args[5].(int)
		checkShares(shares)
	}

	storage.Put(ctx, assetContractKey, addrAsset)
	storage.Put(ctx, institutionContractKey, addrInstitution)
	storage.Put(ctx, protocolAccountKey, protocolAccount)
	common.SetSerialized(ctx, sharesKey, shares)

	runtime.Log("revenue contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data interface{}) {
	common.CheckCommitteeWitness()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("revenue contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Direct GAS transfers are accepted only as part of Distribute.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: only GAS is accepted")
	}
}

// Distribute pulls the given amount of GAS from the payer and credits the
// resulting shares to the withdrawal balances of the asset owner, the
// account of the attesting institution and the protocol account. The payer
// must witness the invocation. Shares round down; the sub-unit remainder
// stays on the contract balance and is never credited.
//
// Produces RevenueDistributed notification.
func Distribute(payer interop.Hash160, assetID, amount int) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(payer)
	if amount <= 0 {
		panic("distribute: nonpositive amount")
	}

	if !gas.Transfer(payer, runtime.GetExecutingScriptHash(), amount, nil) {
		panic("distribute: gas transfer failed")
	}

	assetContractAddr := storage.Get(ctx, assetContractKey).(interop.Hash160)
	owner := contract.Call(assetContractAddr, "ownerOf", contract.ReadOnly, assetID).(interop.Hash160)
	institutionID := contract.Call(assetContractAddr, "institutionOf", contract.ReadOnly, assetID).(int)

	institutionContractAddr := storage.Get(ctx, institutionContractKey).(interop.Hash160)
	institutionAccount := contract.Call(institutionContractAddr, "resolveAccount",
		contract.ReadOnly, institutionID).(interop.Hash160)

	shares := getShares(ctx)
	addPending(ctx, owner, amount*shares.Owner/totalBasisPoints)
	addPending(ctx, institutionAccount, amount*shares.Institution/totalBasisPoints)
	addPending(ctx, storage.Get(ctx, protocolAccountKey).(interop.Hash160), amount*shares.Protocol/totalBasisPoints)

	runtime.Notify("RevenueDistributed", assetID, payer, amount)
}

// Withdraw pays the whole pending balance of the account out in GAS. The
// account must witness the invocation. The balance is zeroed before the
// transfer, a repeated call finds nothing to withdraw.
//
// Produces Withdrawn notification.
func Withdraw(account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(account)

	data := storage.Get(ctx, pendingKey(account))
	if data == nil {
		panic("withdraw: nothing to withdraw")
	}

	amount := data.(int)
	storage.Delete(ctx, pendingKey(account))

	if !gas.Transfer(runtime.GetExecutingScriptHash(), account, amount, nil) {
		panic("withdraw: gas transfer failed")
	}

	runtime.Notify("Withdrawn", account, amount)
}

// UpdateShares replaces the split weights. It can be invoked only by
// committee and applies to distributions that happen after the call, pending
// balances already credited are unaffected.
//
// Produces SharesUpdated notification.
func UpdateShares(ownerShare, institutionShare, protocolShare int) {
	ctx := storage.GetContext()
	common.CheckCommitteeWitness()

	shares := SplitConfig{Owner: ownerShare, Institution: institutionShare, Protocol: protocolShare}
	checkShares(shares)
	common.SetSerialized(ctx, sharesKey, shares)

	runtime.Notify("SharesUpdated", ownerShare, institutionShare, protocolShare)
}

// PendingOf returns the withdrawal balance of the account.
func PendingOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, pendingKey(account))
	if data == nil {
		return 0
	}
	return data.(int)
}

// Shares returns the current split weights in basis points.
func Shares() SplitConfig {
	ctx := storage.GetReadOnlyContext()
	return getShares(ctx)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkShares(shares SplitConfig) {
	if shares.Owner < 0 || shares.Institution < 0 || shares.Protocol < 0 {
		panic("negative share")
	}
	if shares.Owner+shares.Institution+shares.Protocol != totalBasisPoints {
		panic("shares must sum to 10000 basis points")
	}
}

func getShares(ctx storage.Context) SplitConfig {
	data := storage.Get(ctx, sharesKey).([]byte)
	return std.Deserialize(data).(SplitConfig)
}

func addPending(ctx storage.Context, account interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	pending := 0
	if data := storage.Get(ctx, pendingKey(account)); data != nil {
		pending = data.(int)
	}

	storage.Put(ctx, pendingKey(account), pending+amount)
}

func pendingKey(account interop.Hash160) []byte {
	return append([]byte{prefixPending}, account...)
}
