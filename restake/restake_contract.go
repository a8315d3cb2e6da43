package restake

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/biomark/biomark-contract/common"
)

// StakeRecord is the custody record of a single staked asset. It exists only
// while the asset is held by the vault; Checkpoint is the time rewards of this
// record were last accounted.
type StakeRecord struct {
	AssetID    int
	Staker     interop.Hash160
	StakedAt   int
	Checkpoint int
}

const (
	assetContractKey = 'a'

	rateKey = 'r'
	poolKey = 'p'

	prefixStake        = 's'
	prefixAccountStake = 'x'
	prefixAccrued      = 'u'
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
	rate := args[1].(int)

	common.RequireHash160(addrAsset, "init: incorrect length of contract script hash")
	if rate < 0 {
		panic("init: negative reward rate")
	}

	storage.Put(ctx, assetContractKey, addrAsset)
	storage.Put(ctx, rateKey, rate)
	storage.Put(ctx, poolKey, 0)

	runtime.Log("restake contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data interface{}) {
	common.CheckCommitteeWitness()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("restake contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// The vault accepts plain GAS transfers only as part of DepositRewards.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: only GAS is accepted")
	}
}

// Stake takes custody of the asset from its current owner and starts reward
// accrual for it. The owner must witness the invocation and the asset must
// not be staked already. Before the new record is written, reward accrual of
// the owner's other staked assets is checkpointed so that the set change
// never rewrites past accrual.
//
// Produces Staked notification.
func Stake(assetID int) {
	ctx := storage.GetContext()

	if storage.Get(ctx, common.IDKey(prefixStake, assetID)) != nil {
		panic("stake: asset is already staked")
	}

	assetContractAddr := storage.Get(ctx, assetContractKey).(interop.Hash160)
	owner := contract.Call(assetContractAddr, "ownerOf", contract.ReadOnly, assetID).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	now := runtime.GetTime()
	flush(ctx, owner, now)

	vault := runtime.GetExecutingScriptHash()
	contract.Call(assetContractAddr, "transfer", contract.All, assetID, owner, vault)

	record := StakeRecord{
		AssetID:    assetID,
		Staker:     owner,
		StakedAt:   now,
		Checkpoint: now,
	}
	common.SetSerialized(ctx, common.IDKey(prefixStake, assetID), record)
	storage.Put(ctx, accountStakeKey(owner, assetID), assetID)

	runtime.Notify("Staked", assetID, owner)
	runtime.Log("stake: took asset into custody")
}

// Unstake returns custody of the asset to its staker and pays out all
// rewards pending for the staker across their staked assets. Only the
// original staker may invoke it. If the reward pool cannot cover the payout,
// the whole operation fails and no accrual bookkeeping is retained.
//
// Produces Unstaked notification.
func Unstake(assetID int) {
	ctx := storage.GetContext()

	record := getStake(ctx, assetID)
	common.CheckOwnerWitness(record.Staker)

	flush(ctx, record.Staker, runtime.GetTime())
	amount := takeAccrued(ctx, record.Staker)

	storage.Delete(ctx, common.IDKey(prefixStake, assetID))
	storage.Delete(ctx, accountStakeKey(record.Staker, assetID))

	vault := runtime.GetExecutingScriptHash()
	if amount > 0 {
		if !gas.Transfer(vault, record.Staker, amount, nil) {
			panic("unstake: reward transfer failed")
		}
	}

	assetContractAddr := storage.Get(ctx, assetContractKey).(interop.Hash160)
	contract.Call(assetContractAddr, "transfer", contract.All, assetID, vault, record.Staker)

	runtime.Notify("Unstaked", assetID, record.Staker, amount)
	runtime.Log("unstake: returned asset from custody")
}

// ClaimRewards pays out all rewards pending for the account without touching
// custody of its staked assets. The account must witness the invocation.
//
// Produces RewardsClaimed notification.
func ClaimRewards(account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(account)

	flush(ctx, account, runtime.GetTime())
	amount := takeAccrued(ctx, account)
	if amount == 0 {
		panic("claimRewards: nothing to claim")
	}

	if !gas.Transfer(runtime.GetExecutingScriptHash(), account, amount, nil) {
		panic("claimRewards: reward transfer failed")
	}

	runtime.Notify("RewardsClaimed", account, amount)
}

// PendingRewards returns the amount of rewards the account could claim at
// the current block time.
func PendingRewards(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()

	amount := 0
	if data := storage.Get(ctx, accruedKey(account)); data != nil {
		amount = data.(int)
	}

	now := runtime.GetTime()
	rate := storage.Get(ctx, rateKey).(int)

	it := storage.Find(ctx, append([]byte{prefixAccountStake}, account...), storage.ValuesOnly)
	for iterator.Next(it) {
		assetID := iterator.Value(it).(int)
		record := getStake(ctx, assetID)
		amount += (now - record.Checkpoint) / 1000 * rate
	}

	return amount
}

// DepositRewards moves GAS from the given account into the reward pool.
// Anybody may fund the pool.
//
// Produces RewardsDeposited notification.
func DepositRewards(from interop.Hash160, amount int) {
	ctx := storage.GetContext()

	if amount <= 0 {
		panic("depositRewards: nonpositive amount")
	}

	if !gas.Transfer(from, runtime.GetExecutingScriptHash(), amount, nil) {
		panic("depositRewards: gas transfer failed")
	}

	pool := storage.Get(ctx, poolKey).(int)
	storage.Put(ctx, poolKey, pool+amount)

	runtime.Notify("RewardsDeposited", from, amount)
}

// SetRewardRate replaces the accrual rate (GAS units per second per staked
// asset). It can be invoked only by committee. Every active stake is
// checkpointed at the old rate first, so the change is strictly
// prospective.
//
// Produces RewardRateUpdated notification.
func SetRewardRate(rate int) {
	ctx := storage.GetContext()
	common.CheckCommitteeWitness()

	if rate < 0 {
		panic("setRewardRate: negative reward rate")
	}

	now := runtime.GetTime()
	oldRate := storage.Get(ctx, rateKey).(int)

	it := storage.Find(ctx, []byte{prefixStake}, storage.None)
	for iterator.Next(it) {
		pair := iterator.Value(it).([]interface{})
		key := pair[0].([]byte)
		record := std.Deserialize(pair[1].([]byte)).(StakeRecord)

		elapsed := (now - record.Checkpoint) / 1000
		if elapsed <= 0 {
			continue
		}

		addAccrued(ctx, record.Staker, elapsed*oldRate)
		record.Checkpoint = record.Checkpoint + elapsed*1000
		common.SetSerialized(ctx, key, record)
	}

	storage.Put(ctx, rateKey, rate)

	runtime.Notify("RewardRateUpdated", rate)
}

// EmergencyWithdraw drains part of the reward pool to the given account. It
// can be invoked only by committee and is bounded by the pool balance.
//
// Produces PoolDrained notification.
func EmergencyWithdraw(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckCommitteeWitness()

	common.RequireHash160(to, "emergencyWithdraw: incorrect receiver account")
	pool := storage.Get(ctx, poolKey).(int)
	if amount <= 0 || amount > pool {
		panic("emergencyWithdraw: amount is out of pool bounds")
	}

	storage.Put(ctx, poolKey, pool-amount)

	if !gas.Transfer(runtime.GetExecutingScriptHash(), to, amount, nil) {
		panic("emergencyWithdraw: gas transfer failed")
	}

	runtime.Notify("PoolDrained", to, amount)
}

// RewardRate returns the current accrual rate, GAS units per second per
// staked asset.
func RewardRate() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, rateKey).(int)
}

// PoolBalance returns the undistributed reward pool balance.
func PoolBalance() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, poolKey).(int)
}

// IsStaked returns true if the asset is currently in vault custody.
func IsStaked(assetID int) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, common.IDKey(prefixStake, assetID)) != nil
}

// StakeOf returns the custody record of the staked asset.
func StakeOf(assetID int) StakeRecord {
	ctx := storage.GetReadOnlyContext()
	return getStake(ctx, assetID)
}

// StakedBy returns an iterator over ids of the assets currently staked by
// the account.
func StakedBy(account interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountStake}, account...), storage.ValuesOnly)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// flush checkpoints every stake record of the account at now, moving the
// accrued amounts into the account's reward accumulator. Sub-second
// remainders stay on the record by advancing Checkpoint in whole seconds
// only.
func flush(ctx storage.Context, account interop.Hash160, now int) {
	rate := storage.Get(ctx, rateKey).(int)
	pending := 0

	it := storage.Find(ctx, append([]byte{prefixAccountStake}, account...), storage.ValuesOnly)
	for iterator.Next(it) {
		assetID := iterator.Value(it).(int)
		record := getStake(ctx, assetID)

		elapsed := (now - record.Checkpoint) / 1000
		if elapsed <= 0 {
			continue
		}

		pending += elapsed * rate
		record.Checkpoint = record.Checkpoint + elapsed*1000
		common.SetSerialized(ctx, common.IDKey(prefixStake, assetID), record)
	}

	if pending > 0 {
		addAccrued(ctx, account, pending)
	}
}

// takeAccrued debits the account's whole reward accumulator against the
// pool and returns the amount to pay out. It panics when the pool cannot
// cover the debt, failing the enclosing operation.
func takeAccrued(ctx storage.Context, account interop.Hash160) int {
	data := storage.Get(ctx, accruedKey(account))
	if data == nil {
		return 0
	}

	amount := data.(int)
	pool := storage.Get(ctx, poolKey).(int)
	if pool < amount {
		panic("insufficient reward pool")
	}

	storage.Put(ctx, poolKey, pool-amount)
	storage.Delete(ctx, accruedKey(account))

	return amount
}

func addAccrued(ctx storage.Context, account interop.Hash160, amount int) {
	accrued := 0
	if data := storage.Get(ctx, accruedKey(account)); data != nil {
		accrued = data.(int)
	}

	storage.Put(ctx, accruedKey(account), accrued+amount)
}

func accruedKey(account interop.Hash160) []byte {
	return append([]byte{prefixAccrued}, account...)
}

func accountStakeKey(account interop.Hash160, assetID int) []byte {
	key := append([]byte{prefixAccountStake}, account...)
	return append(key, convert.ToBytes(assetID)...)
}

func getStake(ctx storage.Context, assetID int) StakeRecord {
	data := storage.Get(ctx, common.IDKey(prefixStake, assetID))
	if data == nil {
		panic("asset is not staked")
	}

	return std.Deserialize(data.([]byte)).(StakeRecord)
}
