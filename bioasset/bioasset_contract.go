package bioasset

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/biomark/biomark-contract/common"
)

// Asset is a single ownership record bound to a biological data commitment.
// The commitment is a fixed-width digest standing in for data that is never
// stored on chain; it is unique across all assets.
type Asset struct {
	ID          int
	Owner       interop.Hash160
	Commitment  []byte
	Institution int
	MetadataRef []byte
	Locked      bool
}

const (
	counterKey     = 'c'
	totalSupplyKey = 'u'

	gatewayContractKey = 'g'

	prefixAsset        = 'a'
	prefixCommitment   = 'h'
	prefixBalance      = 'b'
	prefixAccountToken = 't'

	// commitmentSize is the fixed width of a data commitment, SHA256 size.
	commitmentSize = 32
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]interface{})
	addrGateway := args[0].(interop.Hash160)
	common.RequireHash160(addrGateway, "init: incorrect length of contract script hash")

	storage.Put(ctx, gatewayContractKey, addrGateway)
	storage.Put(ctx, totalSupplyKey, 0)

	runtime.Log("bioasset contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data interface{}) {
	common.CheckCommitteeWitness()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("bioasset contract updated")
}

// Symbol returns the token symbol.
func Symbol() string {
	return "BIOM"
}

// Decimals returns the token decimals, assets are indivisible.
func Decimals() int {
	return 0
}

// TotalSupply returns the overall number of existing assets.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, totalSupplyKey).(int)
}

// Issue creates a new asset owned by the given account. It can be invoked
// only by the issuance gateway contract; this is the single path assets come
// into existence through. The commitment must be a non-zero 32-byte digest
// not used by any existing asset.
//
// Produces Transfer notification with empty sender.
func Issue(owner interop.Hash160, commitment []byte, institutionID int, metadataRef []byte) int {
	ctx := storage.GetContext()

	if !common.FromKnownContract(ctx, runtime.GetCallingScriptHash(), gatewayContractKey) {
		panic("issue: must be invoked by the issuance gateway")
	}
	common.RequireHash160(owner, "issue: incorrect owner account")
	requireCommitment(commitment)

	commitmentIndex := append([]byte{prefixCommitment}, commitment...)
	if storage.Get(ctx, commitmentIndex) != nil {
		panic("issue: commitment already has an asset")
	}

	id := common.NextID(ctx, counterKey)
	asset := Asset{
		ID:          id,
		Owner:       owner,
		Commitment:  commitment,
		Institution: institutionID,
		MetadataRef: metadataRef,
		Locked:      false,
	}

	common.SetSerialized(ctx, common.IDKey(prefixAsset, id), asset)
	storage.Put(ctx, commitmentIndex, id)
	addToAccount(ctx, owner, id)
	updateTotalSupply(ctx, +1)

	postTransfer(ctx, nil, owner, id)
	runtime.Log("issue: added new asset")

	return id
}

// Transfer moves the asset to a new owner. From must be the current owner
// and must either witness the invocation or be the calling contract (the
// latter allows the restake vault to return custody). A transfer-locked
// asset rejects any ownership change.
//
// Produces Transfer notification.
func Transfer(id int, from, to interop.Hash160) {
	ctx := storage.GetContext()
	asset := getAsset(ctx, id)

	common.RequireHash160(to, "transfer: incorrect receiver account")
	if !common.BytesEqual(asset.Owner, from) {
		panic("transfer: from is not the current owner")
	}
	if !isAuthorized(from) {
		panic(common.ErrOwnerWitnessFailed)
	}
	if asset.Locked {
		panic("transfer: asset is transfer-locked")
	}

	if !common.BytesEqual(from, to) {
		asset.Owner = to
		common.SetSerialized(ctx, common.IDKey(prefixAsset, id), asset)

		removeFromAccount(ctx, from, id)
		addToAccount(ctx, to, id)
	}

	postTransfer(ctx, from, to, id)
}

// SetTransferLock switches the transfer-lock ("soulbound") flag of the
// asset. Only the current owner may do that. Setting the flag to its current
// value is allowed and changes nothing.
//
// Produces TransferLockChanged notification.
func SetTransferLock(id int, locked bool) {
	ctx := storage.GetContext()
	asset := getAsset(ctx, id)

	if !isAuthorized(asset.Owner) {
		panic(common.ErrOwnerWitnessFailed)
	}

	asset.Locked = locked
	common.SetSerialized(ctx, common.IDKey(prefixAsset, id), asset)

	runtime.Notify("TransferLockChanged", id, locked)
}

// SetMetadataRef replaces the off-band metadata reference of the asset. Only
// the current owner may do that.
//
// Produces MetadataRefUpdated notification.
func SetMetadataRef(id int, metadataRef []byte) {
	ctx := storage.GetContext()
	asset := getAsset(ctx, id)

	if !isAuthorized(asset.Owner) {
		panic(common.ErrOwnerWitnessFailed)
	}

	asset.MetadataRef = metadataRef
	common.SetSerialized(ctx, common.IDKey(prefixAsset, id), asset)

	runtime.Notify("MetadataRefUpdated", id)
}

// Burn removes the asset from the registry together with its commitment
// mapping. Only the current owner may do that and a transfer-locked asset
// cannot be burnt.
//
// Produces Transfer notification with empty receiver.
func Burn(id int) {
	ctx := storage.GetContext()
	asset := getAsset(ctx, id)

	if !isAuthorized(asset.Owner) {
		panic(common.ErrOwnerWitnessFailed)
	}
	if asset.Locked {
		panic("burn: asset is transfer-locked")
	}

	storage.Delete(ctx, common.IDKey(prefixAsset, id))
	storage.Delete(ctx, append([]byte{prefixCommitment}, asset.Commitment...))
	removeFromAccount(ctx, asset.Owner, id)
	updateTotalSupply(ctx, -1)

	postTransfer(ctx, asset.Owner, nil, id)
	runtime.Log("burn: removed asset")
}

// OwnerOf returns the current owner of the asset. During staking this is the
// vault contract holding custody, not the economic owner.
func OwnerOf(id int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getAsset(ctx, id).Owner
}

// InstitutionOf returns the id of the institution that attested the asset's
// commitment at issuance.
func InstitutionOf(id int) int {
	ctx := storage.GetReadOnlyContext()
	return getAsset(ctx, id).Institution
}

// LookupByCommitment returns the id of the asset the commitment is bound to,
// or 0 when there is none.
func LookupByCommitment(commitment []byte) int {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, append([]byte{prefixCommitment}, commitment...))
	if data == nil {
		return 0
	}

	return data.(int)
}

// Get returns the full asset record.
func Get(id int) Asset {
	ctx := storage.GetReadOnlyContext()
	return getAsset(ctx, id)
}

// Properties returns the asset record fields as a map.
func Properties(id int) map[string]interface{} {
	ctx := storage.GetReadOnlyContext()
	asset := getAsset(ctx, id)

	return map[string]interface{}{
		"owner":       asset.Owner,
		"commitment":  asset.Commitment,
		"institution": asset.Institution,
		"metadataRef": asset.MetadataRef,
		"locked":      asset.Locked,
	}
}

// BalanceOf returns the number of assets currently owned by the account.
func BalanceOf(owner interop.Hash160) int {
	common.RequireHash160(owner, "balanceOf: incorrect owner account")
	ctx := storage.GetReadOnlyContext()

	balance := storage.Get(ctx, append([]byte{prefixBalance}, owner...))
	if balance == nil {
		return 0
	}

	return balance.(int)
}

// TokensOf returns an iterator over ids of the assets currently owned by the
// account.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	common.RequireHash160(owner, "tokensOf: incorrect owner account")
	ctx := storage.GetReadOnlyContext()

	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// isAuthorized reports whether account either witnessed the invocation or is
// the immediate calling contract.
func isAuthorized(account interop.Hash160) bool {
	if runtime.CheckWitness(account) {
		return true
	}

	return common.BytesEqual(runtime.GetCallingScriptHash(), account)
}

func requireCommitment(commitment []byte) {
	if len(commitment) != commitmentSize {
		panic("issue: incorrect commitment width")
	}

	for i := 0; i < commitmentSize; i++ {
		if commitment[i] != 0 {
			return
		}
	}

	panic("issue: zero commitment")
}

func postTransfer(ctx storage.Context, from, to interop.Hash160, id int) {
	if len(from) == interop.Hash160Len {
		updateBalance(ctx, from, -1)
	}
	if len(to) == interop.Hash160Len {
		updateBalance(ctx, to, +1)
	}

	runtime.Notify("Transfer", from, to, 1, convert.ToBytes(id))
}

func addToAccount(ctx storage.Context, owner interop.Hash160, id int) {
	key := append([]byte{prefixAccountToken}, owner...)
	storage.Put(ctx, append(key, convert.ToBytes(id)...), id)
}

func removeFromAccount(ctx storage.Context, owner interop.Hash160, id int) {
	key := append([]byte{prefixAccountToken}, owner...)
	storage.Delete(ctx, append(key, convert.ToBytes(id)...))
}

func updateBalance(ctx storage.Context, account interop.Hash160, delta int) {
	key := append([]byte{prefixBalance}, account...)

	balance := 0
	if data := storage.Get(ctx, key); data != nil {
		balance = data.(int)
	}

	balance = balance + delta
	if balance <= 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance)
	}
}

func updateTotalSupply(ctx storage.Context, delta int) {
	supply := storage.Get(ctx, totalSupplyKey).(int)
	storage.Put(ctx, totalSupplyKey, supply+delta)
}

func getAsset(ctx storage.Context, id int) Asset {
	if id < 1 {
		panic("asset does not exist")
	}

	data := storage.Get(ctx, common.IDKey(prefixAsset, id))
	if data == nil {
		panic("asset does not exist")
	}

	return std.Deserialize(data.([]byte)).(Asset)
}
