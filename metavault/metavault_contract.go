package metavault

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/biomark/biomark-contract/common"
)

const (
	assetContractKey = 'a'

	prefixRef      = 'r'
	prefixOwnerKey = 'o'
	prefixGrant    = 'g'
)

// grant values hold the accessor-wrapped decryption key, so a grant doubles
// as the per-accessor key store.

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]interface{})
	addrAsset := args[0].(interop.Hash160)
	common.RequireHash160(addrAsset, "init: incorrect length of contract script hash")

	storage.Put(ctx, assetContractKey, addrAsset)

	runtime.Log("metavault contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data interface{}) {
	common.CheckCommitteeWitness()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("metavault contract updated")
}

// Store saves the off-chain metadata reference of the asset together with
// the owner-wrapped decryption key. Only the current asset owner may store
// and must witness the invocation. Repeated calls overwrite both values.
//
// Produces MetadataStored notification.
func Store(assetID int, ref, ownerKey []byte) {
	ctx := storage.GetContext()
	checkAssetOwnerWitness(ctx, assetID)

	if len(ref) == 0 {
		panic("store: empty metadata reference")
	}
	if len(ownerKey) == 0 {
		panic("store: empty wrapped key")
	}

	storage.Put(ctx, common.IDKey(prefixRef, assetID), ref)
	storage.Put(ctx, common.IDKey(prefixOwnerKey, assetID), ownerKey)

	runtime.Notify("MetadataStored", assetID)
}

// GrantAccess lets the accessor read the asset's metadata reference and
// hands them their own wrapped copy of the decryption key. Only the current
// asset owner may grant. Granting twice to the same accessor fails.
//
// Produces AccessGranted notification.
func GrantAccess(assetID int, accessor interop.Hash160, accessorKey []byte) {
	ctx := storage.GetContext()
	checkAssetOwnerWitness(ctx, assetID)

	common.RequireHash160(accessor, "grantAccess: incorrect accessor account")
	if len(accessorKey) == 0 {
		panic("grantAccess: empty wrapped key")
	}
	if storage.Get(ctx, grantKey(assetID, accessor)) != nil {
		panic("grantAccess: access already granted")
	}

	storage.Put(ctx, grantKey(assetID, accessor), accessorKey)

	runtime.Notify("AccessGranted", assetID, accessor)
}

// RevokeAccess removes a previously granted access. Only the current asset
// owner may revoke. Revoking an access that was never granted fails.
//
// Produces AccessRevoked notification.
func RevokeAccess(assetID int, accessor interop.Hash160) {
	ctx := storage.GetContext()
	checkAssetOwnerWitness(ctx, assetID)

	if storage.Get(ctx, grantKey(assetID, accessor)) == nil {
		panic("revokeAccess: access is not granted")
	}

	storage.Delete(ctx, grantKey(assetID, accessor))

	runtime.Notify("AccessRevoked", assetID, accessor)
}

// GetRef returns the metadata reference of the asset to the requester. The
// requester must witness the invocation and be either the current asset
// owner or a granted accessor.
func GetRef(assetID int, requester interop.Hash160) []byte {
	ctx := storage.GetReadOnlyContext()
	checkReadAccess(ctx, assetID, requester)

	data := storage.Get(ctx, common.IDKey(prefixRef, assetID))
	if data == nil {
		panic("no metadata stored for the asset")
	}
	return data.([]byte)
}

// GetKey returns the wrapped decryption key of the asset to the requester
// under the same access rules as GetRef. The owner receives the key stored
// at Store time, a granted accessor receives the copy wrapped for them at
// GrantAccess time.
func GetKey(assetID int, requester interop.Hash160) []byte {
	ctx := storage.GetReadOnlyContext()
	checkReadAccess(ctx, assetID, requester)

	if grant := storage.Get(ctx, grantKey(assetID, requester)); grant != nil {
		return grant.([]byte)
	}

	data := storage.Get(ctx, common.IDKey(prefixOwnerKey, assetID))
	if data == nil {
		panic("no metadata stored for the asset")
	}
	return data.([]byte)
}

// HasAccess returns true if the accessor currently holds a grant for the
// asset. Ownership is not reflected here, owners always read without a
// grant.
func HasAccess(assetID int, accessor interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, grantKey(assetID, accessor)) != nil
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkAssetOwnerWitness(ctx storage.Context, assetID int) {
	assetContractAddr := storage.Get(ctx, assetContractKey).(interop.Hash160)
	owner := contract.Call(assetContractAddr, "ownerOf", contract.ReadOnly, assetID).(interop.Hash160)
	common.CheckOwnerWitness(owner)
}

func checkReadAccess(ctx storage.Context, assetID int, requester interop.Hash160) {
	common.CheckWitness(requester)

	assetContractAddr := storage.Get(ctx, assetContractKey).(interop.Hash160)
	owner := contract.Call(assetContractAddr, "ownerOf", contract.ReadOnly, assetID).(interop.Hash160)
	if common.BytesEqual(requester, owner) {
		return
	}
	if storage.Get(ctx, grantKey(assetID, requester)) == nil {
		panic("metadata access denied")
	}
}

func grantKey(assetID int, accessor interop.Hash160) []byte {
	return append(append([]byte{prefixGrant}, common.FixedID(assetID)...), accessor...)
}
