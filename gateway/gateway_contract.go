package gateway

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/biomark/biomark-contract/common"
)

const (
	institutionContractKey = 'i'
	assetContractKey       = 'a'

	prefixNonce = 'n'

	nonceSize      = 32
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
	addrInstitution := args[0].(interop.Hash160)
	addrAsset := args[1].(interop.Hash160)

	common.RequireHash160(addrInstitution, "init: incorrect length of contract script hash")
	common.RequireHash160(addrAsset, "init: incorrect length of contract script hash")

	storage.Put(ctx, institutionContractKey, addrInstitution)
	storage.Put(ctx, assetContractKey, addrAsset)

	runtime.Log("gateway contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data interface{}) {
	common.CheckCommitteeWitness()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("gateway contract updated")
}

// IssueWithAttestation creates a new asset for the requester after verifying
// an institutional attestation of the data commitment. The attestation is a
// signature of commitment | institutionID | requester | nonce made with the
// institution's registered authorizing key; a consumed nonce is rejected
// forever. The whole operation either commits in full (nonce consumed, asset
// created, attestation counted) or leaves no trace.
//
// Produces AssetIssued notification.
func IssueWithAttestation(requester interop.Hash160, commitment []byte, institutionID int, metadataRef []byte, nonce []byte, signature interop.Signature) int {
	ctx := storage.GetContext()

	if len(commitment) != commitmentSize {
		panic("issueWithAttestation: incorrect commitment width")
	}
	if isZero(commitment) {
		panic("issueWithAttestation: zero commitment")
	}
	common.RequireHash160(requester, "issueWithAttestation: incorrect requester account")
	common.CheckWitness(requester)

	if len(nonce) != nonceSize {
		panic("issueWithAttestation: incorrect nonce width")
	}
	nonceKey := append([]byte{prefixNonce}, nonce...)
	if storage.Get(ctx, nonceKey) != nil {
		panic("issueWithAttestation: nonce already consumed")
	}

	institutionContractAddr := storage.Get(ctx, institutionContractKey).(interop.Hash160)
	active := contract.Call(institutionContractAddr, "isActive", contract.ReadOnly, institutionID).(bool)
	if !active {
		panic("issueWithAttestation: institution is not active")
	}

	key := contract.Call(institutionContractAddr, "authorizingKey", contract.ReadOnly, institutionID).(interop.PublicKey)
	if !crypto.VerifyWithECDsa(attestedMessage(commitment, institutionID, requester, nonce), key, signature, crypto.Secp256r1) {
		panic("issueWithAttestation: invalid attestation signature")
	}

	storage.Put(ctx, nonceKey, 1)

	assetContractAddr := storage.Get(ctx, assetContractKey).(interop.Hash160)
	assetID := contract.Call(assetContractAddr, "issue",
		contract.All, requester, commitment, institutionID, metadataRef).(int)
	contract.Call(institutionContractAddr, "incrementAttestationCount", contract.All, institutionID)

	runtime.Notify("AssetIssued", requester, commitment, institutionID, assetID)
	runtime.Log("issueWithAttestation: created new asset")

	return assetID
}

// IsNonceUsed returns true if the given nonce has already been consumed by a
// successful issuance.
func IsNonceUsed(nonce []byte) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, append([]byte{prefixNonce}, nonce...)) != nil
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// attestedMessage builds the fixed signed-message layout of an attestation.
func attestedMessage(commitment []byte, institutionID int, requester interop.Hash160, nonce []byte) []byte {
	msg := []byte{}
	msg = append(msg, commitment...)
	msg = append(msg, convert.ToBytes(institutionID)...)
	msg = append(msg, requester...)
	msg = append(msg, nonce...)

	return msg
}

func isZero(data []byte) bool {
	for i := range data {
		if data[i] != 0 {
			return false
		}
	}

	return true
}
