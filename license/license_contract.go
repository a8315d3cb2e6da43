package license

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

// License is a grant of usage rights over a single asset. Exactly one of the
// bound fields is meaningful depending on Kind: ExpiresAt for timed grants,
// UsageLimit for usage-bound ones, neither for perpetual.
type License struct {
	ID         int
	Asset      int
	Licensee   interop.Hash160
	Kind       int
	ExpiresAt  int
	UsageLimit int
	UsageCount int
	Price      int
	Active     bool
}

// License kinds.
const (
	KindTimed     = 1
	KindUsage     = 2
	KindPerpetual = 3
)

const (
	assetContractKey   = 'a'
	revenueContractKey = 'v'
	counterKey         = 'c'

	prefixLicense      = 'l'
	prefixAssetLicense = 'x'
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
	addrRevenue := args[1].(interop.Hash160)

	common.RequireHash160(addrAsset, "init: incorrect length of contract script hash")
	common.RequireHash160(addrRevenue, "init: incorrect length of contract script hash")

	storage.Put(ctx, assetContractKey, addrAsset)
	storage.Put(ctx, revenueContractKey, addrRevenue)

	runtime.Log("license contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data interface{}) {
	common.CheckCommitteeWitness()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("license contract updated")
}

// IssueLicense grants the licensee usage rights over the asset and returns
// the id of the new license. Only the current asset owner may issue and must
// witness the invocation. For timed licenses duration is the validity window
// in seconds from the current block time; for usage-bound ones usageLimit is
// the number of permitted uses; perpetual licenses ignore both. When payment
// is positive it must cover the price and is routed through the Revenue
// contract with the owner as payer.
//
// Produces LicenseIssued notification.
func IssueLicense(assetID int, licensee interop.Hash160, kind, duration, usageLimit, price, payment int) int {
	ctx := storage.GetContext()

	common.RequireHash160(licensee, "issueLicense: incorrect licensee account")

	assetContractAddr := storage.Get(ctx, assetContractKey).(interop.Hash160)
	owner := contract.Call(assetContractAddr, "ownerOf", contract.ReadOnly, assetID).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	record := License{
		Licensee: licensee,
		Asset:    assetID,
		Kind:     kind,
		Price:    price,
		Active:   true,
	}

	switch kind {
	case KindTimed:
		if duration <= 0 {
			panic("issueLicense: nonpositive duration")
		}
		record.ExpiresAt = runtime.GetTime() + duration*1000
	case KindUsage:
		if usageLimit <= 0 {
			panic("issueLicense: nonpositive usage limit")
		}
		record.UsageLimit = usageLimit
	case KindPerpetual:
	default:
		panic("issueLicense: unknown license kind")
	}

	if price < 0 {
		panic("issueLicense: negative price")
	}
	if payment < price {
		panic("issueLicense: payment does not cover the price")
	}
	if payment > 0 {
		revenueContractAddr := storage.Get(ctx, revenueContractKey).(interop.Hash160)
		contract.Call(revenueContractAddr, "distribute", contract.All, owner, assetID, payment)
	}

	id := common.NextID(ctx, counterKey)
	record.ID = id

	common.SetSerialized(ctx, common.IDKey(prefixLicense, id), record)
	storage.Put(ctx, assetLicenseKey(assetID, id), id)

	runtime.Notify("LicenseIssued", id, assetID, licensee, kind)
	return id
}

// RevokeLicense deactivates the license ahead of its natural end. Either the
// current asset owner or committee may revoke. Revocation is terminal, an
// already inactive license can not be revoked again.
//
// Produces LicenseRevoked notification.
func RevokeLicense(id int) {
	ctx := storage.GetContext()

	record := getLicense(ctx, id)
	if !record.Active {
		panic("revokeLicense: license is not active")
	}

	assetContractAddr := storage.Get(ctx, assetContractKey).(interop.Hash160)
	owner := contract.Call(assetContractAddr, "ownerOf", contract.ReadOnly, record.Asset).(interop.Hash160)
	if !runtime.CheckWitness(owner) && !runtime.CheckWitness(common.CommitteeAddress()) {
		panic("revokeLicense: " + common.ErrWitnessFailed)
	}

	record.Active = false
	common.SetSerialized(ctx, common.IDKey(prefixLicense, id), record)

	runtime.Notify("LicenseRevoked", id, record.Asset)
}

// RecordUsage counts one use against the license. Only the licensee or
// committee may record usage, and the license must be valid at the current
// block time. A usage-bound license that reaches its limit stays stored with
// the exhausted counter but is no longer valid.
//
// Produces UsageRecorded notification.
func RecordUsage(id int) {
	ctx := storage.GetContext()

	record := getLicense(ctx, id)
	if !runtime.CheckWitness(record.Licensee) && !runtime.CheckWitness(common.CommitteeAddress()) {
		panic("recordUsage: " + common.ErrWitnessFailed)
	}
	if !isValid(record, runtime.GetTime()) {
		panic("recordUsage: license is not valid")
	}

	record.UsageCount = record.UsageCount + 1
	common.SetSerialized(ctx, common.IDKey(prefixLicense, id), record)

	runtime.Notify("UsageRecorded", id, record.UsageCount)
}

// IsLicenseValid returns true if the license exists, is active and its
// kind-specific bound is not exhausted at the current block time. It never
// panics.
func IsLicenseValid(id int) bool {
	if id < 1 {
		return false
	}

	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, common.IDKey(prefixLicense, id))
	if data == nil {
		return false
	}

	return isValid(std.Deserialize(data.([]byte)).(License), runtime.GetTime())
}

// GetLicense returns the full license record.
func GetLicense(id int) License {
	ctx := storage.GetReadOnlyContext()
	return getLicense(ctx, id)
}

// LicensesOf returns an iterator over ids of all licenses ever issued for
// the asset, including expired and revoked ones.
func LicensesOf(assetID int) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	prefix := append([]byte{prefixAssetLicense}, common.FixedID(assetID)...)
	return storage.Find(ctx, prefix, storage.ValuesOnly)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func isValid(record License, now int) bool {
	if !record.Active {
		return false
	}

	switch record.Kind {
	case KindTimed:
		return now < record.ExpiresAt
	case KindUsage:
		return record.UsageCount < record.UsageLimit
	default:
		return true
	}
}

func assetLicenseKey(assetID, id int) []byte {
	key := append([]byte{prefixAssetLicense}, common.FixedID(assetID)...)
	return append(key, convert.ToBytes(id)...)
}

func getLicense(ctx storage.Context, id int) License {
	data := storage.Get(ctx, common.IDKey(prefixLicense, id))
	if data == nil {
		panic("license does not exist")
	}

	return std.Deserialize(data.([]byte)).(License)
}
