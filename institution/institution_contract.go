package institution

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/biomark/biomark-contract/common"
)

// Institution groups everything the registry knows about a single verified
// institution. Id 0 is reserved as the "does not exist" sentinel.
type Institution struct {
	ID           int
	Key          interop.PublicKey
	Name         string
	MetadataRef  []byte
	Active       bool
	RegisteredAt int
	Attestations int
}

const (
	counterKey   = 'c'
	registrarKey = 'r'

	gatewayContractKey = 'g'

	prefixInstitution = 'i'
	prefixKeyIndex    = 'k'
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]interface{})
	registrar := args[0].(interop.Hash160)
	addrGateway := args[1].(interop.Hash160)

	common.RequireHash160(registrar, "init: incorrect registrar account")
	common.RequireHash160(addrGateway, "init: incorrect length of contract script hash")

	storage.Put(ctx, registrarKey, registrar)
	storage.Put(ctx, gatewayContractKey, addrGateway)

	runtime.Log("institution contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data interface{}) {
	common.CheckCommitteeWitness()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("institution contract updated")
}

// Register adds a new institution with the given authorizing key, assigns it
// the next sequence id and activates it. It can be invoked only by the
// registrar account fixed at deploy time. The authorizing key must not be
// registered yet.
//
// Produces InstitutionRegistered notification.
func Register(key interop.PublicKey, name string, metadataRef []byte) int {
	ctx := storage.GetContext()
	checkRegistrarWitness(ctx)

	if len(key) != interop.PublicKeyCompressedLen {
		panic("register: incorrect authorizing key")
	}

	keyIndex := append([]byte{prefixKeyIndex}, key...)
	if storage.Get(ctx, keyIndex) != nil {
		panic("register: authorizing key already registered")
	}

	id := common.NextID(ctx, counterKey)
	inst := Institution{
		ID:           id,
		Key:          key,
		Name:         name,
		MetadataRef:  metadataRef,
		Active:       true,
		RegisteredAt: runtime.GetTime(),
		Attestations: 0,
	}

	common.SetSerialized(ctx, common.IDKey(prefixInstitution, id), inst)
	storage.Put(ctx, keyIndex, id)

	runtime.Notify("InstitutionRegistered", id, key, name)
	runtime.Log("register: added new institution")

	return id
}

// Deactivate marks the institution inactive. It can be invoked only by the
// registrar and fails if the institution is unknown or already inactive.
//
// Produces InstitutionDeactivated notification.
func Deactivate(id int) {
	ctx := storage.GetContext()
	checkRegistrarWitness(ctx)

	inst := getInstitution(ctx, id)
	if !inst.Active {
		panic("deactivate: institution is already inactive")
	}

	inst.Active = false
	common.SetSerialized(ctx, common.IDKey(prefixInstitution, id), inst)

	runtime.Notify("InstitutionDeactivated", id)
}

// Reactivate marks a previously deactivated institution active again. It can
// be invoked only by the registrar and fails if the institution is unknown or
// already active.
//
// Produces InstitutionReactivated notification.
func Reactivate(id int) {
	ctx := storage.GetContext()
	checkRegistrarWitness(ctx)

	inst := getInstitution(ctx, id)
	if inst.Active {
		panic("reactivate: institution is already active")
	}

	inst.Active = true
	common.SetSerialized(ctx, common.IDKey(prefixInstitution, id), inst)

	runtime.Notify("InstitutionReactivated", id)
}

// IsActive returns true if the institution with the given id is registered
// and active. It returns false for id 0 and ids out of range, it never
// panics.
func IsActive(id int) bool {
	ctx := storage.GetReadOnlyContext()
	if id < 1 {
		return false
	}

	data := storage.Get(ctx, common.IDKey(prefixInstitution, id))
	if data == nil {
		return false
	}

	return std.Deserialize(data.([]byte)).(Institution).Active
}

// Get returns the Institution structure of the registered institution.
func Get(id int) Institution {
	ctx := storage.GetReadOnlyContext()
	return getInstitution(ctx, id)
}

// AuthorizingKey returns the registered authorizing key of the institution.
func AuthorizingKey(id int) interop.PublicKey {
	ctx := storage.GetReadOnlyContext()
	return getInstitution(ctx, id).Key
}

// ResolveAccount returns the standard signature account of the institution's
// authorizing key. Revenue shares of the institution are credited to this
// account.
func ResolveAccount(id int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return contract.CreateStandardAccount(getInstitution(ctx, id).Key)
}

// AttestationsOf returns the number of attestations the institution has
// signed off.
func AttestationsOf(id int) int {
	ctx := storage.GetReadOnlyContext()
	return getInstitution(ctx, id).Attestations
}

// IncrementAttestationCount increases the attestation counter of an active
// institution by one. It can be invoked only by the issuance gateway
// contract.
//
// Produces AttestationRecorded notification.
func IncrementAttestationCount(id int) {
	ctx := storage.GetContext()

	if !common.FromKnownContract(ctx, runtime.GetCallingScriptHash(), gatewayContractKey) {
		panic("incrementAttestationCount: must be invoked by the issuance gateway")
	}

	inst := getInstitution(ctx, id)
	if !inst.Active {
		panic("incrementAttestationCount: institution is inactive")
	}

	inst.Attestations = inst.Attestations + 1
	common.SetSerialized(ctx, common.IDKey(prefixInstitution, id), inst)

	runtime.Notify("AttestationRecorded", id, inst.Attestations)
}

// List returns an iterator over all registered institutions.
func List() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixInstitution}, storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkRegistrarWitness(ctx storage.Context) {
	registrar := storage.Get(ctx, registrarKey).(interop.Hash160)
	if !runtime.CheckWitness(registrar) {
		panic("registrar witness check failed")
	}
}

func getInstitution(ctx storage.Context, id int) Institution {
	if id < 1 {
		panic("institution does not exist")
	}

	data := storage.Get(ctx, common.IDKey(prefixInstitution, id))
	if data == nil {
		panic("institution does not exist")
	}

	return std.Deserialize(data.([]byte)).(Institution)
}
