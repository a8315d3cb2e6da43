package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

func TestMetaVaultStore(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	cOwner := s.metavault.WithSigners(owner)

	s.issueAsset(t, inst, owner, 1)

	ref := []byte("ipfs://bafy-dataset")
	wrapped := randomBytes(48)

	t.Run("owner only", func(t *testing.T) {
		stranger := s.e.NewAccount(t)
		s.metavault.WithSigners(stranger).InvokeFail(t, "owner witness check failed",
			"store", int64(1), ref, wrapped)
	})

	t.Run("empty values", func(t *testing.T) {
		cOwner.InvokeFail(t, "empty metadata reference", "store", int64(1), []byte{}, wrapped)
		cOwner.InvokeFail(t, "empty wrapped key", "store", int64(1), ref, []byte{})
	})

	cOwner.Invoke(t, stackitem.Null{}, "store", int64(1), ref, wrapped)
	cOwner.Invoke(t, ref, "getRef", int64(1), owner.ScriptHash())
	cOwner.Invoke(t, wrapped, "getKey", int64(1), owner.ScriptHash())

	t.Run("overwrite", func(t *testing.T) {
		ref2 := []byte("ipfs://bafy-dataset-v2")
		cOwner.Invoke(t, stackitem.Null{}, "store", int64(1), ref2, wrapped)
		cOwner.Invoke(t, ref2, "getRef", int64(1), owner.ScriptHash())
	})

	t.Run("nothing stored", func(t *testing.T) {
		s.issueAsset(t, inst, owner, 2)
		cOwner.InvokeFail(t, "no metadata stored for the asset", "getRef", int64(2), owner.ScriptHash())
	})
}

func TestMetaVaultAccessControl(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	collaborator := s.e.NewAccount(t)
	cOwner := s.metavault.WithSigners(owner)
	cCollab := s.metavault.WithSigners(collaborator)

	s.issueAsset(t, inst, owner, 1)

	ref := []byte("ipfs://bafy-dataset")
	wrapped := randomBytes(48)
	cOwner.Invoke(t, stackitem.Null{}, "store", int64(1), ref, wrapped)

	t.Run("denied before the grant", func(t *testing.T) {
		cCollab.InvokeFail(t, "metadata access denied", "getRef", int64(1), collaborator.ScriptHash())
		cCollab.InvokeFail(t, "metadata access denied", "getKey", int64(1), collaborator.ScriptHash())
	})

	t.Run("requester witness required", func(t *testing.T) {
		// The collaborator can not pull data under the owner's name.
		cCollab.InvokeFail(t, "witness check failed", "getRef", int64(1), owner.ScriptHash())
	})

	wrappedForCollab := randomBytes(48)
	cOwner.Invoke(t, stackitem.Null{}, "grantAccess", int64(1), collaborator.ScriptHash(), wrappedForCollab)
	s.metavault.Invoke(t, true, "hasAccess", int64(1), collaborator.ScriptHash())

	cCollab.Invoke(t, ref, "getRef", int64(1), collaborator.ScriptHash())
	// Each reader gets the key wrapped for them, not the owner's copy.
	cCollab.Invoke(t, wrappedForCollab, "getKey", int64(1), collaborator.ScriptHash())
	cOwner.Invoke(t, wrapped, "getKey", int64(1), owner.ScriptHash())

	t.Run("double grant", func(t *testing.T) {
		cOwner.InvokeFail(t, "access already granted", "grantAccess",
			int64(1), collaborator.ScriptHash(), wrappedForCollab)
	})

	t.Run("empty wrapped key", func(t *testing.T) {
		other := s.e.NewAccount(t)
		cOwner.InvokeFail(t, "empty wrapped key", "grantAccess",
			int64(1), other.ScriptHash(), []byte{})
	})

	t.Run("owner gates the list", func(t *testing.T) {
		cCollab.InvokeFail(t, "owner witness check failed", "grantAccess",
			int64(1), collaborator.ScriptHash(), randomBytes(48))
		cCollab.InvokeFail(t, "owner witness check failed", "revokeAccess",
			int64(1), collaborator.ScriptHash())
	})

	cOwner.Invoke(t, stackitem.Null{}, "revokeAccess", int64(1), collaborator.ScriptHash())
	s.metavault.Invoke(t, false, "hasAccess", int64(1), collaborator.ScriptHash())
	cCollab.InvokeFail(t, "metadata access denied", "getRef", int64(1), collaborator.ScriptHash())

	t.Run("double revoke", func(t *testing.T) {
		cOwner.InvokeFail(t, "access is not granted", "revokeAccess", int64(1), collaborator.ScriptHash())
	})
}

func TestMetaVaultOwnershipFollowsAsset(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	receiver := s.e.NewAccount(t)

	s.issueAsset(t, inst, owner, 1)
	s.metavault.WithSigners(owner).Invoke(t, stackitem.Null{}, "store",
		int64(1), []byte("ipfs://bafy-dataset"), randomBytes(48))

	s.asset.WithSigners(owner).Invoke(t, stackitem.Null{}, "transfer",
		int64(1), owner.ScriptHash(), receiver.ScriptHash())

	// Read rights move with the token.
	s.metavault.WithSigners(owner).InvokeFail(t, "metadata access denied",
		"getRef", int64(1), owner.ScriptHash())
	s.metavault.WithSigners(receiver).Invoke(t, []byte("ipfs://bafy-dataset"),
		"getRef", int64(1), receiver.ScriptHash())
}
