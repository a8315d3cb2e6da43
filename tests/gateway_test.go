package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

func TestGatewayIssue(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)

	commitment := s.issueAsset(t, inst, owner, 1)

	s.asset.Invoke(t, int64(1), "lookupByCommitment", commitment)
	s.asset.Invoke(t, owner.ScriptHash().BytesBE(), "ownerOf", int64(1))
	s.asset.Invoke(t, inst.id, "institutionOf", int64(1))
	s.asset.Invoke(t, int64(1), "totalSupply")
}

func TestGatewayRequesterChecks(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	stranger := s.e.NewAccount(t)

	commitment := randomBytes(32)
	nonce := randomBytes(32)
	sig := signAttestation(inst, commitment, owner.ScriptHash(), nonce)

	t.Run("no requester witness", func(t *testing.T) {
		s.gateway.WithSigners(stranger).InvokeFail(t, "witness check failed", "issueWithAttestation",
			owner.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), nonce, sig)
	})

	t.Run("signature bound to requester", func(t *testing.T) {
		// The attestation names the owner, a different requester can not
		// use it even with a valid witness.
		s.gateway.WithSigners(stranger).InvokeFail(t, "invalid attestation signature", "issueWithAttestation",
			stranger.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), nonce, sig)
	})

	s.gateway.WithSigners(owner).Invoke(t, int64(1), "issueWithAttestation",
		owner.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), nonce, sig)
}

func TestGatewayNonceReplay(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	cOwner := s.gateway.WithSigners(owner)

	commitment := randomBytes(32)
	nonce := randomBytes(32)
	sig := signAttestation(inst, commitment, owner.ScriptHash(), nonce)

	s.gateway.Invoke(t, false, "isNonceUsed", nonce)
	cOwner.Invoke(t, int64(1), "issueWithAttestation",
		owner.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), nonce, sig)
	s.gateway.Invoke(t, true, "isNonceUsed", nonce)

	// Fresh commitment, fresh signature, same nonce.
	commitment2 := randomBytes(32)
	sig2 := signAttestation(inst, commitment2, owner.ScriptHash(), nonce)
	cOwner.InvokeFail(t, "nonce already consumed", "issueWithAttestation",
		owner.ScriptHash(), commitment2, inst.id, []byte("ipfs://asset"), nonce, sig2)
}

func TestGatewayRejections(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	cOwner := s.gateway.WithSigners(owner)

	commitment := randomBytes(32)
	nonce := randomBytes(32)
	sig := signAttestation(inst, commitment, owner.ScriptHash(), nonce)

	t.Run("bad commitment width", func(t *testing.T) {
		cOwner.InvokeFail(t, "incorrect commitment width", "issueWithAttestation",
			owner.ScriptHash(), randomBytes(31), inst.id, []byte("ipfs://asset"), nonce, sig)
	})

	t.Run("zero commitment", func(t *testing.T) {
		cOwner.InvokeFail(t, "zero commitment", "issueWithAttestation",
			owner.ScriptHash(), make([]byte, 32), inst.id, []byte("ipfs://asset"), nonce, sig)
	})

	t.Run("bad nonce width", func(t *testing.T) {
		cOwner.InvokeFail(t, "incorrect nonce width", "issueWithAttestation",
			owner.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), randomBytes(8), sig)
	})

	t.Run("tampered signature", func(t *testing.T) {
		bad := append([]byte{}, sig...)
		bad[0] ^= 0xff
		cOwner.InvokeFail(t, "invalid attestation signature", "issueWithAttestation",
			owner.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), nonce, bad)
	})

	t.Run("inactive institution", func(t *testing.T) {
		s.institution.WithSigners(s.registrar).Invoke(t, stackitem.Null{}, "deactivate", inst.id)
		cOwner.InvokeFail(t, "institution is not active", "issueWithAttestation",
			owner.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), nonce, sig)
		s.institution.WithSigners(s.registrar).Invoke(t, stackitem.Null{}, "reactivate", inst.id)
	})

	cOwner.Invoke(t, int64(1), "issueWithAttestation",
		owner.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), nonce, sig)
}
