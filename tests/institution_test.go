package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestInstitutionRegister(t *testing.T) {
	s := deployBioMark(t)
	cReg := s.institution.WithSigners(s.registrar)

	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey().Bytes()

	cReg.Invoke(t, int64(1), "register", pub, "Genome Lab", []byte("grid:genome-lab"))

	t.Run("duplicate key", func(t *testing.T) {
		cReg.InvokeFail(t, "authorizing key already registered", "register",
			pub, "Copycat Lab", []byte("grid:copycat"))
	})

	t.Run("bad key width", func(t *testing.T) {
		cReg.InvokeFail(t, "incorrect authorizing key", "register",
			randomBytes(20), "Broken Lab", []byte("grid:broken"))
	})

	t.Run("not a registrar", func(t *testing.T) {
		acc := s.e.NewAccount(t)
		priv2, err := keys.NewPrivateKey()
		require.NoError(t, err)

		s.institution.WithSigners(acc).InvokeFail(t, "registrar witness check failed", "register",
			priv2.PublicKey().Bytes(), "Rogue Lab", []byte("grid:rogue"))
	})

	t.Run("sequential ids", func(t *testing.T) {
		priv2, err := keys.NewPrivateKey()
		require.NoError(t, err)

		cReg.Invoke(t, int64(2), "register",
			priv2.PublicKey().Bytes(), "Proteome Lab", []byte("grid:proteome-lab"))
	})
}

func TestInstitutionActivation(t *testing.T) {
	s := deployBioMark(t)
	cReg := s.institution.WithSigners(s.registrar)

	inst := s.registerInstitution(t, "genome-lab", 1)
	s.institution.Invoke(t, true, "isActive", inst.id)

	cReg.Invoke(t, stackitem.Null{}, "deactivate", inst.id)
	s.institution.Invoke(t, false, "isActive", inst.id)
	cReg.InvokeFail(t, "already inactive", "deactivate", inst.id)

	cReg.Invoke(t, stackitem.Null{}, "reactivate", inst.id)
	s.institution.Invoke(t, true, "isActive", inst.id)
	cReg.InvokeFail(t, "already active", "reactivate", inst.id)

	t.Run("not a registrar", func(t *testing.T) {
		acc := s.e.NewAccount(t)
		s.institution.WithSigners(acc).InvokeFail(t, "registrar witness check failed", "deactivate", inst.id)
	})

	t.Run("unknown institution", func(t *testing.T) {
		cReg.InvokeFail(t, "institution does not exist", "deactivate", int64(42))
		s.institution.Invoke(t, false, "isActive", int64(42))
		s.institution.Invoke(t, false, "isActive", int64(0))
	})
}

func TestInstitutionGetters(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)

	s.institution.Invoke(t, inst.key.PublicKey().Bytes(), "authorizingKey", inst.id)
	s.institution.Invoke(t, inst.key.GetScriptHash().BytesBE(), "resolveAccount", inst.id)
	s.institution.Invoke(t, int64(0), "attestationsOf", inst.id)

	s.institution.InvokeFail(t, "institution does not exist", "get", int64(7))
}

func TestInstitutionList(t *testing.T) {
	s := deployBioMark(t)

	require.Empty(t, iterateInvoke(t, s.institution, "list"))

	s.registerInstitution(t, "genome-lab", 1)
	s.registerInstitution(t, "proteome-lab", 2)

	require.Len(t, iterateInvoke(t, s.institution, "list"), 2)
}

func TestInstitutionAttestationCounter(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)

	s.issueAsset(t, inst, owner, 1)
	s.institution.Invoke(t, int64(1), "attestationsOf", inst.id)

	s.issueAsset(t, inst, owner, 2)
	s.institution.Invoke(t, int64(2), "attestationsOf", inst.id)

	t.Run("gateway only", func(t *testing.T) {
		s.institution.InvokeFail(t, "must be invoked by the issuance gateway",
			"incrementAttestationCount", inst.id)
	})
}
