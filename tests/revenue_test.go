package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestRevenueDistribute(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	payer := s.e.NewAccount(t)
	instAccount := inst.key.GetScriptHash()

	s.issueAsset(t, inst, owner, 1)

	s.revenue.WithSigners(payer).Invoke(t, stackitem.Null{}, "distribute",
		payer.ScriptHash(), int64(1), int64(10))

	s.revenue.Invoke(t, int64(7), "pendingOf", owner.ScriptHash())
	s.revenue.Invoke(t, int64(2), "pendingOf", instAccount.BytesBE())
	s.revenue.Invoke(t, int64(1), "pendingOf", s.protocol.ScriptHash())

	t.Run("rounding keeps the dust", func(t *testing.T) {
		// 9 splits into 6/1/0, two units stay on the contract.
		s.revenue.WithSigners(payer).Invoke(t, stackitem.Null{}, "distribute",
			payer.ScriptHash(), int64(1), int64(9))

		s.revenue.Invoke(t, int64(13), "pendingOf", owner.ScriptHash())
		s.revenue.Invoke(t, int64(3), "pendingOf", instAccount.BytesBE())
		s.revenue.Invoke(t, int64(1), "pendingOf", s.protocol.ScriptHash())
		require.Equal(t, int64(19), gasBalance(t, s.e, s.revenue.Hash))
	})

	t.Run("payer witness required", func(t *testing.T) {
		stranger := s.e.NewAccount(t)
		s.revenue.WithSigners(stranger).InvokeFail(t, "owner witness check failed", "distribute",
			payer.ScriptHash(), int64(1), int64(10))
	})

	t.Run("nonpositive amount", func(t *testing.T) {
		s.revenue.WithSigners(payer).InvokeFail(t, "nonpositive amount", "distribute",
			payer.ScriptHash(), int64(1), int64(0))
	})

	t.Run("unknown asset", func(t *testing.T) {
		s.revenue.WithSigners(payer).InvokeFail(t, "asset does not exist", "distribute",
			payer.ScriptHash(), int64(5), int64(10))
	})
}

func TestRevenueWithdraw(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	payer := s.e.NewAccount(t)

	s.issueAsset(t, inst, owner, 1)
	s.revenue.WithSigners(payer).Invoke(t, stackitem.Null{}, "distribute",
		payer.ScriptHash(), int64(1), int64(10_000))

	t.Run("witness required", func(t *testing.T) {
		stranger := s.e.NewAccount(t)
		s.revenue.WithSigners(stranger).InvokeFail(t, "owner witness check failed",
			"withdraw", owner.ScriptHash())
	})

	s.revenue.WithSigners(owner).Invoke(t, stackitem.Null{}, "withdraw", owner.ScriptHash())
	s.revenue.Invoke(t, int64(0), "pendingOf", owner.ScriptHash())
	require.Equal(t, int64(3_000), gasBalance(t, s.e, s.revenue.Hash))

	s.revenue.WithSigners(owner).InvokeFail(t, "nothing to withdraw", "withdraw", owner.ScriptHash())

	s.revenue.WithSigners(s.protocol).Invoke(t, stackitem.Null{}, "withdraw", s.protocol.ScriptHash())
	require.Equal(t, int64(2_000), gasBalance(t, s.e, s.revenue.Hash))
	s.revenue.Invoke(t, int64(0), "pendingOf", s.protocol.ScriptHash())
}

func TestRevenueUpdateShares(t *testing.T) {
	s := deployBioMark(t)

	inst := s.registerInstitution(t, "genome-lab", 1)
	owner := s.e.NewAccount(t)
	payer := s.e.NewAccount(t)

	s.issueAsset(t, inst, owner, 1)

	t.Run("committee only", func(t *testing.T) {
		s.revenue.WithSigners(payer).InvokeFail(t, "committee witness check failed",
			"updateShares", int64(5000), int64(4000), int64(1000))
	})

	t.Run("must sum to 10000", func(t *testing.T) {
		s.revenue.InvokeFail(t, "shares must sum to 10000 basis points",
			"updateShares", int64(5000), int64(4000), int64(2000))
		s.revenue.InvokeFail(t, "negative share",
			"updateShares", int64(11000), int64(-2000), int64(1000))
	})

	s.revenue.Invoke(t, stackitem.Null{}, "updateShares", int64(5000), int64(4000), int64(1000))

	s.revenue.WithSigners(payer).Invoke(t, stackitem.Null{}, "distribute",
		payer.ScriptHash(), int64(1), int64(10))

	s.revenue.Invoke(t, int64(5), "pendingOf", owner.ScriptHash())
	s.revenue.Invoke(t, int64(4), "pendingOf", inst.key.GetScriptHash().BytesBE())
	s.revenue.Invoke(t, int64(1), "pendingOf", s.protocol.ScriptHash())
}

func TestRevenueStrayPayments(t *testing.T) {
	s := deployBioMark(t)

	neoHash := s.e.NativeHash(t, nativenames.Neo)
	neoInvoker := s.e.CommitteeInvoker(neoHash)

	// Assets other than GAS bounce off the contract.
	neoInvoker.InvokeFail(t, "only GAS is accepted", "transfer",
		s.e.Validator.ScriptHash(), s.revenue.Hash, int64(1), nil)
}
