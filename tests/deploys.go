package tests

import (
	"math/big"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	institutionPath = "../institution"
	bioassetPath    = "../bioasset"
	gatewayPath     = "../gateway"
	restakePath     = "../restake"
	licensePath     = "../license"
	revenuePath     = "../revenue"
	metavaultPath   = "../metavault"
)

// rewardRate is the accrual rate the restake contract is deployed with, GAS
// units per second per staked asset.
const rewardRate = 10

// biomarkSuite holds invokers of the whole deployed contract suite, all
// signed by committee by default.
type biomarkSuite struct {
	e *neotest.Executor

	institution *neotest.ContractInvoker
	asset       *neotest.ContractInvoker
	gateway     *neotest.ContractInvoker
	restake     *neotest.ContractInvoker
	license     *neotest.ContractInvoker
	revenue     *neotest.ContractInvoker
	metavault   *neotest.ContractInvoker

	registrar neotest.Signer
	protocol  neotest.Signer
}

// deployBioMark compiles and deploys all contracts cross-wired with each
// other's script hashes. Hashes are known before deployment, so circular
// references between contracts are not a problem.
func deployBioMark(t *testing.T) *biomarkSuite {
	e := newExecutor(t)

	registrar := e.NewAccount(t)
	protocol := e.NewAccount(t)

	ctrInstitution := neotest.CompileFile(t, e.CommitteeHash, institutionPath, path.Join(institutionPath, "config.yml"))
	ctrAsset := neotest.CompileFile(t, e.CommitteeHash, bioassetPath, path.Join(bioassetPath, "config.yml"))
	ctrGateway := neotest.CompileFile(t, e.CommitteeHash, gatewayPath, path.Join(gatewayPath, "config.yml"))
	ctrRestake := neotest.CompileFile(t, e.CommitteeHash, restakePath, path.Join(restakePath, "config.yml"))
	ctrLicense := neotest.CompileFile(t, e.CommitteeHash, licensePath, path.Join(licensePath, "config.yml"))
	ctrRevenue := neotest.CompileFile(t, e.CommitteeHash, revenuePath, path.Join(revenuePath, "config.yml"))
	ctrMetavault := neotest.CompileFile(t, e.CommitteeHash, metavaultPath, path.Join(metavaultPath, "config.yml"))

	e.DeployContract(t, ctrInstitution, []interface{}{registrar.ScriptHash(), ctrGateway.Hash})
	e.DeployContract(t, ctrAsset, []interface{}{ctrGateway.Hash})
	e.DeployContract(t, ctrGateway, []interface{}{ctrInstitution.Hash, ctrAsset.Hash})
	e.DeployContract(t, ctrRestake, []interface{}{ctrAsset.Hash, rewardRate})
	e.DeployContract(t, ctrLicense, []interface{}{ctrAsset.Hash, ctrRevenue.Hash})
	e.DeployContract(t, ctrRevenue, []interface{}{ctrAsset.Hash, ctrInstitution.Hash, protocol.ScriptHash()})
	e.DeployContract(t, ctrMetavault, []interface{}{ctrAsset.Hash})

	return &biomarkSuite{
		e:           e,
		institution: e.CommitteeInvoker(ctrInstitution.Hash),
		asset:       e.CommitteeInvoker(ctrAsset.Hash),
		gateway:     e.CommitteeInvoker(ctrGateway.Hash),
		restake:     e.CommitteeInvoker(ctrRestake.Hash),
		license:     e.CommitteeInvoker(ctrLicense.Hash),
		revenue:     e.CommitteeInvoker(ctrRevenue.Hash),
		metavault:   e.CommitteeInvoker(ctrMetavault.Hash),
		registrar:   registrar,
		protocol:    protocol,
	}
}

// testInstitution is a registered institution together with its authorizing
// key pair used to sign attestations in tests.
type testInstitution struct {
	id  int64
	key *keys.PrivateKey
}

func (s *biomarkSuite) registerInstitution(t *testing.T, name string, expectedID int64) testInstitution {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)

	s.institution.WithSigners(s.registrar).Invoke(t, expectedID, "register",
		priv.PublicKey().Bytes(), name, []byte("grid:"+name))

	return testInstitution{id: expectedID, key: priv}
}

// signAttestation builds the institution's approval over the issuance
// request exactly the way the gateway reconstructs it.
func signAttestation(inst testInstitution, commitment []byte, requester util.Uint160, nonce []byte) []byte {
	msg := append([]byte{}, commitment...)
	msg = append(msg, bigint.ToBytes(big.NewInt(inst.id))...)
	msg = append(msg, requester.BytesBE()...)
	msg = append(msg, nonce...)

	return inst.key.Sign(msg)
}

// issueAsset runs a full attested issuance for the owner and returns the
// commitment the new asset is bound to.
func (s *biomarkSuite) issueAsset(t *testing.T, inst testInstitution, owner neotest.Signer, expectedID int64) []byte {
	commitment := randomBytes(32)
	nonce := randomBytes(32)
	sig := signAttestation(inst, commitment, owner.ScriptHash(), nonce)

	s.gateway.WithSigners(owner).Invoke(t, expectedID, "issueWithAttestation",
		owner.ScriptHash(), commitment, inst.id, []byte("ipfs://asset"), nonce, sig)

	return commitment
}

func (s *biomarkSuite) depositRewards(t *testing.T, from neotest.Signer, amount int64) {
	s.restake.WithSigners(from).Invoke(t, stackitem.Null{}, "depositRewards", from.ScriptHash(), amount)
}
