// Package bioasset contains RPC wrappers for BioMark BioAsset contract.
package bioasset

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Asset is a contract-specific bioasset.Asset type used by its methods.
type Asset struct {
	ID          *big.Int
	Owner       util.Uint160
	Commitment  []byte
	Institution *big.Int
	MetadataRef []byte
	Locked      bool
}

// TransferEvent represents "Transfer" event emitted by the contract.
type TransferEvent struct {
	From    util.Uint160
	To      util.Uint160
	Amount  *big.Int
	TokenID []byte
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Symbol invokes `symbol` method of contract.
func (c *ContractReader) Symbol() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "symbol"))
}

// Decimals invokes `decimals` method of contract.
func (c *ContractReader) Decimals() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "decimals"))
}

// TotalSupply invokes `totalSupply` method of contract.
func (c *ContractReader) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply"))
}

// BalanceOf invokes `balanceOf` method of contract.
func (c *ContractReader) BalanceOf(owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", owner))
}

// OwnerOf invokes `ownerOf` method of contract.
func (c *ContractReader) OwnerOf(assetID *big.Int) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "ownerOf", assetID))
}

// InstitutionOf invokes `institutionOf` method of contract.
func (c *ContractReader) InstitutionOf(assetID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "institutionOf", assetID))
}

// LookupByCommitment invokes `lookupByCommitment` method of contract.
func (c *ContractReader) LookupByCommitment(commitment []byte) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "lookupByCommitment", commitment))
}

// Get invokes `get` method of contract.
func (c *ContractReader) Get(assetID *big.Int) (*Asset, error) {
	return itemToAsset(unwrap.Item(c.invoker.Call(c.hash, "get", assetID)))
}

// Properties invokes `properties` method of contract.
func (c *ContractReader) Properties(assetID *big.Int) (*stackitem.Map, error) {
	return unwrap.Map(c.invoker.Call(c.hash, "properties", assetID))
}

// TokensOf invokes `tokensOf` method of contract.
func (c *ContractReader) TokensOf(owner util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "tokensOf", owner))
}

// TokensOfExpanded is similar to TokensOf (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) TokensOfExpanded(owner util.Uint160, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "tokensOf", _numOfIteratorItems, owner))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Transfer creates a transaction invoking `transfer` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Transfer(assetID *big.Int, from util.Uint160, to util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transfer", assetID, from, to)
}

// TransferTransaction creates a transaction invoking `transfer` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferTransaction(assetID *big.Int, from util.Uint160, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transfer", assetID, from, to)
}

// TransferUnsigned creates a transaction invoking `transfer` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferUnsigned(assetID *big.Int, from util.Uint160, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transfer", nil, assetID, from, to)
}

// SetTransferLock creates a transaction invoking `setTransferLock` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetTransferLock(assetID *big.Int, locked bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setTransferLock", assetID, locked)
}

// SetTransferLockTransaction creates a transaction invoking `setTransferLock` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetTransferLockTransaction(assetID *big.Int, locked bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setTransferLock", assetID, locked)
}

// SetTransferLockUnsigned creates a transaction invoking `setTransferLock` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetTransferLockUnsigned(assetID *big.Int, locked bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setTransferLock", nil, assetID, locked)
}

// SetMetadataRef creates a transaction invoking `setMetadataRef` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetMetadataRef(assetID *big.Int, metadataRef []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setMetadataRef", assetID, metadataRef)
}

// SetMetadataRefTransaction creates a transaction invoking `setMetadataRef` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetMetadataRefTransaction(assetID *big.Int, metadataRef []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setMetadataRef", assetID, metadataRef)
}

// SetMetadataRefUnsigned creates a transaction invoking `setMetadataRef` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetMetadataRefUnsigned(assetID *big.Int, metadataRef []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setMetadataRef", nil, assetID, metadataRef)
}

// Burn creates a transaction invoking `burn` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Burn(assetID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "burn", assetID)
}

// BurnTransaction creates a transaction invoking `burn` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BurnTransaction(assetID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "burn", assetID)
}

// BurnUnsigned creates a transaction invoking `burn` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BurnUnsigned(assetID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "burn", nil, assetID)
}

func itemToAsset(item stackitem.Item, err error) (*Asset, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Asset)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Asset from the given
// [stackitem.Item] or returns an error if it's not possible to do to due
// to type mismatch.
func (res *Asset) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Owner, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.Commitment, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Commitment: %w", err)
	}

	index++
	res.Institution, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Institution: %w", err)
	}

	index++
	res.MetadataRef, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field MetadataRef: %w", err)
	}

	index++
	res.Locked, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Locked: %w", err)
	}

	return nil
}

// TransferEventsFromApplicationLog retrieves a set of all emitted events
// with "Transfer" name from the provided [result.ApplicationLog].
func TransferEventsFromApplicationLog(log *result.ApplicationLog) ([]*TransferEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*TransferEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Transfer" {
				continue
			}
			event := new(TransferEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize TransferEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to TransferEvent or
// returns an error if it's not possible to do to due to type mismatch.
func (e *TransferEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.From, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.To, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.TokenID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field TokenID: %w", err)
	}

	return nil
}
