package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// BytesEqual compares two slices of bytes by wrapping them into strings,
// which is necessary with new util.Equal interop behaviour, see neo-go#1176.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}

// FromKnownContract returns true if the caller is a contract whose script
// hash is stored under the given storage key.
func FromKnownContract(ctx storage.Context, caller interop.Hash160, key interface{}) bool {
	addr := storage.Get(ctx, key).(interop.Hash160)
	return BytesEqual(caller, addr)
}

// RequireHash160 panics with the given message unless h is a correct
// script hash.
func RequireHash160(h interop.Hash160, panicMsg string) {
	if len(h) != interop.Hash160Len {
		panic(panicMsg)
	}
}
