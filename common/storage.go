package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// IDKey returns the storage key of entity id under the given prefix.
func IDKey(prefix byte, id int) []byte {
	return append([]byte{prefix}, convert.ToBytes(id)...)
}

// FixedID encodes the id with a fixed width so that it can be used inside
// composite keys subject to prefix scans without collisions between ids of
// different byte lengths.
func FixedID(id int) []byte {
	b := convert.ToBytes(id)
	for len(b) < 8 {
		b = append(b, 0)
	}
	return b
}

// NextID increments the entity sequence stored under key and returns the new
// value. The sequence starts at 1, 0 is reserved as the "does not exist"
// sentinel.
func NextID(ctx storage.Context, key interface{}) int {
	id := 1
	data := storage.Get(ctx, key)
	if data != nil {
		id = data.(int) + 1
	}
	storage.Put(ctx, key, id)
	return id
}
