package codec

import (
	"encoding/binary"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the cost of reflection in `binary.Size` on every call.
// Decoders may run on many goroutines at once, so the cache is concurrent-safe.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// SizeOf returns the encoded size of T, which must be composed only of
// fixed-size fields (no slices, maps, strings or interfaces). It returns -1
// for anything binary.Size rejects. The result is cached per type.
func SizeOf[T any]() int {
	t := reflect.TypeFor[T]()

	if size, ok := sizeCache.Load(t); ok {
		return size
	}

	var zero T
	size := binary.Size(&zero)

	sizeCache.Store(t, size)
	return size
}
