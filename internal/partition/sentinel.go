package partition

import (
	"math"
	"unsafe"
)

// Undecided returns the UNDECIDED sentinel for vertex type V: the maximum
// representable value of the instantiated width, per the data model
// ("a reserved maximum"). It is computed from the type's size rather than
// a fixed constant so the same code works whether V is instantiated as a
// 32-bit or 64-bit vertex id.
func Undecided[V Vertex]() V {
	var v V
	if unsafe.Sizeof(v) == 4 {
		return V(math.MaxInt32)
	}
	max64 := int64(math.MaxInt64)
	return V(max64)
}
