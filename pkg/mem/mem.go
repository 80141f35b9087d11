/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package mem hands out owned, bounds-checked handles to memory-mapped
// device regions.
package mem

import (
	"sync/atomic"
	"unsafe"
)

// Mapper acquires and releases named regions.
type Mapper interface {
	// Map returns a handle to the region called name. A size of 0 maps
	// the whole region as reported by the device.
	Map(name string, size int) (*Region, error)
	// MapReadOnly is Map for regions the caller only reads, such as the
	// capture buffer. Writes through the returned handle panic.
	MapReadOnly(name string, size int) (*Region, error)
	Unmap(r *Region) error
}

// Region is a contiguous span of device memory. Register accessors are
// 32-bit wide and must be 4-byte aligned.
type Region struct {
	Name string
	// Phys is the bus address of the first byte, 0 when not known.
	Phys     uint64
	data     []byte
	readOnly bool
}

// NewRegion wraps data, which must stay valid until the region is unmapped.
func NewRegion(name string, phys uint64, data []byte) *Region {
	return &Region{
		Name: name,
		Phys: phys,
		data: data,
	}
}

// Size returns the region length in bytes.
func (r *Region) Size() int {
	return len(r.data)
}

// Bytes exposes the region memory.
func (r *Region) Bytes() []byte {
	return r.data
}

// ReadOnly reports whether the region was mapped without write access.
func (r *Region) ReadOnly() bool {
	return r.readOnly
}

func (r *Region) word(offset uint32) *uint32 {
	if offset%4 != 0 || uint64(offset)+4 > uint64(len(r.data)) {
		panic(ErrOffset{Region: r.Name, Offset: offset, Size: len(r.data)})
	}
	return (*uint32)(unsafe.Pointer(&r.data[offset]))
}

// Uint32 reads the 32-bit word at offset.
func (r *Region) Uint32(offset uint32) uint32 {
	return atomic.LoadUint32(r.word(offset))
}

// PutUint32 writes value to the 32-bit word at offset.
func (r *Region) PutUint32(offset uint32, value uint32) {
	if r.readOnly {
		panic(ErrReadOnly{Region: r.Name})
	}
	atomic.StoreUint32(r.word(offset), value)
}
