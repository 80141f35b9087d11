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

// Package capture decodes the DMA capture buffer into sample records.
package capture

import (
	"fmt"
	"iter"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/adc-recorder/pkg/layers"
)

// Reader walks count records from the start of a capture buffer. It is
// a one-shot cursor: records already returned are not produced again.
type Reader struct {
	buf   []byte
	count int
	next  int
	layer layers.SampleLayer
}

// NewReader panics if buf can not hold count records; the buffer size
// is fixed by the hardware so this is a setup bug, not a runtime error.
func NewReader(buf []byte, count uint32) *Reader {
	if uint64(count)*layers.SampleSize > uint64(len(buf)) {
		panic(fmt.Sprintf("capture buffer of %d bytes can not hold %d samples", len(buf), count))
	}
	return &Reader{
		buf:   buf,
		count: int(count),
	}
}

// Next decodes the following record. ok is false once count records
// have been returned.
func (r *Reader) Next() (s layers.Sample, ok bool) {
	if r.next >= r.count {
		return s, false
	}
	offset := r.next * layers.SampleSize
	// The length was checked in NewReader, decoding can not fail.
	_ = r.layer.DecodeFromBytes(r.buf[offset:offset+layers.SampleSize], gopacket.NilDecodeFeedback)
	r.next++
	return r.layer.Sample, true
}

// All yields the remaining records with their index.
func (r *Reader) All() iter.Seq2[int, layers.Sample] {
	return func(yield func(int, layers.Sample) bool) {
		for {
			i := r.next
			s, ok := r.Next()
			if !ok || !yield(i, s) {
				return
			}
		}
	}
}

// Consumed returns the number of buffer bytes decoded so far.
func (r *Reader) Consumed() int {
	return r.next * layers.SampleSize
}

// Remaining returns the number of records not yet decoded.
func (r *Reader) Remaining() int {
	return r.count - r.next
}
