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

package capture

import (
	"encoding/binary"
	"testing"

	"jinr.ru/greenlab/adc-recorder/pkg/layers"
)

func TestDecodeWord(t *testing.T) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, 0x0002fffe)
	r := NewReader(buf, 1)
	s, ok := r.Next()
	if !ok {
		t.Fatal("no record")
	}
	if s.ChA != -2 || s.ChB != 2 || s.Raw != 0x0002fffe {
		t.Errorf("decoded %+v", s)
	}
	if _, ok := r.Next(); ok {
		t.Error("record past count")
	}
}

func TestConsumption(t *testing.T) {
	const capacity = 64
	buf := make([]byte, capacity*layers.SampleSize)
	for i := 0; i < capacity; i++ {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(i)*0x00010001)
	}
	for _, count := range []uint32{0, 1, 17, capacity} {
		r := NewReader(buf, count)
		n := 0
		for i, s := range r.All() {
			if i != n {
				t.Fatalf("index %d, want %d", i, n)
			}
			if want := layers.DecodeSample(uint32(i) * 0x00010001); s != want {
				t.Errorf("count %d record %d: %+v, want %+v", count, i, s, want)
			}
			n++
		}
		if n != int(count) || r.Consumed() != 4*int(count) || r.Remaining() != 0 {
			t.Errorf("count %d: %d records, %d bytes consumed", count, n, r.Consumed())
		}
	}
}

func TestNotRestartable(t *testing.T) {
	buf := make([]byte, 16)
	r := NewReader(buf, 4)
	for range r.All() {
		break
	}
	n := 0
	for range r.All() {
		n++
	}
	if n != 3 {
		t.Errorf("second pass produced %d records, want 3", n)
	}
	for range r.All() {
		t.Fatal("exhausted reader produced a record")
	}
}

func TestOverCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewReader accepted more samples than the buffer holds")
		}
	}()
	NewReader(make([]byte, 8), 3)
}
