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

package report

import (
	"bytes"
	"testing"

	"jinr.ru/greenlab/adc-recorder/pkg/layers"
)

func TestTextReporter(t *testing.T) {
	var out bytes.Buffer
	r := NewTextReporter(&out)
	for _, word := range []uint32{0x0002fffe, 0x80007fff} {
		if err := r.Report(layers.DecodeSample(word)); err != nil {
			t.Fatal(err)
		}
	}
	if out.Len() != 0 {
		t.Errorf("output written before Flush: %q", out.String())
	}
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "   -2     2     196606\n" +
		"32767 -32768 2147516415\n"
	if out.String() != want {
		t.Errorf("output %q, want %q", out.String(), want)
	}
}
