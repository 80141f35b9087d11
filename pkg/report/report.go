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
	"bufio"
	"fmt"
	"io"

	"jinr.ru/greenlab/adc-recorder/pkg/layers"
)

// Reporter receives decoded samples.
type Reporter interface {
	Report(s layers.Sample) error
	Flush() error
}

// TextReporter prints one "%5d %5d %10d" line per sample.
type TextReporter struct {
	w *bufio.Writer
}

var _ Reporter = &TextReporter{}

func NewTextReporter(out io.Writer) *TextReporter {
	return &TextReporter{
		w: bufio.NewWriter(out),
	}
}

func (r *TextReporter) Report(s layers.Sample) error {
	_, err := fmt.Fprintf(r.w, "%5d %5d %10d\n", s.ChA, s.ChB, s.Raw)
	return err
}

func (r *TextReporter) Flush() error {
	return r.w.Flush()
}
