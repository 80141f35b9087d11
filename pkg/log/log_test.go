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

package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	defer Init(os.Stderr, "info")

	var buf bytes.Buffer
	if err := Init(&buf, "warning"); err != nil {
		t.Fatal(err)
	}
	Debug("debug %d", 1)
	Info("info %d", 2)
	Warning("warn %d", 3)
	Error("error %d", 4)

	out := buf.String()
	for _, absent := range []string{"debug 1", "info 2"} {
		if strings.Contains(out, absent) {
			t.Errorf("output %q contains %q", out, absent)
		}
	}
	for _, present := range []string{WarningPrefix + "warn 3", ErrorPrefix + "error 4"} {
		if !strings.Contains(out, present) {
			t.Errorf("output %q lacks %q", out, present)
		}
	}
	if !strings.HasPrefix(out, LogPrefix) {
		t.Errorf("output %q lacks prefix %q", out, LogPrefix)
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	tests := []struct {
		name  string
		level LogLevel
		ok    bool
	}{
		{"error", ErrorLevel, true},
		{"warn", WarningLevel, true},
		{"debug", DebugLevel, true},
		{"verbose", 0, false},
	}
	for _, test := range tests {
		err := SetLevel(test.name)
		if (err == nil) != test.ok {
			t.Errorf("SetLevel(%q) error = %v", test.name, err)
			continue
		}
		if test.ok && Level() != test.level {
			t.Errorf("SetLevel(%q): level %d, want %d", test.name, Level(), test.level)
		}
	}
}
