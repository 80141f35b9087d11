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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jinr.ru/greenlab/adc-recorder/cmd/completion"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if _, err := run(t, "--config", path, "config", "init"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--config", path, "config", "init"); err == nil {
		t.Error("second init overwrote the config file")
	}

	out, err := run(t, "--config", path, "--log-level", "error", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"sampleCount: 1048576", "name: cfg", "name: cma", "logLevel: error"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output lacks %q:\n%s", want, out)
		}
	}
}

func TestBadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if _, err := run(t, "--config", path, "--log-level", "loud", "config", "show"); err == nil {
		t.Error("unknown log level accepted")
	}
}

func TestDevices(t *testing.T) {
	sysfs := t.TempDir()
	dir := filepath.Join(sysfs, "uio3")
	if err := os.MkdirAll(filepath.Join(dir, "maps", "map0"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"name":           "cfg\n",
		"maps/map0/addr": "0x40000000\n",
		"maps/map0/size": "0x1000\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	out, err := run(t, "--config", filepath.Join(sysfs, "config"), "devices", "--sysfs", sysfs)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "uio3") || !strings.Contains(out, "0x40000000") {
		t.Errorf("devices output:\n%s", out)
	}
}

func TestCompletion(t *testing.T) {
	config := filepath.Join(t.TempDir(), "config")
	for _, shell := range completion.Shells {
		out, err := run(t, "--config", config, "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
			continue
		}
		if !strings.Contains(out, "adc-recorder") {
			t.Errorf("completion %s output does not mention the command:\n%.200s", shell, out)
		}
	}
	if _, err := run(t, "--config", config, "completion", "tcsh"); err == nil {
		t.Error("completion for an unknown shell succeeded")
	}
	if _, err := run(t, "--config", config, "completion"); err == nil {
		t.Error("completion without a shell succeeded")
	}
}
