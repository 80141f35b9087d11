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

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"sigs.k8s.io/yaml"
)

// Duration is a time.Duration written as a string such as "1s" or "250ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	value, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = value
	return nil
}

type RegionConfig struct {
	// Name is the UIO device name given in the device tree
	Name string `json:"name"`
	// Size in bytes to map; 0 means derive it
	Size int `json:"size,omitempty"`
}

type StatusConfig struct {
	RegionConfig `json:",inline"`
	PollTimeout  Duration `json:"pollTimeout"`
}

type Config struct {
	LogLevel  string        `json:"logLevel,omitempty"`
	Registers *RegionConfig `json:"registers"`
	Buffer    *RegionConfig `json:"buffer"`
	// Status is optional; without it the sequencer only uses fixed delays
	Status *StatusConfig `json:"status,omitempty"`
	// DestinationAddress unset means the bus address of the buffer region
	DestinationAddress *uint32  `json:"destinationAddress,omitempty"`
	SampleCount        uint32   `json:"sampleCount"`
	SettleInterval     Duration `json:"settleInterval"`
	ArmSettleInterval  Duration `json:"armSettleInterval"`
	filepath           string
}

func (c *Config) Path() string {
	return c.filepath
}

func (c *Config) SetPath(path string) {
	c.filepath = path
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// LoadConfig reads the config file; a missing file is an error.
func (c *Config) LoadConfig() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", c.filepath, err)
	}
	return nil
}

// Load reads the config file if there is one and keeps the defaults otherwise.
func (c *Config) Load() error {
	err := c.LoadConfig()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Validate checks what can be checked without touching the hardware.
func (c *Config) Validate() error {
	if c.Registers == nil || c.Registers.Name == "" {
		return ErrInvalidConfig{What: "registers region name is empty"}
	}
	if c.Buffer == nil || c.Buffer.Name == "" {
		return ErrInvalidConfig{What: "buffer region name is empty"}
	}
	if c.Registers.Size != 0 && c.Registers.Size < 0xc {
		return ErrInvalidConfig{What: fmt.Sprintf("registers region of %d bytes is too small", c.Registers.Size)}
	}
	if c.SampleCount == 0 {
		return ErrInvalidConfig{What: "sample count is 0"}
	}
	if c.bufferBytes() > math.MaxInt {
		return ErrInvalidConfig{What: fmt.Sprintf("%d samples do not fit the address space", c.SampleCount)}
	}
	if c.Buffer.Size != 0 && uint64(c.Buffer.Size) < c.bufferBytes() {
		return ErrInvalidConfig{What: fmt.Sprintf("buffer of %d bytes can not hold %d samples", c.Buffer.Size, c.SampleCount)}
	}
	if c.SettleInterval.Duration < 0 || c.ArmSettleInterval.Duration < 0 {
		return ErrInvalidConfig{What: "negative settle interval"}
	}
	if c.Status != nil {
		if c.Status.Name == "" {
			return ErrInvalidConfig{What: "status region name is empty"}
		}
		if c.Status.PollTimeout.Duration <= 0 {
			return ErrInvalidConfig{What: "status poll timeout must be positive"}
		}
	}
	return nil
}

func (c *Config) bufferBytes() uint64 {
	return 4 * uint64(c.SampleCount)
}

// BufferSize is the number of bytes of the buffer region to map. It is
// only meaningful for a config that passed Validate.
func (c *Config) BufferSize() int {
	if c.Buffer.Size != 0 {
		return c.Buffer.Size
	}
	return int(c.bufferBytes())
}

// SetDestinationAddress pins the writer address, 0 included.
func (c *Config) SetDestinationAddress(addr uint32) {
	c.DestinationAddress = &addr
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Registers: &RegionConfig{
			Name: DefaultRegistersName,
			Size: DefaultRegistersSize,
		},
		Buffer: &RegionConfig{
			Name: DefaultBufferName,
		},
		SampleCount:       DefaultSampleCount,
		SettleInterval:    Duration{DefaultSettleInterval},
		ArmSettleInterval: Duration{DefaultArmSettleInterval},
		filepath:          DefaultConfigPath(),
	}
}

// NewDefaultStatusConfig returns the status region settings used when
// status polling is switched on without further details.
func NewDefaultStatusConfig() *StatusConfig {
	return &StatusConfig{
		RegionConfig: RegionConfig{
			Name: DefaultStatusName,
			Size: DefaultStatusSize,
		},
		PollTimeout: Duration{DefaultStatusPollTimeout},
	}
}
