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

package reg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/adc-recorder/pkg/config"
	"jinr.ru/greenlab/adc-recorder/pkg/device"
	"jinr.ru/greenlab/adc-recorder/pkg/mem"
)

const (
	AddrOptionName  = "addr"
	NameOptionName  = "name"
	ValueOptionName = "value"
	YamlOptionName  = "yaml"
)

// NewCommand returns the command group to peek and poke the
// configuration registers directly.
func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reg",
		Short: "Read and write recorder configuration registers",
	}
	cmd.AddCommand(NewReadCommand(cfg))
	cmd.AddCommand(NewWriteCommand(cfg))
	return cmd
}

func parseHex(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad hexadecimal value %q: %w", s, err)
	}
	return uint32(value), nil
}

// resolveOffset turns either --addr or --name into a byte offset that
// is valid inside the region.
func resolveOffset(addr, name string, size int) (uint32, error) {
	var offset uint32
	switch {
	case addr != "" && name != "":
		return 0, fmt.Errorf("--%s and --%s are mutually exclusive", AddrOptionName, NameOptionName)
	case name != "":
		alias, err := device.ParseRegAlias(name)
		if err != nil {
			return 0, err
		}
		offset = device.RegMap[alias]
	case addr != "":
		var err error
		if offset, err = parseHex(addr); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("one of --%s or --%s is required", AddrOptionName, NameOptionName)
	}
	if offset%4 != 0 || uint64(offset)+4 > uint64(size) {
		return 0, fmt.Errorf("offset 0x%x is not an aligned register inside 0x%x bytes", offset, size)
	}
	return offset, nil
}

// withRegisters maps the configuration region for the duration of f.
func withRegisters(cfg *config.Config, writable bool, f func(r *mem.Region) error) (err error) {
	mapper := mem.NewUIOMapper()
	mapFn := mapper.MapReadOnly
	if writable {
		mapFn = mapper.Map
	}
	r, err := mapFn(cfg.Registers.Name, cfg.Registers.Size)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := mapper.Unmap(r); err == nil {
			err = uerr
		}
	}()
	return f(r)
}
