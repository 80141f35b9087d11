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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"jinr.ru/greenlab/adc-recorder/pkg/config"
	"jinr.ru/greenlab/adc-recorder/pkg/device"
	"jinr.ru/greenlab/adc-recorder/pkg/mem"
)

// RegHex ...
type RegHex struct {
	Name  string `yaml:"name,omitempty"`
	Addr  string `yaml:"addr"`  // hexadecimal
	Value string `yaml:"value"` // hexadecimal
}

func newRegHex(name string, offset, value uint32) RegHex {
	return RegHex{
		Name:  name,
		Addr:  fmt.Sprintf("0x%02x", offset),
		Value: fmt.Sprintf("0x%08x", value),
	}
}

// snapshot reads the named registers of r, or the one at offset when all is false.
func snapshot(r *mem.Region, all bool, offset uint32) []RegHex {
	if !all {
		name := ""
		for alias, off := range device.RegMap {
			if off == offset {
				name = alias.String()
			}
		}
		return []RegHex{newRegHex(name, offset, r.Uint32(offset))}
	}
	var regs []RegHex
	dev := device.NewDevice(r)
	for _, alias := range device.RegAliases() {
		regs = append(regs, newRegHex(alias.String(), device.RegMap[alias], dev.RegRead(alias)))
	}
	return regs
}

func NewReadCommand(cfg *config.Config) *cobra.Command {
	var addr, name string
	var asYaml bool
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read value from register",
		Long:  "Read value from register. Without --addr or --name all named registers are read.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegisters(cfg, false, func(r *mem.Region) error {
				all := addr == "" && name == ""
				var offset uint32
				if !all {
					var err error
					if offset, err = resolveOffset(addr, name, r.Size()); err != nil {
						return err
					}
				}
				regs := snapshot(r, all, offset)
				out := cmd.OutOrStdout()
				if asYaml {
					data, err := yaml.Marshal(regs)
					if err != nil {
						return err
					}
					_, err = out.Write(data)
					return err
				}
				for _, reg := range regs {
					fmt.Fprintf(out, "Register state: %s %s = %s\n", reg.Addr, reg.Name, reg.Value)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, AddrOptionName, "", "Register offset (hexadecimal)")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register name, e.g. reset_ctrl")
	cmd.Flags().BoolVar(&asYaml, YamlOptionName, false, "Print registers as YAML")

	return cmd
}
