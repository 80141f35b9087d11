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
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/adc-recorder/pkg/config"
	"jinr.ru/greenlab/adc-recorder/pkg/log"
	"jinr.ru/greenlab/adc-recorder/pkg/mem"
)

func NewWriteCommand(cfg *config.Config) *cobra.Command {
	var addr, name, value string
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write value to register",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseHex(value)
			if err != nil {
				return err
			}
			return withRegisters(cfg, true, func(r *mem.Region) error {
				offset, err := resolveOffset(addr, name, r.Size())
				if err != nil {
					return err
				}
				log.Info("Writing 0x%08x to 0x%02x", v, offset)
				r.PutUint32(offset, v)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, AddrOptionName, "", "Register offset (hexadecimal)")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register name, e.g. reset_ctrl")
	cmd.Flags().StringVar(&value, ValueOptionName, "", "Register value (hexadecimal)")
	cmd.MarkFlagRequired(ValueOptionName)

	return cmd
}
