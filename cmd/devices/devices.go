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

package devices

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/adc-recorder/pkg/mem"
)

const (
	SysfsOptionName = "sysfs"
)

// NewCommand lists the UIO devices the recorder regions can be mapped from.
func NewCommand() *cobra.Command {
	var sysfs string
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List UIO devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mapper := mem.NewUIOMapper()
			mapper.SysfsRoot = sysfs
			devices, err := mapper.List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NODE\tNAME\tADDR\tSIZE")
			for _, d := range devices {
				fmt.Fprintf(w, "%s\t%s\t0x%08x\t0x%x\n", d.Node, d.Name, d.Addr, d.Size)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&sysfs, SysfsOptionName, mem.DefaultSysfsRoot, "UIO class directory")

	return cmd
}
