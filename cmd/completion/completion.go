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

package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const (
	completionExample = `
Load bash completion into the current shell
# source <(adc-recorder completion bash)

Install zsh completion
# adc-recorder completion zsh > "${fpath[1]}/_adc-recorder"

Install fish completion
# adc-recorder completion fish > ~/.config/fish/completions/adc-recorder.fish
`
)

type generator func(root *cobra.Command, out io.Writer) error

var generators = map[string]generator{
	"bash": func(root *cobra.Command, out io.Writer) error {
		return root.GenBashCompletion(out)
	},
	"zsh": func(root *cobra.Command, out io.Writer) error {
		return root.GenZshCompletion(out)
	},
	"fish": func(root *cobra.Command, out io.Writer) error {
		return root.GenFishCompletion(out, true)
	},
	"powershell": func(root *cobra.Command, out io.Writer) error {
		return root.GenPowerShellCompletion(out)
	},
}

// Shells lists the shells a completion script can be generated for.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// NewCommand creates a cobra command object for generating shell completion scripts
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completion bash|zsh|fish|powershell",
		Short:     "Generate shell completion script",
		Example:   completionExample,
		ValidArgs: Shells,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, ok := generators[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell %q, must be one of %v", args[0], Shells)
			}
			return gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
	return cmd
}
