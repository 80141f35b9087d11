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

package capture

import (
	"time"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/adc-recorder/pkg/config"
	"jinr.ru/greenlab/adc-recorder/pkg/mem"
	"jinr.ru/greenlab/adc-recorder/pkg/report"
	"jinr.ru/greenlab/adc-recorder/pkg/session"
)

const (
	SamplesOptionName     = "samples"
	DestOptionName        = "dest"
	SettleOptionName      = "settle"
	ArmSettleOptionName   = "arm-settle"
	StatusOptionName      = "status"
	PollTimeoutOptionName = "poll-timeout"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var samples, dest uint32
	var settle, armSettle, pollTimeout time.Duration
	var status bool
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Arm the recorder and print captured samples",
		Long: `Arm the recorder and print captured samples.

Every sample is printed on its own line as channel A, channel B and the
raw 32-bit word: "%5d %5d %10d".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed(SamplesOptionName) {
				cfg.SampleCount = samples
			}
			if flags.Changed(DestOptionName) {
				cfg.SetDestinationAddress(dest)
			}
			if flags.Changed(SettleOptionName) {
				cfg.SettleInterval.Duration = settle
			}
			if flags.Changed(ArmSettleOptionName) {
				cfg.ArmSettleInterval.Duration = armSettle
			}
			if status && cfg.Status == nil {
				cfg.Status = config.NewDefaultStatusConfig()
			}
			if cfg.Status != nil && flags.Changed(PollTimeoutOptionName) {
				cfg.Status.PollTimeout.Duration = pollTimeout
			}
			s := session.NewSession(cfg, mem.NewUIOMapper(), report.NewTextReporter(cmd.OutOrStdout()))
			return s.Run()
		},
	}
	cmd.Flags().Uint32Var(&samples, SamplesOptionName, config.DefaultSampleCount, "Number of samples to capture")
	cmd.Flags().Uint32Var(&dest, DestOptionName, 0, "Writer destination address. Default: bus address of the buffer region")
	cmd.Flags().DurationVar(&settle, SettleOptionName, config.DefaultSettleInterval, "Delay after the fifo/filter reset")
	cmd.Flags().DurationVar(&armSettle, ArmSettleOptionName, config.DefaultArmSettleInterval, "Delay after the packetizer reset")
	cmd.Flags().BoolVar(&status, StatusOptionName, false, "Poll the status region instead of waiting after the packetizer reset")
	cmd.Flags().DurationVar(&pollTimeout, PollTimeoutOptionName, config.DefaultStatusPollTimeout, "Status poll timeout")

	return cmd
}
