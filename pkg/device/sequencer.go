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

package device

import (
	"jinr.ru/greenlab/adc-recorder/pkg/device/ifc"
	"jinr.ru/greenlab/adc-recorder/pkg/log"
)

// State of the reset/arm sequence.
type State int

const (
	StateUnknown State = iota
	StateWriterResetAsserted
	StateWriterResetCleared
	StateFifoFilterResetAsserted
	StateFifoFilterResetCleared
	StateSettling
	StatePacketizerResetEnter
	StateArmed
)

var stateNames = [...]string{
	StateUnknown:                 "unknown",
	StateWriterResetAsserted:     "writer-reset-asserted",
	StateWriterResetCleared:      "writer-reset-cleared",
	StateFifoFilterResetAsserted: "fifo-filter-reset-asserted",
	StateFifoFilterResetCleared:  "fifo-filter-reset-cleared",
	StateSettling:                "settling",
	StatePacketizerResetEnter:    "packetizer-reset-enter",
	StateArmed:                   "armed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "invalid"
	}
	return stateNames[s]
}

// Sequencer brings the recorder from any state to capturing.
//
// The reset lines react to transitions, so every subsystem is pulsed
// (cleared, then set) regardless of the bit's previous value. Settle
// waits after the fifo/filter reset and after the packetizer leaves
// reset; captured data is not valid before the second one ends.
type Sequencer struct {
	dev       *Device
	settle    ifc.Waiter
	armSettle ifc.Waiter
	state     State
}

// NewSequencer returns a sequencer that waits with settle after the
// fifo/filter reset and with armSettle after the packetizer reset.
func NewSequencer(dev *Device, settle, armSettle ifc.Waiter) *Sequencer {
	if settle == nil {
		settle = Delay{Interval: DefaultSettleInterval}
	}
	if armSettle == nil {
		armSettle = Delay{Interval: DefaultSettleInterval}
	}
	return &Sequencer{
		dev:       dev,
		settle:    settle,
		armSettle: armSettle,
	}
}

func (s *Sequencer) State() State {
	return s.state
}

func (s *Sequencer) enter(state State, value uint32) {
	log.Debug("Sequencer %s -> %s (reset_ctrl 0x%08x)", s.state, state, value)
	s.state = state
}

func (s *Sequencer) pulse(mask uint32, asserted, cleared State) {
	s.enter(asserted, s.dev.RegUpdate(RegResetCtrl, mask, false))
	s.enter(cleared, s.dev.RegUpdate(RegResetCtrl, mask, true))
}

// Arm programs c and runs the reset sequence. It returns only errors of
// the settle waiters; the state is left where the failure happened.
func (s *Sequencer) Arm(c CaptureConfig) error {
	s.state = StateUnknown
	s.dev.Configure(c)

	log.Info("Resetting writer")
	s.pulse(ResetWriter, StateWriterResetAsserted, StateWriterResetCleared)
	log.Info("Resetting fifo and filters")
	s.pulse(ResetFifoFilter, StateFifoFilterResetAsserted, StateFifoFilterResetCleared)

	s.enter(StateSettling, s.dev.RegRead(RegResetCtrl))
	if err := s.settle.Wait(); err != nil {
		return err
	}

	log.Info("Resetting packetizer")
	s.enter(StatePacketizerResetEnter, s.dev.RegUpdate(RegResetCtrl, ResetPacketizer, false))
	value := s.dev.RegUpdate(RegResetCtrl, ResetPacketizer, true)
	if err := s.armSettle.Wait(); err != nil {
		return err
	}
	s.enter(StateArmed, value)
	log.Info("Recorder armed")
	return nil
}
