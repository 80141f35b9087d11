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
	"fmt"

	"jinr.ru/greenlab/adc-recorder/pkg/device/ifc"
	"jinr.ru/greenlab/adc-recorder/pkg/log"
)

// CaptureConfig is latched by the hardware while the writer is reset.
type CaptureConfig struct {
	DestinationAddress uint32
	SampleCount        uint32
}

// Device gives access to the recorder's configuration registers and,
// when the bitstream exports one, to its status registers.
type Device struct {
	cfg ifc.Registers
	sts ifc.Registers
}

func NewDevice(cfg ifc.Registers) *Device {
	return &Device{
		cfg: cfg,
	}
}

// AttachStatus enables the status registers.
func (d *Device) AttachStatus(sts ifc.Registers) {
	d.sts = sts
}

func (d *Device) HasStatus() bool {
	return d.sts != nil
}

func regOffset(alias RegAlias) uint32 {
	offset, ok := RegMap[alias]
	if !ok {
		panic(fmt.Sprintf("no offset for register %s", alias))
	}
	return offset
}

// RegRead ...
func (d *Device) RegRead(alias RegAlias) uint32 {
	return d.cfg.Uint32(regOffset(alias))
}

// RegWrite ...
func (d *Device) RegWrite(alias RegAlias, value uint32) {
	log.Debug("Writing register %s: 0x%08x", alias, value)
	d.cfg.PutUint32(regOffset(alias), value)
}

// RegUpdate sets or clears the bits of mask in a register, keeping the
// other bits, and returns the value written.
func (d *Device) RegUpdate(alias RegAlias, mask uint32, set bool) uint32 {
	value := ApplyBit(d.RegRead(alias), mask, set)
	d.RegWrite(alias, value)
	return value
}

// RegReadAll returns the value of every configuration register.
func (d *Device) RegReadAll() map[RegAlias]uint32 {
	regs := make(map[RegAlias]uint32, len(RegMap))
	for alias := range RegMap {
		regs[alias] = d.RegRead(alias)
	}
	return regs
}

// Configure programs the capture destination and sample count.
func (d *Device) Configure(c CaptureConfig) {
	log.Info("Writer address 0x%08x, %d samples", c.DestinationAddress, c.SampleCount)
	d.RegWrite(RegWriterAddr, c.DestinationAddress)
	d.RegWrite(RegSampleCount, c.SampleCount)
}

// Configuration reads the capture configuration back from the device.
func (d *Device) Configuration() CaptureConfig {
	return CaptureConfig{
		DestinationAddress: d.RegRead(RegWriterAddr),
		SampleCount:        d.RegRead(RegSampleCount),
	}
}

// StsRead reads a status register.
func (d *Device) StsRead(alias StsAlias) (uint32, error) {
	if d.sts == nil {
		return 0, ErrNoStatus{}
	}
	offset, ok := StsMap[alias]
	if !ok {
		panic(fmt.Sprintf("no offset for status register %d", alias))
	}
	return d.sts.Uint32(offset), nil
}

// IsRunning checks if StsStatusBitRunning bit is set
func (d *Device) IsRunning() (bool, error) {
	status, err := d.StsRead(StsStatus)
	if err != nil {
		return false, err
	}
	return status&StsStatusBitRunning != 0, nil
}
