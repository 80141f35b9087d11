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

// Package session runs one capture from mapping the device to reporting
// the last sample.
package session

import (
	"errors"
	"fmt"
	"math"
	"time"

	"jinr.ru/greenlab/adc-recorder/pkg/capture"
	"jinr.ru/greenlab/adc-recorder/pkg/config"
	"jinr.ru/greenlab/adc-recorder/pkg/device"
	"jinr.ru/greenlab/adc-recorder/pkg/device/ifc"
	"jinr.ru/greenlab/adc-recorder/pkg/log"
	"jinr.ru/greenlab/adc-recorder/pkg/mem"
	"jinr.ru/greenlab/adc-recorder/pkg/report"
)

type Session struct {
	*config.Config
	mapper   mem.Mapper
	reporter report.Reporter
	// Sleep is used for the fixed settle delays; nil means time.Sleep.
	Sleep func(time.Duration)
}

func NewSession(cfg *config.Config, mapper mem.Mapper, reporter report.Reporter) *Session {
	return &Session{
		Config:   cfg,
		mapper:   mapper,
		reporter: reporter,
	}
}

// Run maps the regions, arms the recorder and reports every captured
// sample. Regions mapped by Run are unmapped before it returns.
func (s *Session) Run() (err error) {
	if err := s.Validate(); err != nil {
		return err
	}

	var mapped []*mem.Region
	defer func() {
		for i := len(mapped) - 1; i >= 0; i-- {
			if uerr := s.mapper.Unmap(mapped[i]); uerr != nil {
				log.Error("Unmapping %s: %s", mapped[i].Name, uerr)
				err = errors.Join(err, uerr)
			}
		}
	}()
	mapRegion := func(name string, size int, writable bool) (*mem.Region, error) {
		mapFn := s.mapper.MapReadOnly
		if writable {
			mapFn = s.mapper.Map
		}
		r, err := mapFn(name, size)
		if err != nil {
			return nil, err
		}
		mapped = append(mapped, r)
		return r, nil
	}

	regs, err := mapRegion(s.Registers.Name, s.Registers.Size, true)
	if err != nil {
		return err
	}
	buf, err := mapRegion(s.Buffer.Name, s.BufferSize(), false)
	if err != nil {
		return err
	}
	dev := device.NewDevice(regs)
	if s.Status != nil {
		sts, err := mapRegion(s.Status.Name, s.Status.Size, false)
		if err != nil {
			return err
		}
		dev.AttachStatus(sts)
	}

	dest, err := s.destination(buf)
	if err != nil {
		return err
	}

	seq := device.NewSequencer(dev, s.settleWaiter(), s.armWaiter(dev))
	if err := seq.Arm(device.CaptureConfig{DestinationAddress: dest, SampleCount: s.SampleCount}); err != nil {
		return fmt.Errorf("arming recorder: %w", err)
	}

	reader := capture.NewReader(buf.Bytes(), s.SampleCount)
	for _, sample := range reader.All() {
		if err := s.reporter.Report(sample); err != nil {
			return err
		}
	}
	log.Debug("Decoded %d bytes of %s", reader.Consumed(), buf.Name)
	return s.reporter.Flush()
}

func (s *Session) destination(buf *mem.Region) (uint32, error) {
	if s.DestinationAddress != nil {
		return *s.DestinationAddress, nil
	}
	if buf.Phys == 0 {
		return 0, config.ErrInvalidConfig{What: fmt.Sprintf("bus address of %s is unknown, set destinationAddress", buf.Name)}
	}
	if buf.Phys > math.MaxUint32 {
		return 0, config.ErrInvalidConfig{What: fmt.Sprintf("bus address 0x%x of %s does not fit the writer", buf.Phys, buf.Name)}
	}
	return uint32(buf.Phys), nil
}

func (s *Session) settleWaiter() ifc.Waiter {
	return device.Delay{Interval: s.SettleInterval.Duration, Sleep: s.Sleep}
}

func (s *Session) armWaiter(dev *device.Device) ifc.Waiter {
	if !dev.HasStatus() {
		return device.Delay{Interval: s.ArmSettleInterval.Duration, Sleep: s.Sleep}
	}
	return device.StatusPoll{
		What:    "writer to run",
		Ready:   dev.IsRunning,
		Timeout: s.Status.PollTimeout.Duration,
	}
}
