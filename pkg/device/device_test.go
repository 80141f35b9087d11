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
	"errors"
	"fmt"
	"testing"
	"time"

	"jinr.ru/greenlab/adc-recorder/pkg/mem"
)

// recorder logs every register write and every settle wait in order.
type recorder struct {
	*mem.Region
	events []string
}

func newRecorder() *recorder {
	return &recorder{Region: mem.NewRegion("cfg", 0, make([]byte, 0x1000))}
}

func (r *recorder) PutUint32(offset, value uint32) {
	r.events = append(r.events, fmt.Sprintf("w %02x %08x", offset, value))
	r.Region.PutUint32(offset, value)
}

func (r *recorder) sleep(d time.Duration) {
	r.events = append(r.events, fmt.Sprintf("sleep %s", d))
}

var testValues = []uint32{0, 0xffffffff, 0x7, 0x5, 0xa5a5a5a5, 0x80000000, 0xfffffff8}

func TestBitAlgebra(t *testing.T) {
	masks := []uint32{ResetFifoFilter, ResetPacketizer, ResetWriter, 0x80000000, 0x0f0f0000}
	dev := NewDevice(mem.NewRegion("cfg", 0, make([]byte, 16)))
	for _, v := range testValues {
		for _, m := range masks {
			dev.RegWrite(RegResetCtrl, v)
			if got := dev.RegUpdate(RegResetCtrl, m, false); got != v&^m || dev.RegRead(RegResetCtrl) != v&^m {
				t.Errorf("clear(0x%08x, 0x%08x) = 0x%08x, want 0x%08x", v, m, got, v&^m)
			}
			dev.RegWrite(RegResetCtrl, v)
			if got := dev.RegUpdate(RegResetCtrl, m, true); got != v|m || dev.RegRead(RegResetCtrl) != v|m {
				t.Errorf("set(0x%08x, 0x%08x) = 0x%08x, want 0x%08x", v, m, got, v|m)
			}
		}
	}
}

func TestConfigureRoundTrip(t *testing.T) {
	dev := NewDevice(mem.NewRegion("cfg", 0, make([]byte, 16)))
	configs := []CaptureConfig{
		{0, 0},
		{0x10000000, 1024},
		{0x1e000000, 1024*1024 - 1},
		{0xffffffff, 0xffffffff},
	}
	for _, c := range configs {
		dev.Configure(c)
		if got := dev.Configuration(); got != c {
			t.Errorf("Configuration() = %+v, want %+v", got, c)
		}
	}
}

func TestArmSequence(t *testing.T) {
	rec := newRecorder()
	rec.Region.PutUint32(RegMap[RegResetCtrl], 0xf0)
	dev := NewDevice(rec)
	seq := NewSequencer(dev,
		Delay{Interval: time.Second, Sleep: rec.sleep},
		Delay{Interval: 2 * time.Second, Sleep: rec.sleep})
	if err := seq.Arm(CaptureConfig{DestinationAddress: 0x10000000, SampleCount: 1024}); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"w 04 10000000",
		"w 08 00000400",
		"w 00 000000f0", // writer reset asserted
		"w 00 000000f4", // writer reset released
		"w 00 000000f4", // fifo/filter reset asserted
		"w 00 000000f5", // fifo/filter reset released
		"sleep 1s",
		"w 00 000000f5", // packetizer enters reset
		"w 00 000000f7", // packetizer in normal mode
		"sleep 2s",
	}
	if len(rec.events) != len(want) {
		t.Fatalf("events %q, want %q", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d: %q, want %q", i, rec.events[i], want[i])
		}
	}
	if seq.State() != StateArmed {
		t.Errorf("state %s, want %s", seq.State(), StateArmed)
	}
}

func TestArmIdempotent(t *testing.T) {
	noSleep := Delay{Sleep: func(time.Duration) {}}
	for _, start := range testValues {
		region := mem.NewRegion("cfg", 0, make([]byte, 16))
		region.PutUint32(RegMap[RegResetCtrl], start)
		dev := NewDevice(region)
		seq := NewSequencer(dev, noSleep, noSleep)
		c := CaptureConfig{DestinationAddress: 0x1e000000, SampleCount: 16}

		if err := seq.Arm(c); err != nil {
			t.Fatal(err)
		}
		first := dev.RegRead(RegResetCtrl)
		if err := seq.Arm(c); err != nil {
			t.Fatal(err)
		}
		second := dev.RegRead(RegResetCtrl)

		want := start | ResetWriter | ResetFifoFilter | ResetPacketizer
		if first != want || second != want {
			t.Errorf("start 0x%08x: terminal 0x%08x then 0x%08x, want 0x%08x", start, first, second, want)
		}
	}
}

type failWaiter struct{ err error }

func (w failWaiter) Wait() error { return w.err }

func TestArmSettleFailure(t *testing.T) {
	dev := NewDevice(mem.NewRegion("cfg", 0, make([]byte, 16)))
	boom := errors.New("boom")
	seq := NewSequencer(dev, Delay{Sleep: func(time.Duration) {}}, failWaiter{boom})
	if err := seq.Arm(CaptureConfig{SampleCount: 1}); err != boom {
		t.Fatalf("Arm: %v, want %v", err, boom)
	}
	if seq.State() != StatePacketizerResetEnter {
		t.Errorf("state %s, want %s", seq.State(), StatePacketizerResetEnter)
	}
}

func TestWaitUntil(t *testing.T) {
	calls := 0
	ready := func() (bool, error) {
		calls++
		return calls >= 3, nil
	}
	if err := WaitUntil("ready", ready, time.Second); err != nil {
		t.Fatalf("WaitUntil: %v", err)
	}
	if calls != 3 {
		t.Errorf("%d polls, want 3", calls)
	}

	never := func() (bool, error) { return false, nil }
	var timeout ErrTimeout
	if err := WaitUntil("never", never, 20*time.Millisecond); !errors.As(err, &timeout) {
		t.Fatalf("WaitUntil: %v, want ErrTimeout", err)
	}

	boom := errors.New("boom")
	broken := func() (bool, error) { return false, boom }
	if err := WaitUntil("broken", broken, time.Second); err != boom {
		t.Fatalf("WaitUntil: %v, want %v", err, boom)
	}

	for _, zero := range []time.Duration{0, -time.Second} {
		calls = 0
		start := time.Now()
		if err := WaitUntil("never", func() (bool, error) { calls++; return false, nil }, zero); !errors.As(err, &timeout) {
			t.Fatalf("WaitUntil(%s): %v, want ErrTimeout", zero, err)
		}
		if calls != 1 || time.Since(start) > time.Second {
			t.Errorf("WaitUntil(%s): %d polls in %s", zero, calls, time.Since(start))
		}
		if err := WaitUntil("now", func() (bool, error) { return true, nil }, zero); err != nil {
			t.Errorf("WaitUntil(%s) when ready: %v", zero, err)
		}
		if err := WaitUntil("broken", broken, zero); err != boom {
			t.Errorf("WaitUntil(%s): %v, want %v", zero, err, boom)
		}
	}
}

func TestStatus(t *testing.T) {
	dev := NewDevice(mem.NewRegion("cfg", 0, make([]byte, 16)))
	if _, err := dev.IsRunning(); !errors.As(err, new(ErrNoStatus)) {
		t.Fatalf("IsRunning without status: %v", err)
	}
	sts := mem.NewRegion("sts", 0, make([]byte, 16))
	dev.AttachStatus(sts)
	if running, err := dev.IsRunning(); err != nil || running {
		t.Fatalf("IsRunning = %v, %v", running, err)
	}
	sts.PutUint32(StsMap[StsStatus], StsStatusBitRunning)
	poll := StatusPoll{What: "writer", Ready: dev.IsRunning, Timeout: time.Second}
	if err := poll.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestParseRegAlias(t *testing.T) {
	for _, alias := range RegAliases() {
		got, err := ParseRegAlias(alias.String())
		if err != nil || got != alias {
			t.Errorf("ParseRegAlias(%q) = %v, %v", alias.String(), got, err)
		}
	}
	if _, err := ParseRegAlias("bogus"); err == nil {
		t.Error("ParseRegAlias(bogus) succeeded")
	}
}
