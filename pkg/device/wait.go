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
	"time"

	"github.com/cenkalti/backoff"

	"jinr.ru/greenlab/adc-recorder/pkg/device/ifc"
)

const (
	DefaultSettleInterval = 1 * time.Second
	DefaultPollTimeout    = 2 * time.Second
)

// Delay waits a fixed interval. It is the only option when the
// hardware gives no completion signal.
type Delay struct {
	Interval time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

var _ ifc.Waiter = Delay{}

func (d Delay) Wait() error {
	sleep := d.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d.Interval)
	return nil
}

// StatusPoll waits until Ready reports true, giving up after Timeout.
type StatusPoll struct {
	What    string
	Ready   func() (bool, error)
	Timeout time.Duration
}

var _ ifc.Waiter = StatusPoll{}

func (p StatusPoll) Wait() error {
	return WaitUntil(p.What, p.Ready, p.Timeout)
}

var errNotReady = errors.New("not ready")

// WaitUntil polls ready with exponential backoff until it returns true,
// returns an error, or timeout elapses. A timeout <= 0 checks ready once.
func WaitUntil(what string, ready func() (bool, error), timeout time.Duration) error {
	// backoff treats a MaxElapsedTime of 0 as no limit at all.
	if timeout <= 0 {
		ok, err := ready()
		if err != nil {
			return err
		}
		if !ok {
			return ErrTimeout{What: what, After: timeout}
		}
		return nil
	}
	op := func() error {
		ok, err := ready()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return errNotReady
		}
		return nil
	}
	err := backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     time.Millisecond,
		RandomizationFactor: 0.,
		Multiplier:          2.,
		MaxInterval:         100 * time.Millisecond,
		MaxElapsedTime:      timeout,
		Clock:               backoff.SystemClock})
	if err == errNotReady {
		return ErrTimeout{What: what, After: timeout}
	}
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}
