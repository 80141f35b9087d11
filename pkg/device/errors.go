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
	"time"
)

// ErrTimeout returned when the hardware did not reach the expected state in time
type ErrTimeout struct {
	What  string
	After time.Duration
}

func (e ErrTimeout) Error() string {
	return fmt.Sprintf("Timeout after %s while waiting for %s", e.After, e.What)
}

// ErrNoStatus returned when a status register is read without a status region
type ErrNoStatus struct{}

func (e ErrNoStatus) Error() string {
	return "Status region is not attached"
}
