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

package mem

import (
	"fmt"
)

// ErrMapping returned when a region can not be opened or mapped
type ErrMapping struct {
	Name string
	Err  error
}

func (e ErrMapping) Error() string {
	return fmt.Sprintf("Error while mapping region %s: %v", e.Name, e.Err)
}

func (e ErrMapping) Unwrap() error {
	return e.Err
}

// ErrNoDevice returned when no UIO device carries the requested name
type ErrNoDevice struct {
	Name string
}

func (e ErrNoDevice) Error() string {
	return fmt.Sprintf("UIO device not found: %s", e.Name)
}

// ErrOffset is raised with panic on a misaligned or out of range register access.
// It always indicates a programming error.
type ErrOffset struct {
	Region string
	Offset uint32
	Size   int
}

func (e ErrOffset) Error() string {
	return fmt.Sprintf("Bad offset 0x%x in region %s of size 0x%x", e.Offset, e.Region, e.Size)
}

// ErrReadOnly is raised with panic on a write to a region mapped read-only.
type ErrReadOnly struct {
	Region string
}

func (e ErrReadOnly) Error() string {
	return fmt.Sprintf("Write to read-only region %s", e.Region)
}
