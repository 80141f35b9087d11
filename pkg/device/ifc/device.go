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

package ifc

// Registers is a window of 32-bit device registers addressed by byte offset.
type Registers interface {
	Uint32(offset uint32) uint32
	PutUint32(offset uint32, value uint32)
}

// Waiter blocks until a hardware subsystem has settled.
type Waiter interface {
	Wait() error
}
