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
	"sort"
)

// RegAlias names a register of the configuration region.
type RegAlias int

const (
	RegResetCtrl RegAlias = iota
	RegWriterAddr
	RegSampleCount
	RegAliasLimit
)

// Offsets are bytes from the start of the configuration region
// (CFG_RESET_GRAL, CFG_WR_ADDR and CFG_NSAMPLES of the bitstream).
var RegMap = map[RegAlias]uint32{
	RegResetCtrl:   0x00,
	RegWriterAddr:  0x04,
	RegSampleCount: 0x08,
}

var regNames = map[RegAlias]string{
	RegResetCtrl:   "reset_ctrl",
	RegWriterAddr:  "writer_addr",
	RegSampleCount: "sample_count",
}

func (a RegAlias) String() string {
	if name, ok := regNames[a]; ok {
		return name
	}
	return fmt.Sprintf("reg(%d)", int(a))
}

// ParseRegAlias looks a register up by its String name.
func ParseRegAlias(name string) (RegAlias, error) {
	for alias, n := range regNames {
		if n == name {
			return alias, nil
		}
	}
	return RegAliasLimit, fmt.Errorf("unknown register %q", name)
}

// RegAliases returns all configuration registers ordered by offset.
func RegAliases() []RegAlias {
	aliases := make([]RegAlias, 0, len(RegMap))
	for alias := range RegMap {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool {
		return RegMap[aliases[i]] < RegMap[aliases[j]]
	})
	return aliases
}

// Reset control word bits. Each reset line is active low: clearing the
// bit holds the subsystem in reset, setting it releases it.
const (
	ResetFifoFilter uint32 = 0x1
	ResetPacketizer uint32 = 0x2
	ResetWriter     uint32 = 0x4
)

// StsAlias names a register of the optional status region.
type StsAlias int

const (
	StsWriterPos StsAlias = iota
	StsStatus
	StsAliasLimit
)

var StsMap = map[StsAlias]uint32{
	StsWriterPos: 0x00,
	StsStatus:    0x04,
}

const (
	StsStatusBitRunning uint32 = 0x1
)

// ClearBits returns v with every bit of mask cleared.
func ClearBits(v, mask uint32) uint32 {
	return v &^ mask
}

// SetBits returns v with every bit of mask set.
func SetBits(v, mask uint32) uint32 {
	return v | mask
}

// ApplyBit computes the value a read-modify-write cycle stores: old with
// the bits of mask set or cleared and all other bits untouched.
func ApplyBit(old, mask uint32, set bool) uint32 {
	if set {
		return SetBits(old, mask)
	}
	return ClearBits(old, mask)
}
