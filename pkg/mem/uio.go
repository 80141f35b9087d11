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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"jinr.ru/greenlab/adc-recorder/pkg/log"
)

const (
	DefaultSysfsRoot = "/sys/class/uio"
	DefaultDevRoot   = "/dev"
)

// UIODevice describes the first memory map of a userspace I/O device.
type UIODevice struct {
	Name string
	Node string // e.g. uio0
	Addr uint64
	Size uint64
}

// DevPath returns the device node path below devRoot.
func (d *UIODevice) DevPath(devRoot string) string {
	return filepath.Join(devRoot, d.Node)
}

// UIOMapper maps regions exported by the Linux UIO framework. Regions
// are looked up by the name the device tree gives them.
type UIOMapper struct {
	SysfsRoot string
	DevRoot   string
	mapped    map[*Region]*os.File
}

var _ Mapper = &UIOMapper{}

func NewUIOMapper() *UIOMapper {
	return &UIOMapper{
		SysfsRoot: DefaultSysfsRoot,
		DevRoot:   DefaultDevRoot,
		mapped:    map[*Region]*os.File{},
	}
}

func readSysfs(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func readSysfsHex(path string) (uint64, error) {
	s, err := readSysfs(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
}

// List returns all UIO devices found below SysfsRoot ordered by node name.
func (m *UIOMapper) List() ([]*UIODevice, error) {
	entries, err := os.ReadDir(m.SysfsRoot)
	if err != nil {
		return nil, err
	}
	var devices []*UIODevice
	for _, entry := range entries {
		node := entry.Name()
		if !strings.HasPrefix(node, "uio") {
			continue
		}
		dir := filepath.Join(m.SysfsRoot, node)
		name, err := readSysfs(filepath.Join(dir, "name"))
		if err != nil {
			log.Warning("Skipping %s: %s", dir, err)
			continue
		}
		d := &UIODevice{Name: name, Node: node}
		if d.Addr, err = readSysfsHex(filepath.Join(dir, "maps", "map0", "addr")); err != nil {
			log.Debug("%s has no readable map0 address: %s", node, err)
		}
		if d.Size, err = readSysfsHex(filepath.Join(dir, "maps", "map0", "size")); err != nil {
			log.Debug("%s has no readable map0 size: %s", node, err)
		}
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Node < devices[j].Node
	})
	return devices, nil
}

// Lookup finds the UIO device called name.
func (m *UIOMapper) Lookup(name string) (*UIODevice, error) {
	devices, err := m.List()
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, ErrNoDevice{Name: name}
}

// Map opens the UIO node called name and maps size bytes of its first map.
func (m *UIOMapper) Map(name string, size int) (*Region, error) {
	return m.mapRegion(name, size, true)
}

// MapReadOnly maps the UIO node called name with read access only.
func (m *UIOMapper) MapReadOnly(name string, size int) (*Region, error) {
	return m.mapRegion(name, size, false)
}

func (m *UIOMapper) mapRegion(name string, size int, writable bool) (*Region, error) {
	d, err := m.Lookup(name)
	if err != nil {
		return nil, ErrMapping{Name: name, Err: err}
	}
	if size == 0 {
		size = int(d.Size)
	}
	if size <= 0 {
		return nil, ErrMapping{Name: name, Err: errors.New("unknown region size")}
	}
	if d.Size != 0 && uint64(size) > d.Size {
		return nil, ErrMapping{Name: name, Err: fmt.Errorf("requested 0x%x bytes, device exports 0x%x", size, d.Size)}
	}
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	file, err := os.OpenFile(d.DevPath(m.DevRoot), flag|os.O_SYNC, 0)
	if err != nil {
		return nil, ErrMapping{Name: name, Err: err}
	}
	data, err := mmap(file, size, writable)
	if err != nil {
		file.Close()
		return nil, ErrMapping{Name: name, Err: err}
	}
	r := NewRegion(name, d.Addr, data)
	r.readOnly = !writable
	if m.mapped == nil {
		m.mapped = map[*Region]*os.File{}
	}
	m.mapped[r] = file
	log.Debug("Mapped %s (%s) phys 0x%08x size 0x%x read-only %t", name, d.Node, d.Addr, size, r.readOnly)
	return r, nil
}

// Unmap releases a region obtained from Map.
func (m *UIOMapper) Unmap(r *Region) error {
	file, ok := m.mapped[r]
	if !ok {
		return fmt.Errorf("region %s is not mapped", r.Name)
	}
	delete(m.mapped, r)
	err := munmap(r.data)
	r.data = nil
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	log.Debug("Unmapped %s", r.Name)
	return err
}
