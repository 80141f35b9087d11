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

// HeapMapper serves regions backed by ordinary memory. It stands in for
// the device when there is no hardware, e.g. in tests.
type HeapMapper struct {
	regions map[string]*Region
	mapped  map[*Region]bool
}

var _ Mapper = &HeapMapper{}

func NewHeapMapper() *HeapMapper {
	return &HeapMapper{
		regions: map[string]*Region{},
		mapped:  map[*Region]bool{},
	}
}

// Add registers a zeroed region called name and returns it so that
// callers can preload its contents.
func (m *HeapMapper) Add(name string, phys uint64, size int) *Region {
	r := NewRegion(name, phys, make([]byte, size))
	m.regions[name] = r
	return r
}

func (m *HeapMapper) lookup(name string, size int) (*Region, error) {
	r, ok := m.regions[name]
	if !ok {
		return nil, ErrMapping{Name: name, Err: ErrNoDevice{Name: name}}
	}
	if size > r.Size() {
		return nil, ErrMapping{Name: name, Err: fmt.Errorf("requested 0x%x bytes, region has 0x%x", size, r.Size())}
	}
	return r, nil
}

func (m *HeapMapper) Map(name string, size int) (*Region, error) {
	r, err := m.lookup(name, size)
	if err != nil {
		return nil, err
	}
	m.mapped[r] = true
	return r, nil
}

// MapReadOnly returns a read-only view sharing the memory of the region
// registered as name.
func (m *HeapMapper) MapReadOnly(name string, size int) (*Region, error) {
	r, err := m.lookup(name, size)
	if err != nil {
		return nil, err
	}
	view := NewRegion(r.Name, r.Phys, r.data)
	view.readOnly = true
	m.mapped[view] = true
	return view, nil
}

func (m *HeapMapper) Unmap(r *Region) error {
	if !m.mapped[r] {
		return fmt.Errorf("region %s is not mapped", r.Name)
	}
	delete(m.mapped, r)
	return nil
}

// Mapped returns the number of regions currently mapped.
func (m *HeapMapper) Mapped() int {
	return len(m.mapped)
}
