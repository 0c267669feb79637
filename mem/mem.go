// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package mem

import (
	"math/bits"

	"github.com/bern-rtos/bern-rtos/arch"
)

// RegionSet is a process's validated protection profile.
type RegionSet struct {
	Owner   string        // Owning process name.
	Regions []arch.Region // Validated regions, admission order.
}

// Manager admits process region sets against the hardware's rules and
// programs the active set on context switches.
//
// Admission runs only during the configuration phase; Apply runs with
// preemption already masked by the scheduler.
type Manager struct {
	port     arch.Port
	admitted []RegionSet
}

// NewManager creates a region manager bound to a port.
func NewManager(port arch.Port) (m *Manager) {
	m = &Manager{
		port: port,
	}

	return
}

// Validate checks a single region against the protection hardware's size,
// alignment and permission rules.
func (m *Manager) Validate(region arch.Region) (err error) {
	min := m.port.MinRegionSize()
	if region.Size < min || bits.OnesCount64(region.Size) != 1 {
		return &ErrRegionSize{Size: region.Size, Min: min}
	}
	if region.Addr%region.Size != 0 {
		return &ErrRegionAlign{Addr: region.Addr, Size: region.Size}
	}

	// The hardware cannot grant user mode more than system mode.
	if region.Access.User > region.Access.System {
		return ErrRegionAccess
	}

	return
}

// Admit validates a process's region set and records it for overlap
// checking against later processes. Shared regions are exempt from the
// overlap rule.
func (m *Manager) Admit(owner string, regions []arch.Region) (set *RegionSet, err error) {
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	if len(regions) > m.port.RegionCount() {
		return nil, &ErrRegionCapacity{
			Requested: len(regions),
			Supported: m.port.RegionCount(),
		}
	}

	for _, region := range regions {
		if err = m.Validate(region); err != nil {
			return nil, err
		}
	}

	for _, region := range regions {
		if region.Shared {
			continue
		}
		for _, prior := range m.admitted {
			for _, other := range prior.Regions {
				if other.Shared {
					continue
				}
				if region.Overlaps(other) {
					return nil, &ErrRegionOverlap{
						Owner:  owner,
						Other:  prior.Owner,
						Region: region,
					}
				}
			}
		}
	}

	set = &RegionSet{Owner: owner, Regions: regions}
	m.admitted = append(m.admitted, *set)

	return
}

// Apply programs a process's region set as the active one. The caller must
// hold a critical section.
func (m *Manager) Apply(set *RegionSet) (err error) {
	return m.port.ConfigureRegions(set.Regions)
}
