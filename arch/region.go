package arch

// Permission is an access permission level.
type Permission int

//go:generate go tool stringer -linecomment -type=Permission
const (
	NO_ACCESS  = Permission(0) // none
	READ_ONLY  = Permission(1) // ro
	READ_WRITE = Permission(2) // rw
)

// Access is the permission pair for a region, split by execution mode.
type Access struct {
	User   Permission // Permission in user mode (tasks).
	System Permission // Permission in system mode (kernel, ISRs).
}

// MemoryKind is the kind of physical memory behind a region.
type MemoryKind int

//go:generate go tool stringer -linecomment -type=MemoryKind
const (
	MEMORY_SRAM       = MemoryKind(0) // sram
	MEMORY_SRAM_EXT   = MemoryKind(1) // sram external
	MEMORY_FLASH      = MemoryKind(2) // flash
	MEMORY_PERIPHERAL = MemoryKind(3) // peripheral
)

// Region is one memory-protection region: an aligned, sized, permissioned
// span of address space. Size must be a power of two and Addr must be
// aligned to Size.
type Region struct {
	Addr       uint64     // Region base address.
	Size       uint64     // Region size in bytes.
	Kind       MemoryKind // Kind of backing memory.
	Access     Access     // Access permissions.
	Executable bool       // Instructions may be fetched from the region.
	Shared     bool       // Region is visible to all processes.
}

// End returns the first address past the region.
func (r Region) End() uint64 {
	return r.Addr + r.Size
}

// Overlaps reports whether two regions cover any common address.
func (r Region) Overlaps(other Region) bool {
	return r.Addr < other.End() && other.Addr < r.End()
}
