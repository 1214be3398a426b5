//go:build windows

package memscan

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsBackend implements backend against the VirtualQueryEx /
// ReadProcessMemory / WriteProcessMemory surface. Grounded on the
// teacher's scanner.go, generalized from a single AOB pattern walk into
// the three-operation capability interface the Scan Engine needs.
type windowsBackend struct {
	pid    uint32
	handle windows.Handle
}

func openBackend(pid uint32, perm Permission) (backend, error) {
	access := uint32(windows.PROCESS_QUERY_INFORMATION)
	if perm.canRead() {
		access |= windows.PROCESS_VM_READ
	}
	if perm.canWrite() {
		access |= windows.PROCESS_VM_OPERATION | windows.PROCESS_VM_WRITE
	}

	h, err := windows.OpenProcess(access, false, pid)
	if err != nil {
		return nil, fmt.Errorf("%w: OpenProcess(%d): %v", ErrPermissionDenied, pid, err)
	}
	return &windowsBackend{pid: pid, handle: h}, nil
}

func (b *windowsBackend) close() error {
	if b.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(b.handle)
	b.handle = 0
	return err
}

// regions walks the process's address space with VirtualQueryEx from the
// system's minimum application address up to its maximum, as spec.md §4.2
// describes. A zero RegionSize on a successful query, or a query failure,
// is a terminal condition.
func (b *windowsBackend) regions() ([]RegionDescriptor, error) {
	var sysInfo windows.SystemInfo
	windows.GetSystemInfo(&sysInfo)

	address := uint64(sysInfo.MinimumApplicationAddress)
	maxAddress := uint64(sysInfo.MaximumApplicationAddress)

	var out []RegionDescriptor
	var mbi windows.MemoryBasicInformation

	for address < maxAddress {
		err := windows.VirtualQueryEx(b.handle, uintptr(address), &mbi, unsafe.Sizeof(mbi))
		if err != nil {
			break
		}

		base := uint64(mbi.BaseAddress)
		size := uint64(mbi.RegionSize)
		if size == 0 {
			break
		}

		out = append(out, RegionDescriptor{
			BaseAddress: base,
			Size:        size,
			Readable:    isReadableProtect(mbi.Protect) && mbi.State == windows.MEM_COMMIT,
			Writable:    isWritableProtect(mbi.Protect),
			Executable:  isExecutableProtect(mbi.Protect),
			Shared:      mbi.Type != windows.MEM_PRIVATE,
			Backing:     backingFromType(mbi.Type),
		})

		address = base + size
	}

	return out, nil
}

func isReadableProtect(protect uint32) bool {
	const readable = windows.PAGE_READONLY | windows.PAGE_READWRITE |
		windows.PAGE_EXECUTE_READ | windows.PAGE_EXECUTE_READWRITE
	return protect&readable != 0
}

func isWritableProtect(protect uint32) bool {
	const writable = windows.PAGE_READWRITE | windows.PAGE_WRITECOPY |
		windows.PAGE_EXECUTE_READWRITE | windows.PAGE_EXECUTE_WRITECOPY
	return protect&writable != 0
}

func isExecutableProtect(protect uint32) bool {
	const executable = windows.PAGE_EXECUTE | windows.PAGE_EXECUTE_READ |
		windows.PAGE_EXECUTE_READWRITE | windows.PAGE_EXECUTE_WRITECOPY
	return protect&executable != 0
}

func backingFromType(memType uint32) RegionBacking {
	if memType == windows.MEM_PRIVATE {
		return BackingPrivate
	}
	if memType == windows.MEM_MAPPED || memType == windows.MEM_IMAGE {
		return BackingShared
	}
	return BackingUnknown
}

func (b *windowsBackend) read(address uint64, length int) ([]byte, error) {
	if length <= 0 {
		return nil, nil
	}
	buf := make([]byte, length)
	var bytesRead uintptr

	err := windows.ReadProcessMemory(b.handle, uintptr(address), &buf[0], uintptr(length), &bytesRead)
	if err != nil && bytesRead == 0 {
		return nil, fmt.Errorf("%w: ReadProcessMemory at 0x%x: %v", ErrReadFailed, address, err)
	}
	return buf[:bytesRead], nil
}

func (b *windowsBackend) write(address uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var bytesWritten uintptr
	err := windows.WriteProcessMemory(b.handle, uintptr(address), &data[0], uintptr(len(data)), &bytesWritten)
	if err != nil || int(bytesWritten) != len(data) {
		return fmt.Errorf("%w: WriteProcessMemory at 0x%x: %v", ErrWriteFailed, address, err)
	}
	return nil
}
