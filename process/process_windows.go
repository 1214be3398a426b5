//go:build windows

package process

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ByName enumerates running processes via a Toolhelp32 snapshot and
// returns every PID whose executable name case-insensitively matches
// name. Grounded directly on the teacher's FindProcessesByName.
func ByName(name string) ([]uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("process: create snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var pe32 windows.ProcessEntry32
	pe32.Size = uint32(unsafe.Sizeof(pe32))

	if err := windows.Process32First(snapshot, &pe32); err != nil {
		return nil, fmt.Errorf("process: enumerate processes: %w", err)
	}

	var pids []uint32
	for {
		processName := windows.UTF16ToString(pe32.ExeFile[:])
		if strings.EqualFold(processName, name) {
			pids = append(pids, pe32.ProcessID)
		}

		if err := windows.Process32Next(snapshot, &pe32); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, fmt.Errorf("process: enumerate processes: %w", err)
		}
	}

	return pids, nil
}

// ByWindowTitle finds the PID owning the first top-level window whose
// title case-insensitively contains title.
func ByWindowTitle(title string) (uint32, error) {
	var found uint32
	var enumErr error

	cb := windows.NewCallback(func(hwnd windows.HWND, lparam uintptr) uintptr {
		length := getWindowTextLength(hwnd)
		if length == 0 {
			return 1 // continue enumerating
		}

		buf := make([]uint16, length+1)
		if _, err := getWindowText(hwnd, &buf[0], int32(len(buf))); err != nil {
			return 1
		}

		windowTitle := windows.UTF16ToString(buf)
		if !strings.Contains(strings.ToLower(windowTitle), strings.ToLower(title)) {
			return 1
		}

		var pid uint32
		getWindowThreadProcessId(hwnd, &pid)
		if pid == 0 {
			return 1
		}

		found = pid
		return 0 // stop enumerating
	})

	if err := enumWindows(cb, 0); err != nil {
		enumErr = err
	}
	_ = enumErr // EnumWindows returning an error after the callback stops it early is expected, not fatal

	if found == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	return found, nil
}
