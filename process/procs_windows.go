//go:build windows

package process

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// user32.dll window-enumeration procs. golang.org/x/sys/windows wraps the
// kernel32/advapi32 surface the rest of this package and memscan's
// windows backend use, but not user32; NewLazySystemDLL is the same
// package's own idiom for reaching the handful of user32 calls a window
// title lookup needs.
var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

func enumWindows(enumFunc uintptr, lparam uintptr) error {
	r1, _, err := procEnumWindows.Call(enumFunc, lparam)
	if r1 == 0 {
		return err
	}
	return nil
}

func getWindowTextLength(hwnd windows.HWND) int {
	r1, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	return int(r1)
}

func getWindowText(hwnd windows.HWND, buf *uint16, maxCount int32) (int, error) {
	r1, _, err := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(buf)), uintptr(maxCount))
	if r1 == 0 {
		return 0, err
	}
	return int(r1), nil
}

func getWindowThreadProcessId(hwnd windows.HWND, pid *uint32) uint32 {
	r1, _, _ := procGetWindowThreadProcessId.Call(uintptr(hwnd), uintptr(unsafe.Pointer(pid)))
	return uint32(r1)
}
