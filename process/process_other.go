//go:build !windows

package process

import (
	"fmt"
	"strings"

	gopsprocess "github.com/shirou/gopsutil/v4/process"
)

// ByName lists every running process and returns the PIDs whose name
// case-insensitively matches name. Uses gopsutil rather than hand-parsing
// /proc/<pid>/comm so the same call also works on the other non-Windows
// platforms gopsutil supports.
func ByName(name string) ([]uint32, error) {
	procs, err := gopsprocess.Processes()
	if err != nil {
		return nil, fmt.Errorf("process: list processes: %w", err)
	}

	var pids []uint32
	for _, p := range procs {
		procName, err := p.Name()
		if err != nil {
			continue // process exited mid-enumeration; skip it
		}
		if strings.EqualFold(procName, name) {
			pids = append(pids, uint32(p.Pid))
		}
	}
	return pids, nil
}

// ByWindowTitle has no meaning outside a windowing system; there is no
// portable /proc concept of a "window".
func ByWindowTitle(title string) (uint32, error) {
	return 0, ErrUnsupported
}
