package probing

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// KernelInfo returns the uname identity of the host for startup logs, or
// "unknown" when the syscall fails.
func KernelInfo() string {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "unknown"
	}

	toString := func(data any) string {
		var b []byte
		switch v := data.(type) {
		case [65]int8:
			for _, c := range v {
				b = append(b, byte(c))
			}
		case [65]uint8:
			b = v[:]
		}
		return unix.ByteSliceToString(b)
	}

	return fmt.Sprintf("%s %s %s",
		toString(uname.Sysname),
		toString(uname.Release),
		toString(uname.Machine))
}
