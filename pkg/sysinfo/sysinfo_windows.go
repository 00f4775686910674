//go:build windows

package sysinfo

func kernelRelease() string {
	return "unknown"
}
