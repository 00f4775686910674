// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package sysinfo

import (
	"bufio"
	"os"
	"runtime"
	"strings"
)

// SysUnknown is a pre-defined SysInfo struct representing unknown system information.
var SysUnknown = SysInfo{
	Name:    runtime.GOOS,
	Release: "unknown",
	Kernel:  "unknown",
}

// SysInfo holds the basic operating system details.
type SysInfo struct {
	Name    string // The name of the operating system (e.g., "linux", "darwin", "windows").
	Release string // The distribution or product release (e.g., "Ubuntu 24.04").
	Kernel  string // The kernel release string.
}

// Stat gathers and returns basic operating system information.
func Stat() (*SysInfo, error) {
	si := &SysInfo{
		Name:    runtime.GOOS,
		Release: "unknown",
		Kernel:  kernelRelease(),
	}
	if runtime.GOOS == "linux" {
		if rel := osRelease(); rel != "" {
			si.Release = rel
		}
	}
	return si, nil
}

// osRelease reads the distribution name and version from /etc/os-release.
func osRelease() string {
	f, err := os.Open("/etc/os-release")
	if err != nil {
		return ""
	}
	defer f.Close()

	var name, version string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "NAME=") {
			name = strings.Trim(line[5:], `"`)
		}
		if strings.HasPrefix(line, "VERSION=") {
			version = strings.Trim(line[8:], `"`)
		}
	}
	return strings.TrimSpace(name + " " + version)
}
