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
package cmd

import (
	"fmt"

	"github.com/ostafen/efidisk/internal/disk"
	"github.com/ostafen/efidisk/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineListCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List the block devices reported by the firmware",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunList,
	}
}

func RunList(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	printCatalog(disk.Drive(0), sess.store.Floppies())
	printCatalog(disk.HardDiskDrive(0), sess.store.HardDisks())
	printCatalog(disk.CDROMDrive, sess.store.CDROMs())
	return nil
}

func printCatalog(base disk.Drive, devices []*disk.Device) {
	for i, d := range devices {
		m := d.Media()

		size := format.FormatBytes(int64((m.LastBlock + 1) * uint64(m.BlockSize)))
		attrs := ""
		if m.ReadOnly {
			attrs += " ro"
		}
		if m.Removable {
			attrs += " removable"
		}

		fmt.Printf("%-6s 0x%02X  %8s  %5d%s\t%s\n",
			base+disk.Drive(i), uint32(base)+uint32(i), size, m.BlockSize, attrs, d.Path)
	}
}
