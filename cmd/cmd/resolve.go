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
	"strconv"

	"github.com/ostafen/efidisk/internal/disk"
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/spf13/cobra"
)

func DefineResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "resolve <drive|handle>",
		Short:        "Map a legacy drive number to a firmware handle, or back",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunResolve,
	}

	cmd.Flags().Int64P("partition", "p", -1, "resolve the handle of the given partition")
	cmd.Flags().Bool("handle", false, "treat the argument as a firmware handle")

	return cmd
}

func RunResolve(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	if byHandle, _ := cmd.Flags().GetBool("handle"); byHandle {
		return resolveHandle(sess, args[0])
	}
	return resolveDrive(cmd, sess, args[0])
}

func resolveHandle(sess *session, arg string) error {
	v, err := strconv.ParseUint(arg, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid handle %q", arg)
	}

	drive, part, ok := sess.store.DriveForHandle(sess.fw, efi.Handle(v))
	if !ok {
		return fmt.Errorf("handle 0x%X does not belong to any known device", v)
	}
	if part == disk.WholeDisk {
		fmt.Printf("%s (0x%02X), whole disk\n", drive, uint32(drive))
	} else {
		fmt.Printf("%s (0x%02X), partition %d\n", drive, uint32(drive), part)
	}
	return nil
}

func resolveDrive(cmd *cobra.Command, sess *session, arg string) error {
	drive, err := parseDrive(arg)
	if err != nil {
		return err
	}

	part, _ := cmd.Flags().GetInt64("partition")
	if part < 0 {
		d := sess.store.DeviceForDrive(drive)
		if d == nil {
			return fmt.Errorf("no device for drive %s", drive)
		}
		fmt.Printf("handle 0x%X\t%s\n", uint64(d.Handle), d.Path)
		return nil
	}

	h, ok := sess.store.HandleForPartition(sess.fw, drive, uint32(part))
	if !ok {
		return fmt.Errorf("no handle for drive %s, partition %d", drive, part)
	}
	fmt.Printf("handle 0x%X\n", uint64(h))
	return nil
}
