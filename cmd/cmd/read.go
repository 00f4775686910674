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
	"encoding/hex"
	"fmt"
	"os"

	"github.com/ostafen/efidisk/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineReadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "read <drive>",
		Short:        "Read sectors from a drive",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunRead,
	}

	cmd.Flags().Uint64("sector", 0, "first sector to read")
	cmd.Flags().String("length", "512B", "amount of data to read, rounded up to whole sectors")
	cmd.Flags().StringP("output", "o", "", "write raw data to the given file instead of hex-dumping")

	return cmd
}

func RunRead(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	drive, err := parseDrive(args[0])
	if err != nil {
		return err
	}

	g, ok := sess.store.Geometry(drive)
	if !ok {
		return fmt.Errorf("no device for drive %s", drive)
	}

	sector, _ := cmd.Flags().GetUint64("sector")
	lengthStr, _ := cmd.Flags().GetString("length")

	length, err := format.ParseBytes(lengthStr)
	if err != nil {
		return fmt.Errorf("invalid length %q: %w", lengthStr, err)
	}

	bs := uint64(g.SectorSize)
	count := (length + bs - 1) / bs
	if count == 0 {
		count = 1
	}

	buf := make([]byte, count*bs)
	if err := sess.store.ReadSectors(drive, sector, count, buf); err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		return os.WriteFile(out, buf, 0o644)
	}
	fmt.Print(hex.Dump(buf))
	return nil
}
