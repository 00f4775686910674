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

	"github.com/spf13/cobra"
)

func DefineGeometryCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "geometry <drive>",
		Short:        "Print the CHS geometry advertised for a drive",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunGeometry,
	}
}

func RunGeometry(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("cylinders:    %d\n", g.Cylinders)
	fmt.Printf("heads:        %d\n", g.Heads)
	fmt.Printf("sectors:      %d\n", g.Sectors)
	fmt.Printf("sector size:  %d\n", g.SectorSize)
	fmt.Printf("total:        %d sectors\n", g.TotalSectors)
	fmt.Printf("lba:          %v\n", g.LBA)
	return nil
}
