package cmd

import (
	"fmt"
	"runtime"

	"github.com/ostafen/efidisk/internal/env"
	"github.com/ostafen/efidisk/pkg/sysinfo"
	"github.com/spf13/cobra"
)

func DefineVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Print version and platform information",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunVersion,
	}
}

func RunVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("%s %s (%s, built %s)\n", env.AppName, env.Version, env.CommitHash, env.BuildTime)
	fmt.Printf("go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	si, err := sysinfo.Stat()
	if err != nil {
		si = &sysinfo.SysUnknown
	}
	fmt.Printf("os: %s %s (kernel %s)\n", si.Name, si.Release, si.Kernel)
	return nil
}
