package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ostafen/efidisk/internal/disk"
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/efi/efitest"
	"github.com/ostafen/efidisk/internal/efi/hostfw"
	"github.com/ostafen/efidisk/internal/logger"
	"github.com/spf13/cobra"
)

const AppName = "efidisk"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - firmware block device discovery and drive resolution",
	}

	rootCmd.PersistentFlags().String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("backend", "", "firmware backend (host, sim)")
	rootCmd.PersistentFlags().Bool("all-devices", false, "include pseudo block devices (loop, ram, dm-*)")

	rootCmd.AddCommand(DefineListCommand())
	rootCmd.AddCommand(DefineResolveCommand())
	rootCmd.AddCommand(DefineGeometryCommand())
	rootCmd.AddCommand(DefineReadCommand())
	rootCmd.AddCommand(DefineVersionCommand())

	return rootCmd.Execute()
}

type session struct {
	store *disk.Store
	fw    efi.Firmware
	log   *logger.Logger
	close func() error
}

func (s *session) Close() error {
	if s.close != nil {
		return s.close()
	}
	return nil
}

// openSession loads the configuration, opens the selected firmware backend
// and runs device discovery over it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	var (
		fw      efi.Firmware
		closeFn func() error
	)
	switch cfg.Backend {
	case "sim":
		fw = efitest.SampleSystem()
	case "host":
		hfw, err := hostfw.New(log, hostfw.Options{All: cfg.AllDevices})
		if err != nil {
			return nil, fmt.Errorf("unable to open host firmware backend: %w", err)
		}
		fw = hfw
		closeFn = hfw.Close
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	store, err := disk.Discover(fw, log)
	if err != nil {
		if closeFn != nil {
			_ = closeFn()
		}
		return nil, err
	}

	return &session{store: store, fw: fw, log: log, close: closeFn}, nil
}

// parseDrive accepts decimal or 0x-prefixed drive numbers, plus the
// conventional fdN/hdN/cd aliases.
func parseDrive(s string) (disk.Drive, error) {
	if s == "cd" {
		return disk.CDROMDrive, nil
	}
	if len(s) > 2 && (s[:2] == "fd" || s[:2] == "hd") {
		n, err := strconv.ParseUint(s[2:], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid drive %q", s)
		}
		if s[:2] == "hd" {
			return disk.HardDiskDrive(uint32(n)), nil
		}
		return disk.Drive(n), nil
	}

	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid drive %q", s)
	}
	return disk.Drive(n), nil
}
