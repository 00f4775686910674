//go:build !linux && !windows
// +build !linux,!windows

package hostfw

import (
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/logger"
)

// New is unsupported on this platform.
func New(log *logger.Logger, opts Options) (*Firmware, error) {
	return nil, efi.ErrUnsupported
}
