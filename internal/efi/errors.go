package efi

import "errors"

var (
	// ErrNotFound reports a resolution query with no matching entry.
	ErrNotFound = errors.New("efi: not found")

	// ErrTransport wraps a failed read or write service call.
	ErrTransport = errors.New("efi: transport failure")

	// ErrUnsupported reports an operation the firmware backend cannot serve.
	ErrUnsupported = errors.New("efi: unsupported")
)
