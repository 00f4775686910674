package format_test

import (
	"testing"

	"github.com/ostafen/efidisk/pkg/util/format"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512B", format.FormatBytes(512))
	require.Equal(t, "4KB", format.FormatBytes(4096))
	require.Equal(t, "1.50MB", format.FormatBytes(3<<19))
	require.Equal(t, "2GB", format.FormatBytes(2<<30))
}

func TestParseBytes(t *testing.T) {
	for in, want := range map[string]uint64{
		"512":   512,
		"512B":  512,
		"4kb":   4096,
		"1.5MB": 3 << 19,
		" 2GB ": 2 << 30,
		"1TB":   1 << 40,
	} {
		got, err := format.ParseBytes(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "-1", "12XB"} {
		_, err := format.ParseBytes(in)
		require.Error(t, err, in)
	}
}
