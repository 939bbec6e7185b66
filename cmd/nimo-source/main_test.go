package main

import (
	"testing"

	"github.com/nimo-project/nimo/format"
	"github.com/stretchr/testify/require"
)

func TestParseCompression(t *testing.T) {
	cases := map[string]format.CompressionType{
		"":     format.CompressionNone,
		"none": format.CompressionNone,
		"zstd": format.CompressionZstd,
		"s2":   format.CompressionS2,
		"lz4":  format.CompressionLZ4,
	}
	for name, want := range cases {
		got, err := parseCompression(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := parseCompression("bogus")
	require.Error(t, err)
}
