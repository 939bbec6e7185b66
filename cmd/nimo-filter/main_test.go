package main

import (
	"testing"

	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/value"
	"github.com/stretchr/testify/require"
)

func TestMatches_EmptySubstrForwardsEverything(t *testing.T) {
	require.True(t, matches(value.NewInteger(1), ""))
}

func TestMatches_ChecksLastStringElement(t *testing.T) {
	arr := value.NewArray()
	arr.Append(value.NewInteger(1))
	arr.Append(value.NewString("sensors.cpu"))

	require.True(t, matches(arr, "cpu"))
	require.False(t, matches(arr, "mem"))
}

func TestMatches_NonArrayRejectedWhenFiltering(t *testing.T) {
	require.False(t, matches(value.NewInteger(1), "cpu"))
}

func TestMatches_EmptyArrayRejectedWhenFiltering(t *testing.T) {
	require.False(t, matches(value.NewArray(), "cpu"))
}

func TestParseCompression(t *testing.T) {
	_, err := parseCompression("bogus")
	require.Error(t, err)

	c, err := parseCompression("s2")
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, c)
}
