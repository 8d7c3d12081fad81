//go:build linux

package memprobe

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSSReadsCurrentProcess(t *testing.T) {
	rss, err := RSS(os.Getpid())
	require.NoError(t, err)
	assert.Greater(t, rss, int64(0))
}

func TestRSSUnknownPidErrors(t *testing.T) {
	_, err := RSS(1 << 30)
	assert.Error(t, err)
}
