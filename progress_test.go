//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package zipfetch

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressCumulative(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	for i := int64(1); i <= 3; i++ {
		p.Hook(i, 512, 4096)
	}
	require.Equal(t, int64(3*512), p.Current())
	require.Equal(t, int64(4096), p.Total())
	require.NoError(t, p.Close())
}

func TestProgressDisplay(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	for i := int64(0); i <= 2; i++ {
		p.Hook(i, 512, 1024)
	}
	require.NoError(t, p.Close())
	require.Contains(t, out.String(), "images")
}

func TestProgressNonConsecutiveBlocks(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	p.Hook(0, 100, 1000)
	require.Equal(t, int64(0), p.Current())
	p.Hook(2, 100, 1000)
	require.Equal(t, int64(200), p.Current())
	p.Hook(5, 100, 1000)
	require.Equal(t, int64(500), p.Current())
	p.Hook(5, 100, 1000)
	require.Equal(t, int64(500), p.Current())
}

func TestProgressUnknownTotal(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	p.Hook(1, 10, -1)
	p.Hook(2, 10, 0)
	require.Equal(t, int64(-1), p.Total())
	require.Equal(t, int64(20), p.Current())
	require.NoError(t, p.Close())
}

func TestProgressUnknownTotalDisplay(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	p.throttle = 0
	p.Hook(1, 10, -1)
	p.Hook(2, 10, 0)
	require.Contains(t, out.String(), "20 B")
	p.Hook(3, 10, -1)
	require.Contains(t, out.String(), "30 B")
	require.NotContains(t, out.String(), "%")
}

func TestProgressTotalKnownLater(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	p.throttle = 0
	p.Hook(1, 10, -1)
	p.Hook(2, 10, 100)
	require.Equal(t, int64(100), p.Total())
	require.Contains(t, out.String(), "20 B")
}

func TestProgressBoundedDisplay(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	p.throttle = 0
	for i := int64(0); i <= 5; i++ {
		p.Hook(i, 100, 500)
	}
	require.NoError(t, p.Close())
	require.Contains(t, out.String(), "100%")
	require.Contains(t, out.String(), "500")
}

func TestProgressOvershootDisplay(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	p.throttle = 0
	for i := int64(0); i <= 3; i++ {
		p.Hook(i, 10, 25)
	}
	require.Contains(t, out.String(), "100%")
	require.NotContains(t, out.String(), "30 B")
}

func TestProgressTotalChanges(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("images", &out)
	p.Hook(1, 10, 100)
	p.Hook(2, 10, 200)
	require.Equal(t, int64(200), p.Total())
	require.Equal(t, int64(20), p.Current())
}

func TestProgressOvershoot(t *testing.T) {
	// The last block is usually shorter than the block size
	var out bytes.Buffer
	p := NewProgress("images", &out)
	for i := int64(0); i <= 3; i++ {
		p.Hook(i, 10, 25)
	}
	require.Equal(t, int64(30), p.Current())
	require.NoError(t, p.Close())
}

func TestProgressCloseWithoutData(t *testing.T) {
	p := NewProgress("images", nil)
	require.NoError(t, p.Close())
}
