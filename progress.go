//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package zipfetch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Progress tracks the bytes transferred by a single download and draws
// them as a progress bar. Its Hook method can be used as a ChunkFunc.
// A Progress must not be shared between transfers.
type Progress struct {
	description string
	out         io.Writer
	bar         *progressbar.ProgressBar
	bounded     bool
	throttle    time.Duration
	total       int64
	lastBlock   int64
	current     int64
}

// NewProgress creates a Progress drawing on out, os.Stderr if nil.
func NewProgress(description string, out io.Writer) *Progress {
	if out == nil {
		out = os.Stderr
	}
	return &Progress{
		description: description,
		out:         out,
		throttle:    65 * time.Millisecond,
		total:       -1,
	}
}

// Hook advances the progress by (blockIndex-lastBlockIndex)*blockSize bytes.
// totalSize replaces the previously known total, a value <= 0 means unknown
// and the bar shows only the byte count.
func (p *Progress) Hook(blockIndex, blockSize, totalSize int64) {
	if totalSize <= 0 {
		totalSize = -1
	}
	p.total = totalSize
	p.current += (blockIndex - p.lastBlock) * blockSize
	p.lastBlock = blockIndex
	p.draw()
}

// draw updates the bar. A bar created without a total stays a spinner
// showing the byte count, even if a total is reported later.
func (p *Progress) draw() {
	if p.bar == nil {
		p.bounded = p.total > 0
		p.bar = progressbar.NewOptions64(p.total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(p.description),
			progressbar.OptionShowBytes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(10),
			progressbar.OptionThrottle(p.throttle),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionOnCompletion(func() { fmt.Fprint(p.out, "\n") }),
		)
	} else if p.bounded && p.total > 0 && p.bar.GetMax64() != p.total {
		p.bar.ChangeMax64(p.total)
	}

	shown := p.current
	if limit := p.bar.GetMax64(); p.bounded && shown > limit {
		shown = limit
	}
	_ = p.bar.Set64(shown)
}

// Current returns the cumulative number of bytes reported so far
func (p *Progress) Current() int64 {
	return p.current
}

// Total returns the last total size reported, or -1 if unknown
func (p *Progress) Total() int64 {
	return p.total
}

// Close completes the progress bar. A bar left short of its total is not
// filled up, only terminated.
func (p *Progress) Close() error {
	if p.bar == nil {
		return nil
	}
	if p.bounded && p.current < p.bar.GetMax64() {
		_, err := fmt.Fprint(p.out, "\n")
		return err
	}
	return p.bar.Finish()
}
