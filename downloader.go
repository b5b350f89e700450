//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package zipfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
)

// Downloader is a synchronous downloader that reports progress in blocks
type Downloader struct {
	URL           string
	Resp          *http.Response
	out           *os.File
	ctx           context.Context
	wd            watchdog
	chunkFunc     ChunkFunc
	blockSize     int64
	completed     int64
	completedLock sync.Mutex
	size          int64
	closed        bool
}

// Close the download
func (d *Downloader) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.wd.Cancel()
	err1 := d.out.Close()
	err2 := d.Resp.Body.Close()
	if err1 != nil {
		return fmt.Errorf("closing output file: %w", err1)
	}
	if err2 != nil {
		return fmt.Errorf("closing input stream: %w", err2)
	}
	return nil
}

// Size return the size of the download (or -1 if the server doesn't provide it)
func (d *Downloader) Size() int64 {
	return d.size
}

// Run copies the response body into the output file, calling the ChunkFunc
// once before the first block and once after every block received.
// The Downloader is closed when Run returns.
func (d *Downloader) Run() error {
	defer d.Close()

	d.notify(0)
	in := d.Resp.Body
	buff := make([]byte, d.blockSize)
	for blockIndex := int64(1); ; blockIndex++ {
		n, err := d.readBlock(in, buff)
		if n > 0 {
			if _, werr := d.out.Write(buff[:n]); werr != nil {
				return fmt.Errorf("writing %s: %w", d.out.Name(), werr)
			}
			d.completedLock.Lock()
			d.completed += int64(n)
			d.completedLock.Unlock()
			d.notify(blockIndex)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if cause := context.Cause(d.ctx); cause != nil {
				return cause
			}
			if errors.Is(err, io.ErrUnexpectedEOF) && d.size >= 0 {
				break
			}
			return err
		}
	}

	if completed := d.Completed(); d.size >= 0 && completed < d.size {
		return &ContentTooShortError{URL: d.URL, Expected: d.size, Received: completed}
	}
	return d.Close()
}

func (d *Downloader) notify(blockIndex int64) {
	if d.chunkFunc != nil {
		d.chunkFunc(blockIndex, d.blockSize, d.size)
	}
}

// readBlock fills buff unless the stream ends or fails first
func (d *Downloader) readBlock(in io.Reader, buff []byte) (int, error) {
	n := 0
	for n < len(buff) {
		m, err := in.Read(buff[n:])
		if m > 0 {
			d.wd.Kick()
		}
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Completed returns the bytes read so far. It may be called from another
// goroutine while Run executes.
func (d *Downloader) Completed() int64 {
	d.completedLock.Lock()
	res := d.completed
	d.completedLock.Unlock()
	return res
}

// Download returns a downloader that will download the specified url
// in the specified file.
func Download(file string, reqURL string) (*Downloader, error) {
	return DownloadWithConfig(file, reqURL, GetDefaultConfig())
}

// DownloadWithConfig applies an additional configuration to the http client and
// returns a downloader that will download the specified url in the specified file.
func DownloadWithConfig(file string, reqURL string, config Config) (*Downloader, error) {
	return DownloadWithConfigAndContext(context.Background(), file, reqURL, config)
}

// DownloadWithConfigAndContext applies an additional configuration to the http client and
// returns a downloader that will download the specified url in the specified file.
// The GET request is performed immediately and the local file is created (or truncated)
// only if the server answers with a 2xx status code and the AcceptFunc, if any, agrees.
// The transfer happens when Run is called.
func DownloadWithConfigAndContext(ctx context.Context, file string, reqURL string, config Config) (*Downloader, error) {
	ctx, wd := newWatchdog(ctx, config.InactivityTimeout)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		wd.Cancel()
		return nil, fmt.Errorf("setting up HTTP request: %w", err)
	}
	for k, v := range config.ExtraHeaders {
		req.Header.Set(k, v)
	}
	resp, err := config.HttpClient.Do(req)
	if err != nil {
		cause := context.Cause(ctx)
		wd.Cancel()
		if cause != nil {
			return nil, cause
		}
		return nil, err
	}

	discard := func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		wd.Cancel()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		discard()
		return nil, &StatusError{URL: reqURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if config.AcceptFunc != nil {
		if err := config.AcceptFunc(resp); err != nil {
			discard()
			return nil, err
		}
	}

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		discard()
		return nil, fmt.Errorf("opening %s for writing: %w", file, err)
	}

	return &Downloader{
		URL:       reqURL,
		Resp:      resp,
		out:       f,
		ctx:       ctx,
		wd:        wd,
		chunkFunc: config.ChunkFunc,
		blockSize: config.blockSize(),
		size:      resp.ContentLength, // -1 if server doesn't send Content-Length
	}, nil
}
