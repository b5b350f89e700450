//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package zipfetch

import (
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultBlockSize is the size of the blocks reported to the ChunkFunc
const DefaultBlockSize = 8192

// ChunkFunc is called by the Downloader after every block received.
// blockIndex is the number of blocks delivered so far (0 before the first
// read), blockSize is the configured block size and totalSize is the
// size announced by the server or -1 if unknown.
type ChunkFunc func(blockIndex, blockSize, totalSize int64)

// Config contains the configuration for the downloader and the
// fetch-and-extract helper
type Config struct {
	// HttpClient to use to perform HTTP requests
	HttpClient http.Client
	// ExtraHeaders to add to the HTTP requests.
	ExtraHeaders map[string]string
	// AcceptFunc is an optional function that will be called with the
	// response of the GET request, before writing anything on disk.
	// If the function returns an error, the download is aborted.
	AcceptFunc func(resp *http.Response) error
	// InactivityTimeout is the duration after which, if no data is received,
	// the download is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
	// BlockSize is the read block size, DefaultBlockSize if 0.
	BlockSize int64
	// ChunkFunc is an optional function called after every block received.
	ChunkFunc ChunkFunc
	// WorkDir is the folder where the downloaded archive is cached.
	// If empty the current working directory is used.
	WorkDir string
	// ProgressOutput is where the progress bar is drawn, os.Stderr if nil.
	ProgressOutput io.Writer
	// DoNotShowProgress set to true to disable the progress bar.
	DoNotShowProgress bool
	// Logger receives debug messages, nothing is logged if nil.
	Logger *zap.Logger
}

func (c *Config) blockSize() int64 {
	if c.BlockSize <= 0 {
		return DefaultBlockSize
	}
	return c.BlockSize
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

var defaultConfig Config = Config{}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration that will be used by the Download
// and FetchAndExtract functions.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()

	// deep copy struct
	return defaultConfig
}
