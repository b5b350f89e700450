//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package zipfetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// BaseName returns the part of remoteFilename before its first dot
func BaseName(remoteFilename string) string {
	base, _, _ := strings.Cut(remoteFilename, ".")
	return base
}

// FetchAndExtract makes sure the contents of the archive
// "{remoteBasePath}/{remoteFilename}" are available in destFolderPath and
// returns "{destFolderPath}/{base name of remoteFilename}".
// See FetchAndExtractWithConfig for details.
func FetchAndExtract(remoteBasePath, remoteFilename, destFolderPath string) (string, error) {
	return FetchAndExtractWithConfig(context.Background(), remoteBasePath, remoteFilename, destFolderPath, GetDefaultConfig())
}

// FetchAndExtractWithConfig downloads "{remoteBasePath}/{remoteFilename}"
// into a local file named remoteFilename, unless that file already exists,
// then extracts it into destFolderPath, unless that folder already exists.
// Neither step checks the validity of what is already on disk: an
// interrupted download is left in place and reused by later calls.
//
// The returned path is "{destFolderPath}/{base name of remoteFilename}",
// whether or not any of the steps ran; its existence is not checked.
func FetchAndExtractWithConfig(ctx context.Context, remoteBasePath, remoteFilename, destFolderPath string, config Config) (string, error) {
	log := config.logger().With(zap.String("archive", remoteFilename))
	destName := BaseName(remoteFilename)
	archivePath := remoteFilename
	if config.WorkDir != "" {
		archivePath = filepath.Join(config.WorkDir, remoteFilename)
	}

	if !isFile(archivePath) {
		reqURL := fmt.Sprintf("%s/%s", remoteBasePath, remoteFilename)
		log.Info("downloading archive", zap.String("url", reqURL), zap.String("file", archivePath))
		if err := fetch(ctx, archivePath, reqURL, destName, config); err != nil {
			return "", err
		}
	} else {
		log.Debug("archive already present, skipping download", zap.String("file", archivePath))
	}

	if !isDir(destFolderPath) {
		log.Info("extracting archive", zap.String("dest", destFolderPath))
		if err := Extract(archivePath, destFolderPath); err != nil {
			return "", err
		}
	} else {
		log.Debug("destination already present, skipping extraction", zap.String("dest", destFolderPath))
	}

	return fmt.Sprintf("%s/%s", destFolderPath, destName), nil
}

func fetch(ctx context.Context, file, reqURL, description string, config Config) error {
	if !config.DoNotShowProgress {
		progress := NewProgress(description, config.ProgressOutput)
		defer progress.Close()
		userFunc := config.ChunkFunc
		config.ChunkFunc = func(blockIndex, blockSize, totalSize int64) {
			progress.Hook(blockIndex, blockSize, totalSize)
			if userFunc != nil {
				userFunc(blockIndex, blockSize, totalSize)
			}
		}
	}

	d, err := DownloadWithConfigAndContext(ctx, file, reqURL, config)
	if err != nil {
		return err
	}
	if err := d.Run(); err != nil {
		return err
	}
	config.logger().Debug("download completed",
		zap.String("file", file),
		zap.Int64("bytes", d.Completed()))
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
