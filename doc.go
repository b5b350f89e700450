//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package zipfetch downloads a zip archive from a remote location, with
// progress reporting, and extracts it into a local folder. Both steps are
// skipped when their result is already present on disk.
package zipfetch
