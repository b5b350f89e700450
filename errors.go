//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package zipfetch

import "fmt"

// StatusError is returned when the server answers with a non-2xx status code
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("downloading %s: server returned %s", e.URL, e.Status)
}

// ContentTooShortError is returned when the connection is closed before
// receiving the amount of data announced by the server
type ContentTooShortError struct {
	URL      string
	Expected int64
	Received int64
}

func (e *ContentTooShortError) Error() string {
	return fmt.Sprintf("downloading %s: retrieval incomplete, got only %d out of %d bytes", e.URL, e.Received, e.Expected)
}

// UnsafePathError is returned when an archive entry would be extracted
// outside of the destination folder
type UnsafePathError struct {
	Archive string
	Entry   string
}

func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("extracting %s: illegal file path %q", e.Archive, e.Entry)
}
