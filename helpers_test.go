//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package zipfetch

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	Name    string
	Content string
}

func makeZip(t *testing.T, entries ...zipEntry) []byte {
	var buff bytes.Buffer
	w := zip.NewWriter(&buff)
	for _, e := range entries {
		f, err := w.Create(e.Name)
		require.NoError(t, err)
		if e.Content != "" {
			_, err = f.Write([]byte(e.Content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return buff.Bytes()
}

func makePayload(size int) []byte {
	res := make([]byte, size)
	for i := range res {
		res[i] = byte(i % 251)
	}
	return res
}

// serveFile starts a server that answers with content on path and 404
// everywhere else. The returned counter holds the number of hits on path.
func serveFile(t *testing.T, path string, content []byte) (*httptest.Server, *atomic.Int64) {
	hits := &atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		_, _ = w.Write(content)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}
