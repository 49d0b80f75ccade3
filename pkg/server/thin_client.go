package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	clientdist "github.com/vango-dev/quicktip/client/dist"
)

// clientAsset is the embedded browser client with its content hash.
type clientAsset struct {
	body []byte
	etag string
}

func newClientAsset(body []byte) clientAsset {
	sum := sha256.Sum256(body)
	return clientAsset{body: body, etag: `"` + hex.EncodeToString(sum[:8]) + `"`}
}

var thinClient = newClientAsset(clientdist.QuicktipJS)

// serveThinClient serves the client script. The URL is not versioned, so
// browsers revalidate with If-None-Match on every page load.
func (s *Server) serveThinClient(w http.ResponseWriter, r *http.Request) {
	if len(thinClient.body) == 0 {
		http.Error(w, "quicktip client not built", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("ETag", thinClient.etag)
	h.Set("Content-Type", "application/javascript; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	if s.config.Debug {
		h.Set("Cache-Control", "no-store")
	} else {
		h.Set("Cache-Control", "public, max-age=0, must-revalidate")
	}

	http.ServeContent(w, r, "quicktip.js", time.Time{}, bytes.NewReader(thinClient.body))
}
