package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/scentdex/scentdex-server/internal/errors"
	"github.com/scentdex/scentdex-server/internal/http/response"
)

// handleServeImage streams a downloaded catalog image.
// Registered on chi directly since the body is binary.
func (s *Server) handleServeImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		response.NotFound(w, "image not found", s.logger)
		return
	}

	data, err := s.images.Read(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = domainerrors.NotFound("image not found")
		}
		response.HandleError(w, err, s.logger)
		return
	}

	sum := sha256.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`

	w.Header().Set("Cache-Control", CacheOneDay)
	w.Header().Set("ETag", etag)

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("image write interrupted", "file", name, "error", err)
	}
}
