package api

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"os"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/imagesync"
	"github.com/scentdex/scentdex-server/internal/logger"
)

func TestServeImage(t *testing.T) {
	storage, err := imagesync.NewStorage(t.TempDir())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	require.NoError(t, storage.Save("0-sauvage.jpg", buf.Bytes()))

	log := logger.Discard().Logger
	holder := catalog.NewStaticHolder(&catalog.Catalog{}, log)
	s := NewServer(holder, nil, nil, Options{Images: storage, ImagesPrefix: "/fragrances/images/"}, log)
	api := humatest.Wrap(t, s.API())

	t.Run("existing file", func(t *testing.T) {
		resp := api.Get("/fragrances/images/0-sauvage.jpg")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))
		assert.Equal(t, buf.Bytes(), resp.Body.Bytes())
		assert.Equal(t, CacheOneDay, resp.Header().Get("Cache-Control"))
		assert.NotEmpty(t, resp.Header().Get("ETag"))
	})

	t.Run("matching etag", func(t *testing.T) {
		first := api.Get("/fragrances/images/0-sauvage.jpg")
		etag := first.Header().Get("ETag")
		require.NotEmpty(t, etag)

		resp := api.Get("/fragrances/images/0-sauvage.jpg", "If-None-Match: "+etag)
		assert.Equal(t, http.StatusNotModified, resp.Code)
		assert.Empty(t, resp.Body.Bytes())
	})

	t.Run("missing file", func(t *testing.T) {
		resp := api.Get("/fragrances/images/1-oud-wood.jpg")
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Contains(t, resp.Body.String(), `"code":"NOT_FOUND"`)
	})

	t.Run("unreadable file", func(t *testing.T) {
		require.NoError(t, os.Mkdir(storage.Path("2-dir.jpg"), 0o755))

		resp := api.Get("/fragrances/images/2-dir.jpg")
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Contains(t, resp.Body.String(), `"code":"INTERNAL"`)
	})

	t.Run("hidden file", func(t *testing.T) {
		resp := api.Get("/fragrances/images/.download-123")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
