package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/logger"
)

func listIDs(t *testing.T, ts *testServer, path string) (FragranceListResponse, []int) {
	t.Helper()

	resp := ts.api.Get(path)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body FragranceListResponse
	env := decodeEnvelope(t, resp.Body.Bytes(), &body)
	require.True(t, env.Success)

	ids := make([]int, len(body.Items))
	for i, item := range body.Items {
		ids[i] = item.ID
	}
	return body, ids
}

func TestListFragrances_Defaults(t *testing.T) {
	ts := setupTestServer(t)

	body, ids := listIDs(t, ts, "/api/v1/fragrances")

	assert.Equal(t, []int{0, 2, 1, 3, 4}, ids)
	assert.Equal(t, 5, body.Total)
	assert.Equal(t, 20, body.Reveal)
	assert.False(t, body.HasMore)
	assert.Equal(t, 40, body.NextReveal)
	assert.Equal(t, "popular", body.Filters.Sort)
	assert.False(t, body.Filters.Active)
	assert.Equal(t, "Most popular", body.SortLabel)
}

func TestListFragrances_Filters(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"gender is normalized", "?gender=Men", []int{0, 1, 4}},
		{"season above threshold", "?season=winter", []int{3}},
		{"designer exact", "?designer=Chanel", []int{2, 1}},
		{"designer is case sensitive", "?designer=chanel", []int{}},
		{"note exact", "?note=Bergamot", []int{0, 2, 1}},
		{"search brand and name", "?q=SAUV", []int{0, 4}},
		{"search spans brand then name", "?q=dior%20sauvage", []int{0, 4}},
		{"filters combine", "?gender=men&designer=Dior&season=summer", []int{0}},
		{"sort rated", "?sort=rated", []int{3, 1, 0, 2, 4}},
		{"sort newest", "?sort=newest", []int{4, 0, 1, 3, 2}},
		{"sort catalog order", "?sort=id", []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ids := listIDs(t, ts, "/api/v1/fragrances"+tt.query)
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), body.Total)
		})
	}
}

func TestListFragrances_RevealWindow(t *testing.T) {
	ts := setupTestServer(t)

	body, ids := listIDs(t, ts, "/api/v1/fragrances?reveal=2")

	assert.Equal(t, []int{0, 2}, ids)
	assert.Equal(t, 5, body.Total)
	assert.True(t, body.HasMore)
	assert.Equal(t, 22, body.NextReveal)
}

func TestListFragrances_RevealAtCap(t *testing.T) {
	ts := setupTestServer(t)

	body, ids := listIDs(t, ts, "/api/v1/fragrances?reveal=10000")

	assert.Len(t, ids, 5)
	assert.Equal(t, 10000, body.Reveal)
	assert.False(t, body.HasMore)
	assert.Equal(t, 10000, body.NextReveal)
}

func TestListFragrances_EveryDesignerFacetFilters(t *testing.T) {
	const raw = `[
{"Name":"Un","Brand":"Maison ","Gender":"women"},
{"Name":"Deux","Brand":" Atelier","Gender":"men"},
{"Name":"Trois","Brand":"Maison","Gender":"unisex"},
{"Name":"Quatre","Brand":"Dior","Gender":"men"}
]`
	log := logger.Discard().Logger
	c, err := catalog.Decode(strings.NewReader(raw))
	require.NoError(t, err)
	s := NewServer(catalog.NewStaticHolder(c, log), nil, nil, Options{}, log)
	ts := &testServer{Server: s, api: humatest.Wrap(t, s.API())}

	facets := getFacet(t, ts, "/api/v1/designers")
	require.Len(t, facets.Items, 4)

	for _, d := range facets.Items {
		body, ids := listIDs(t, ts, "/api/v1/fragrances?designer="+url.QueryEscape(d.Name))
		assert.Len(t, ids, d.Count, "designer %q", d.Name)
		for _, item := range body.Items {
			assert.Equal(t, d.Name, item.Brand)
		}
	}
}

func TestListFragrances_Summary(t *testing.T) {
	ts := setupTestServer(t)

	body, _ := listIDs(t, ts, "/api/v1/fragrances?sort=id&reveal=1")
	require.Len(t, body.Items, 1)

	item := body.Items[0]
	assert.Equal(t, "Sauvage", item.Name)
	assert.Equal(t, "men", item.GenderLabel)
	assert.Equal(t, 2015, item.Year)
	require.Len(t, item.Accords, 2)
	assert.Equal(t, "#cccccc", item.Accords[0].Background)
	assert.Equal(t, "#f9ff52", item.Accords[1].Background)
}

func TestListFragrances_CatalogVersionHeader(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/fragrances")

	assert.Equal(t, ts.snapshot().Version, resp.Header().Get("X-Catalog-Version"))
}

func TestListFragrances_InvalidParams(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("unknown gender", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/fragrances?gender=kids")
		require.Equal(t, http.StatusBadRequest, resp.Code)

		env := decodeEnvelope(t, resp.Body.Bytes(), nil)
		assert.False(t, env.Success)
		assert.Equal(t, "VALIDATION", env.Code)
		assert.Contains(t, env.Details, "gender")
	})

	t.Run("unknown sort", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/fragrances?sort=price")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("reveal above cap", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/fragrances?reveal=10001")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("reveal overflowing int", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/fragrances?reveal=9223372036854775807")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Equal(t, "VALIDATION", decodeEnvelope(t, resp.Body.Bytes(), nil).Code)
	})

	t.Run("reveal below one", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/fragrances?reveal=0")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Equal(t, "VALIDATION", decodeEnvelope(t, resp.Body.Bytes(), nil).Code)
	})
}

type detailBody struct {
	Fragrance struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"fragrance"`
	GenderLabel string `json:"gender_label"`
	IsNew       bool   `json:"is_new"`
	Description string `json:"description"`
	Accords     []struct {
		Accord     string `json:"accord"`
		Background string `json:"background"`
		Text       string `json:"text"`
	} `json:"accords"`
	Notes struct {
		Middle []struct {
			Name  string `json:"name"`
			Image string `json:"image"`
		} `json:"middle"`
	} `json:"notes"`
	Seasons []struct {
		Name    string  `json:"name"`
		Percent float64 `json:"percent"`
	} `json:"seasons"`
	Similar []struct {
		ID int `json:"id"`
	} `json:"similar"`
	SameBrand []struct {
		ID int `json:"id"`
	} `json:"same_brand"`
	Gallery struct {
		Count int  `json:"count"`
		Open  bool `json:"open"`
	} `json:"gallery"`
}

func TestGetFragrance(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/fragrances/0")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body detailBody
	decodeEnvelope(t, resp.Body.Bytes(), &body)

	assert.Equal(t, "Sauvage", body.Fragrance.Name)
	assert.Equal(t, "men", body.GenderLabel)
	assert.False(t, body.IsNew)
	assert.Contains(t, body.Description, "<strong>Sauvage</strong> by <strong>Dior</strong>")

	require.Len(t, body.Accords, 2)
	assert.Equal(t, "fresh spicy", body.Accords[0].Accord)
	assert.Equal(t, "black", body.Accords[1].Text)

	require.Len(t, body.Notes.Middle, 2)
	assert.Equal(t, "/notes/lavender.png", body.Notes.Middle[1].Image)

	require.Len(t, body.Seasons, 2)
	assert.InDelta(t, 83.33, body.Seasons[0].Percent, 0.01)

	require.Len(t, body.Similar, 1)
	assert.Equal(t, 4, body.Similar[0].ID)
	require.Len(t, body.SameBrand, 1)
	assert.Equal(t, 4, body.SameBrand[0].ID)

	assert.Equal(t, 3, body.Gallery.Count)
	assert.False(t, body.Gallery.Open)
}

func TestGetFragrance_NewRelease(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/fragrances/4")
	require.Equal(t, http.StatusOK, resp.Code)

	var body detailBody
	decodeEnvelope(t, resp.Body.Bytes(), &body)
	assert.True(t, body.IsNew)
	assert.Contains(t, body.Description, "This is a new fragrance.")
}

func TestGetFragrance_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	for _, id := range []string{"5", "99", "-1", "abc", "1.5"} {
		t.Run(id, func(t *testing.T) {
			resp := ts.api.Get("/api/v1/fragrances/" + id)
			require.Equal(t, http.StatusNotFound, resp.Code)

			env := decodeEnvelope(t, resp.Body.Bytes(), nil)
			assert.False(t, env.Success)
			assert.Equal(t, "NOT_FOUND", env.Code)
		})
	}
}

type galleryBody struct {
	State struct {
		Count   int    `json:"count"`
		Open    bool   `json:"open"`
		Active  *int   `json:"active"`
		Counter string `json:"counter"`
		HasPrev bool   `json:"has_prev"`
		HasNext bool   `json:"has_next"`
	} `json:"state"`
	Photo *struct {
		URL    string `json:"url"`
		Author string `json:"author"`
	} `json:"photo"`
}

func getGallery(t *testing.T, ts *testServer, path string) galleryBody {
	t.Helper()

	resp := ts.api.Get(path)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body galleryBody
	decodeEnvelope(t, resp.Body.Bytes(), &body)
	return body
}

func TestNavigateGallery(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("open", func(t *testing.T) {
		body := getGallery(t, ts, "/api/v1/fragrances/0/gallery?index=1")
		require.NotNil(t, body.State.Active)
		assert.Equal(t, 1, *body.State.Active)
		assert.Equal(t, "2 / 3", body.State.Counter)
		assert.True(t, body.State.HasPrev)
		assert.True(t, body.State.HasNext)
		require.NotNil(t, body.Photo)
		assert.Equal(t, "/g/0b.jpg", body.Photo.URL)
	})

	t.Run("next", func(t *testing.T) {
		body := getGallery(t, ts, "/api/v1/fragrances/0/gallery?index=0&action=next")
		require.NotNil(t, body.State.Active)
		assert.Equal(t, 1, *body.State.Active)
	})

	t.Run("next at the end is a no-op", func(t *testing.T) {
		body := getGallery(t, ts, "/api/v1/fragrances/0/gallery?index=2&action=next")
		require.NotNil(t, body.State.Active)
		assert.Equal(t, 2, *body.State.Active)
		assert.False(t, body.State.HasNext)
	})

	t.Run("prev at the start is a no-op", func(t *testing.T) {
		body := getGallery(t, ts, "/api/v1/fragrances/0/gallery?index=0&action=prev")
		require.NotNil(t, body.State.Active)
		assert.Equal(t, 0, *body.State.Active)
		require.NotNil(t, body.Photo)
		assert.Equal(t, "ana", body.Photo.Author)
	})

	t.Run("close", func(t *testing.T) {
		body := getGallery(t, ts, "/api/v1/fragrances/0/gallery?index=1&action=close")
		assert.False(t, body.State.Open)
		assert.Nil(t, body.State.Active)
		assert.Nil(t, body.Photo)
	})

	t.Run("open out of range stays closed", func(t *testing.T) {
		body := getGallery(t, ts, "/api/v1/fragrances/0/gallery?index=3")
		assert.False(t, body.State.Open)
		assert.Nil(t, body.Photo)
	})
}

func TestNavigateGallery_Errors(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/fragrances/1/gallery")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/fragrances/42/gallery")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/fragrances/0/gallery?action=spin")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestNavigateGallery_IndexOutOfRange(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{
		"/api/v1/fragrances/0/gallery?index=3&action=next",
		"/api/v1/fragrances/0/gallery?index=-1&action=prev",
		"/api/v1/fragrances/0/gallery?index=99&action=close",
	} {
		resp := ts.api.Get(path)
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code, path)

		env := decodeEnvelope(t, resp.Body.Bytes(), nil)
		assert.False(t, env.Success)
		assert.Equal(t, "VALIDATION", env.Code, path)
	}
}
