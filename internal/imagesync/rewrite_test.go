package imagesync

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rewriteInput = `[
{"Name":"Sauvage","Image URL":"https://img.test/0.jpg","rating":4.2,"Year":"2015"},
{"Name":"Unmapped","Image URL":"https://img.test/1.jpg"},
"not an object",
{"Name":"No Key","Brand":"X"}
]`

func TestRewrite(t *testing.T) {
	mapping := map[int]string{
		0: "/fragrances/images/0-sauvage.jpg",
		2: "/fragrances/images/2-x.jpg",
		3: "/fragrances/images/3-no-key.jpg",
	}

	var out bytes.Buffer
	result, err := Rewrite(strings.NewReader(rewriteInput), &out, mapping)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, []int{1, 2}, result.Unmapped)

	want := `[
  {
    "Name": "Sauvage",
    "Image URL": "/fragrances/images/0-sauvage.jpg",
    "rating": 4.2,
    "Year": "2015"
  },
  {
    "Name": "Unmapped",
    "Image URL": "https://img.test/1.jpg"
  },
  "not an object",
  {
    "Name": "No Key",
    "Brand": "X",
    "Image URL": "/fragrances/images/3-no-key.jpg"
  }
]`
	assert.Equal(t, want, out.String())
}

func TestRewrite_RejectsNonArray(t *testing.T) {
	_, err := Rewrite(strings.NewReader(`{"Name":"x"}`), &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestRewriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragrancesV2.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Name":"A & B","Image URL":"https://x.test/a.jpg"}]`), 0o600))

	result, err := RewriteFile(path, map[int]string{0: "/img/0-a-b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Image URL": "/img/0-a-b.jpg"`)
	assert.Contains(t, string(raw), `"A & B"`)
}
