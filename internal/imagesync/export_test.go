package imagesync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMapping_NumericOrder(t *testing.T) {
	data, err := EncodeMapping(map[int]string{
		10: "/fragrances/images/10-b.jpg",
		2:  "/fragrances/images/2-a.jpg",
	})
	require.NoError(t, err)

	want := "{\n  \"2\": \"/fragrances/images/2-a.jpg\",\n  \"10\": \"/fragrances/images/10-b.jpg\"\n}"
	assert.Equal(t, want, string(data))
}

func TestEncodeMapping_Empty(t *testing.T) {
	data, err := EncodeMapping(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestMapping_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", MappingFile)
	mapping := map[int]string{0: "/img/0-a.jpg", 7: "/img/7-b&c.jpg"}

	require.NoError(t, WriteMapping(path, mapping))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "7-b&c.jpg")

	got, err := ReadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, mapping, got)
}

func TestReadMapping_IgnoresBadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), MappingFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"1":"/a.jpg","x":"/b.jpg","-2":"/c.jpg"}`), 0o600))

	got, err := ReadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "/a.jpg"}, got)
}

func TestReadMapping_Missing(t *testing.T) {
	_, err := ReadMapping(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestWriteFailures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FailuresFile)

	written, err := WriteFailures(path, nil)
	require.NoError(t, err)
	assert.False(t, written)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	failures := []Failure{{Index: 4, Name: "Gone", URL: "https://img.test/4.jpg", Error: "HTTP 404"}}
	written, err = WriteFailures(path, failures)
	require.NoError(t, err)
	assert.True(t, written)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []Failure
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, failures, got)
	assert.Contains(t, string(raw), "\n  {\n    \"index\": 4,")
}
