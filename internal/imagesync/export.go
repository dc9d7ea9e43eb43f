package imagesync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

// MappingFile and FailuresFile are the export names next to the image directory.
const (
	MappingFile  = "image-mapping.json"
	FailuresFile = "failed-downloads.json"
)

// EncodeMapping renders mapping as a JSON object with numerically ordered keys
// and two-space indentation.
func EncodeMapping(mapping map[int]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, idx := range slices.Sorted(maps.Keys(mapping)) {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := marshalNoEscape(mapping[idx])
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(idx)))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent mapping: %w", err)
	}
	return out.Bytes(), nil
}

// WriteMapping writes the {index: public path} mapping to path.
func WriteMapping(path string, mapping map[int]string) error {
	data, err := EncodeMapping(mapping)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// ReadMapping loads a mapping written by WriteMapping. Non-integer keys are ignored.
func ReadMapping(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}

	mapping := make(map[int]string, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 {
			continue
		}
		mapping[idx] = v
	}
	return mapping, nil
}

// WriteFailures writes failures to path. Nothing is written for an empty list.
func WriteFailures(path string, failures []Failure) (bool, error) {
	if len(failures) == 0 {
		return false, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(failures); err != nil {
		return false, fmt.Errorf("encode failures: %w", err)
	}
	if err := writeFileAtomic(path, bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		return false, err
	}
	return true, nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeFileAtomic replaces path with data via a sibling temp file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
