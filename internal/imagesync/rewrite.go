package imagesync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// imageURLKey is the dataset field the rewrite replaces.
const imageURLKey = "Image URL"

// RewriteResult counts the records touched by a rewrite.
type RewriteResult struct {
	Updated int
	Skipped int
	// Unmapped lists the indexes that had no mapping entry.
	Unmapped []int
}

type member struct {
	key   string
	value json.RawMessage
}

// Rewrite copies the dataset array from r to w, replacing "Image URL" of every
// mapped record with its local path. Key order and all other values are kept;
// output is indented with two spaces.
func Rewrite(r io.Reader, w io.Writer, mapping map[int]string) (*RewriteResult, error) {
	var records []json.RawMessage
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	result := &RewriteResult{}
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, rec := range records {
		if i > 0 {
			buf.WriteByte(',')
		}

		localPath, ok := mapping[i]
		if !ok {
			result.Skipped++
			result.Unmapped = append(result.Unmapped, i)
			buf.Write(rec)
			continue
		}

		members, err := decodeObject(rec)
		if err != nil {
			result.Skipped++
			result.Unmapped = append(result.Unmapped, i)
			buf.Write(rec)
			continue
		}

		value, err := marshalNoEscape(localPath)
		if err != nil {
			return nil, err
		}
		members = setMember(members, imageURLKey, value)
		if err := encodeObject(&buf, members); err != nil {
			return nil, err
		}
		result.Updated++
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent dataset: %w", err)
	}
	if _, err := w.Write(out.Bytes()); err != nil {
		return nil, fmt.Errorf("write dataset: %w", err)
	}
	return result, nil
}

// RewriteFile rewrites the dataset at path in place.
func RewriteFile(path string, mapping map[int]string) (*RewriteResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var out bytes.Buffer
	result, err := Rewrite(f, &out, mapping)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, out.Bytes()); err != nil {
		return nil, err
	}
	return result, nil
}

// decodeObject reads a JSON object keeping member order.
func decodeObject(data json.RawMessage) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("not an object")
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: value})
	}
	return members, nil
}

func setMember(members []member, key string, value json.RawMessage) []member {
	for i := range members {
		if members[i].key == key {
			members[i].value = value
			return members
		}
	}
	return append(members, member{key: key, value: value})
}

func encodeObject(buf *bytes.Buffer, members []member) error {
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(m.key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return nil
}
