package format

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/robert-malhotra/stac-go/pkg/href"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// EncodeNDJSON writes entity as newline-delimited JSON. A plain entity
// becomes a single line; an ItemCollection is unrolled, one line per item,
// dropping its own links/pagination wrapper.
func EncodeNDJSON(entity stac.Entity) ([]byte, error) {
	if ic, ok := entity.(*stac.ItemCollection); ok {
		var buf bytes.Buffer
		for _, item := range ic.Features {
			line, err := json.Marshal(item)
			if err != nil {
				return nil, fmt.Errorf("format: encoding ndjson item: %w", err)
			}
			buf.Write(line)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	}
	line, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("format: encoding ndjson: %w", err)
	}
	return append(line, '\n'), nil
}

// DecodeNDJSON parses newline-delimited JSON. Exactly one non-blank line
// produces that entity directly; more than one line requires every line to
// be an Item, collected into an ItemCollection.
func DecodeNDJSON(data []byte) (stac.Entity, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var lines [][]byte
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		lines = append(lines, cp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("format: scanning ndjson: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("format: ndjson buffer is empty")
	}
	if len(lines) == 1 {
		return href.ParseEntity(lines[0])
	}

	items := make([]*stac.Item, len(lines))
	for i, line := range lines {
		item := &stac.Item{}
		if err := json.Unmarshal(line, item); err != nil {
			return nil, fmt.Errorf("format: ndjson line %d is not an Item: %w", i, err)
		}
		items[i] = item
	}
	return stac.NewItemCollection(items), nil
}
