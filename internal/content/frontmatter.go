package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// meta is the optional YAML front matter block at the top of a page.
type meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// splitFrontMatter strips a leading YAML block delimited by "---" lines
// and unmarshals it. Documents without front matter pass through
// untouched, as does a file that opens with "---" but never closes it.
func splitFrontMatter(src []byte) (meta, []byte, error) {
	var m meta
	first, rest, ok := cutLine(src)
	if !ok || string(bytes.TrimRight(first, "\r")) != "---" {
		return m, src, nil
	}

	var block []byte
	body := rest
	for {
		line, next, ok := cutLine(body)
		if !ok {
			return meta{}, src, nil
		}
		if string(bytes.TrimRight(line, "\r")) == "---" {
			body = next
			break
		}
		block = append(block, line...)
		block = append(block, '\n')
		body = next
	}

	if err := yaml.Unmarshal(block, &m); err != nil {
		return meta{}, nil, fmt.Errorf("parsing front matter: %w", err)
	}
	return m, body, nil
}

func cutLine(b []byte) (line, rest []byte, ok bool) {
	if len(b) == 0 {
		return nil, nil, false
	}
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i], b[i+1:], true
	}
	return b, nil, true
}
