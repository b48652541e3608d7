package frontmatter

import (
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontmatter is returned by MustParse when the input does not
	// start with a "---" line.
	ErrMissingFrontmatter = errors.New("missing frontmatter")

	// ErrUnclosedFrontmatter indicates an opening "---" without a closing one.
	ErrUnclosedFrontmatter = errors.New("missing closing frontmatter delimiter")
)

const delimiter = "---"

// Parse decodes the YAML header into matter and returns the body. Input
// without a header is returned whole as the body.
func Parse[T any](r io.Reader, matter *T) ([]byte, error) {
	return parse(r, matter, false)
}

// MustParse is like Parse but requires the header.
func MustParse[T any](r io.Reader, matter *T) ([]byte, error) {
	return parse(r, matter, true)
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading frontmatter input")
	}

	first, rest, ok := cutLine(content)
	if !ok || string(first) != delimiter {
		if required {
			return nil, ErrMissingFrontmatter
		}
		return content, nil
	}

	var header []byte
	for {
		line, next, found := cutLine(rest)
		if string(line) == delimiter {
			if err := yaml.Unmarshal(header, matter); err != nil {
				return nil, errors.Wrap(err, "parsing frontmatter")
			}
			return next, nil
		}
		if !found {
			return nil, ErrUnclosedFrontmatter
		}
		header = append(header, line...)
		header = append(header, '\n')
		rest = next
	}
}

// cutLine splits off the first line, dropping its LF or CRLF terminator.
// found reports whether a terminator was present.
func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}

// Format renders matter as a YAML header followed by body.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}

	buf.WriteString(delimiter + "\n")
	if body != "" {
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}
