package genbox

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// DefaultEncoding is used when LoadOptions.Encoding is empty.
const DefaultEncoding = "utf-8"

// LoadOptions selects how a report file is decoded.
type LoadOptions struct {
	// Encoding is a WHATWG encoding label, e.g. "utf-8", "windows-1252",
	// "utf-16le".
	Encoding string
	// Binary keeps line endings untouched. In the default text mode "\r\n"
	// and lone "\r" are read as "\n".
	Binary bool
}

// ReadDocument returns the decoded text content of the report at path.
func ReadDocument(path string, opts LoadOptions) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrIOFailure, path, err)
	}

	text, err := decode(raw, opts.Encoding)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDecodeFailure, path, err)
	}
	if !opts.Binary {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text, nil
}

func decode(raw []byte, label string) (string, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("content is not valid utf-8")
		}
		return string(raw), nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", fmt.Errorf("unknown encoding %q", label)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding as %s: %w", name, err)
	}
	return string(out), nil
}
