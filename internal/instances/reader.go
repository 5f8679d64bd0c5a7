package instances

import (
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// Decoder reads a stream of whitespace-separated JSON values, the way the
// validate command consumes an instance file or standard input.
type Decoder struct {
	dec   *json.Decoder
	path  string
	index int
}

// NewDecoder wraps r. path is used in decode errors only.
func NewDecoder(r io.Reader, path string) *Decoder {
	return &Decoder{dec: json.NewDecoder(r), path: path}
}

// Next returns the next instance in the stream, io.EOF once the stream is
// exhausted, or a DecodeError identifying the malformed instance.
func (d *Decoder) Next() (any, error) {
	var v any
	if err := d.dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, &DecodeError{Path: d.path, Index: d.index, Wrapped: err}
	}
	d.index++
	return v, nil
}
