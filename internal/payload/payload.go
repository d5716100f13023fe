// Package payload turns transport-encoded record data into text.
package payload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	archiver "github.com/mholt/archiver/v4"
)

var (
	ErrNotBase64  = errors.New("payload is not valid base64")
	ErrNotUTF8    = errors.New("payload is not valid UTF-8")
	ErrDecompress = errors.New("payload decompression failed")
)

// Decoder decodes base64 record data. With Decompress set, data that
// identifies as a compressed stream is inflated before the UTF-8 check;
// anything else is passed through as is. Data that fails to decompress
// but is already valid UTF-8 (text that happens to start with a
// compression magic, e.g. "BZh") is also passed through.
type Decoder struct {
	Decompress bool
}

func (d Decoder) Decode(data string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotBase64, err)
	}

	if d.Decompress {
		raw, err = decompress(raw)
		if err != nil {
			return "", err
		}
	}

	if !utf8.Valid(raw) {
		return "", ErrNotUTF8
	}
	return string(raw), nil
}

func decompress(raw []byte) ([]byte, error) {
	out, err := inflate(raw)
	if err != nil && utf8.Valid(raw) {
		return raw, nil
	}
	return out, err
}

func inflate(raw []byte) ([]byte, error) {
	format, _, err := archiver.Identify("", bytes.NewReader(raw))
	if errors.Is(err, archiver.ErrNoMatch) {
		return raw, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}

	dec, ok := format.(archiver.Decompressor)
	if !ok {
		// an archive without a compression layer, e.g. zip
		return raw, nil
	}
	rc, err := dec.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	return out, nil
}
