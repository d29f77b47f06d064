package packfile

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// zlibCompress compresses data at the given level (0-9; 6 is the
// default re-emission level per the container's Options).
func zlibCompress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// zlibDecompress inflates raw into exactly wantSize bytes.
func zlibDecompress(raw []byte, wantSize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make([]byte, wantSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}
