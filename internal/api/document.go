package api

import (
	"bytes"
	"io"
)

// Document is a file submitted for analysis.
type Document interface {
	Filename() string
	Open() (io.ReadCloser, error)
}

type memDocument struct {
	name string
	data []byte
}

// NewDocument wraps in-memory content as a Document.
func NewDocument(name string, data []byte) Document {
	return memDocument{name: name, data: data}
}

func (d memDocument) Filename() string { return d.name }

func (d memDocument) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(d.data)), nil
}
