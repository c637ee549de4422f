// Package upload validates candidate documents and tracks the single
// in-flight analyze request.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFContentType is the MIME type accepted for analysis.
const PDFContentType = "application/pdf"

// File is a candidate document chosen by the user.
type File struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// Open stats path and sniffs its content type. A terminal has no
// browser-supplied MIME type, so it is detected from the file header.
func Open(path string) (*File, error) {
	path = cleanPath(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	f := &File{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect content type of %s: %w", path, err)
	}
	f.ContentType = mt.String()
	if mt.Is(PDFContentType) {
		f.ContentType = PDFContentType
	}

	return f, nil
}

// Filename implements api.Document.
func (f *File) Filename() string { return f.Name }

// Open implements api.Document.
func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// HumanSize returns the file size formatted for display.
func (f *File) HumanSize() string {
	return FormatSize(f.Size)
}

// IsValidPDF reports whether f can be submitted. Either a PDF content type
// or a .pdf extension is sufficient.
func IsValidPDF(f *File) bool {
	if f == nil {
		return false
	}
	return f.ContentType == PDFContentType || strings.HasSuffix(strings.ToLower(f.Name), ".pdf")
}

// FormatSize formats a byte count the way file sizes are shown to users.
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

// Info is informational detail about a PDF shown before upload.
type Info struct {
	Pages int // 0 when the PDF could not be parsed locally
	Size  string
}

// Inspect reads page count and size of the PDF at path. A parse failure is
// returned alongside a partial Info; it never prevents the upload, since
// the remote service does its own parsing.
func Inspect(f *File) (Info, error) {
	info := Info{Size: f.HumanSize()}

	pdfCtx, err := api.ReadContextFile(f.Path)
	if err != nil {
		return info, fmt.Errorf("read pdf %s: %w", f.Name, err)
	}
	info.Pages = pdfCtx.PageCount
	return info, nil
}

// cleanPath normalizes a path typed, pasted or dropped into the terminal.
// Dropped files arrive quoted or with escaped spaces.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 {
		if (p[0] == '\'' && p[len(p)-1] == '\'') || (p[0] == '"' && p[len(p)-1] == '"') {
			p = p[1 : len(p)-1]
		}
	}
	p = strings.ReplaceAll(p, `\ `, " ")
	p = strings.TrimPrefix(p, "file://")

	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}
