// Package intake checks uploaded resumes and extracts the metadata echoed
// back with an analysis. Uploaded bytes are never persisted.
package intake

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/starford/hirelens/internal/apperr"
)

// DefaultMaxBytes is the upload limit when none is configured.
const DefaultMaxBytes = 10 << 20

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDOC  = "application/msword"
)

// Document describes one accepted upload.
type Document struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Pages       int    `json:"pages,omitempty"`
	Words       int    `json:"words,omitempty"`
	Readable    bool   `json:"readable"`
}

// Stem returns the file name without its extension.
func (d Document) Stem() string {
	base := filepath.Base(d.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Inspector validates uploads against the size limit and MIME allow-list.
type Inspector struct {
	maxBytes int64
	logger   *slog.Logger
}

// NewInspector returns an Inspector. maxBytes <= 0 selects DefaultMaxBytes.
func NewInspector(maxBytes int64, logger *slog.Logger) *Inspector {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{maxBytes: maxBytes, logger: logger}
}

// MaxBytes returns the per-file upload limit.
func (i *Inspector) MaxBytes() int64 { return i.maxBytes }

// Accepts reports whether contentType is a PDF or a word-processing document.
func Accepts(contentType string) bool {
	ct := mediaType(contentType)
	return ct == mimePDF || strings.Contains(ct, "document")
}

// Inspect validates an upload and counts pages (PDF) or words (DOCX).
// Documents that cannot be parsed are still accepted with Readable=false.
func (i *Inspector) Inspect(name, contentType string, data []byte) (Document, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return Document{}, fmt.Errorf("%w: file name is required", apperr.ErrInvalidInput)
	}
	ct := mediaType(contentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = byExtension(name)
	}
	if !Accepts(ct) {
		return Document{}, fmt.Errorf("%w: %s: unsupported file type %q", apperr.ErrInvalidInput, name, ct)
	}
	if int64(len(data)) > i.maxBytes {
		return Document{}, fmt.Errorf("%w: %w: %s exceeds %d bytes", apperr.ErrInvalidInput, apperr.ErrTooLarge, name, i.maxBytes)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: %s is empty", apperr.ErrInvalidInput, name)
	}

	doc := Document{Name: name, ContentType: ct, Size: int64(len(data))}
	var err error
	switch ct {
	case mimePDF:
		doc.Pages, err = countPages(data)
	case mimeDOCX:
		doc.Words, err = countWords(data)
	default:
		err = fmt.Errorf("no reader for %s", ct)
	}
	if err != nil {
		i.logger.Debug("intake: document not readable",
			slog.String("name", name),
			slog.String("type", ct),
			slog.String("error", err.Error()))
		return doc, nil
	}
	doc.Readable = true
	return doc, nil
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func byExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".doc":
		return mimeDOC
	}
	return ""
}

func countPages(data []byte) (n int, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to read pdf: %w", err)
	}
	for p := 1; p <= r.NumPage(); p++ {
		if !r.Page(p).V.IsNull() {
			n++
		}
	}
	return n, nil
}

var xmlTag = regexp.MustCompile(`<[^>]+>`)

func countWords(data []byte) (int, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	text := xmlTag.ReplaceAllString(doc.Editable().GetContent(), " ")
	return len(strings.Fields(text)), nil
}
