package collection

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageSource yields the text of a document page by page. Pages are numbered
// from 1.
type PageSource interface {
	Name() string
	Creator() string
	NumPages() int
	PageText(page int) (string, error)
}

// PDFSource is a PageSource over an in-memory PDF.
type PDFSource struct {
	name   string
	reader *pdf.Reader
}

// OpenPDF reads the PDF at path. An encrypted file is decrypted with password
// first.
func OpenPDF(path, password string) (*PDFSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError("open", path, err)
	}
	return ReadPDF(filepath.Base(path), data, password)
}

// ReadPDF wraps PDF bytes. The name is used in errors and logs only.
func ReadPDF(name string, data []byte, password string) (*PDFSource, error) {
	if password != "" {
		decrypted, err := decrypt(data, password)
		if err != nil {
			return nil, readError("decrypt", name, err)
		}
		data = decrypted
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		kind := "corrupt pdf"
		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			kind = "not a pdf"
		}
		return nil, readError("read", name, fmt.Errorf("%s: %w", kind, err))
	}
	return &PDFSource{name: name, reader: reader}, nil
}

func decrypt(data []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &out, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (s *PDFSource) Name() string  { return s.name }
func (s *PDFSource) NumPages() int { return s.reader.NumPage() }

// Creator returns the Creator entry of the document info dictionary.
func (s *PDFSource) Creator() string {
	return s.reader.Trailer().Key("Info").Key("Creator").Text()
}

// PageText returns the page text with one line per text row.
func (s *PDFSource) PageText(page int) (text string, err error) {
	defer func() {
		// the pdf reader panics on malformed content streams
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", page, r)
		}
	}()

	p := s.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("page %d: %w", page, err)
	}

	var sb strings.Builder
	for _, row := range rows {
		for _, word := range row.Content {
			sb.WriteString(word.S)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
