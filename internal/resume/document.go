package resume

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// document is a loaded resume whose pages can be read concurrently.
type document interface {
	NumPages() int
	PageText(index int) (string, error)
}

type documentLoader func(data []byte) (document, error)

var disableConfigDir sync.Once

type pdfDocument struct {
	reader *pdf.Reader
	pages  int
}

// loadPDF counts pages with pdfcpu in relaxed mode, which tolerates the slightly broken
// files produced by office suites, and reads text with ledongthuc/pdf.
func loadPDF(data []byte) (doc document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("pdf parser panicked: %v", r)
		}
	}()

	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pages, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("invalid pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	return &pdfDocument{reader: reader, pages: pages}, nil
}

func (d *pdfDocument) NumPages() int {
	return d.pages
}

func (d *pdfDocument) PageText(index int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf parser panicked on page %d: %v", index+1, r)
		}
	}()

	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d not found", index+1)
	}
	return page.GetPlainText(nil)
}
