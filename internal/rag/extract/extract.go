package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cwsplatform/ecom-assist/internal/domain/commonModels"
	"github.com/cwsplatform/ecom-assist/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

var logger = logger_i.NewLogger("Extract")

// DetectFormat maps a filename extension to a supported document format.
func DetectFormat(filename string) commonModels.DocFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return commonModels.PDF
	case ".docx":
		return commonModels.DOCX
	case ".pptx":
		return commonModels.PPTX
	case ".md":
		return commonModels.MD
	case ".txt":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

// ExtractFile pulls the plain text out of an uploaded file. Page-level parse
// failures inside a PDF are skipped; a file that yields no text at all is the
// caller's problem to reject.
func ExtractFile(path string, format commonModels.DocFormat) (string, error) {
	switch format {
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.DOCX:
		return extractDOCX(path)
	case commonModels.PPTX:
		return extractPPTX(path)
	case commonModels.MD, commonModels.TXT:
		return extractPlain(path)
	default:
		return "", fmt.Errorf("unsupported content type: %s", format)
	}
}

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var text strings.Builder
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Keep going with the other pages
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}
	return text.String(), nil
}

// extractDOCX also covers the odt/rtf family; table-cell text lives in the
// same document part as paragraphs, so it comes along for free.
func extractDOCX(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		return "", fmt.Errorf("failed to extract docx: %w", err)
	}
	return text, nil
}

func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8")
	}
	return string(data), nil
}

// protectExtract guards against pdf pages that hang the parser.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}
