package knowledge

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Load reads the knowledge-base JSON document and produces its full
// passage set: structured-extraction passages first, then the generic
// flattening. A missing file yields no passages; a malformed document
// is a fatal ingestion error.
func Load(path string) ([]Passage, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open knowledge base: %w", err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, err
	}

	passages := ExtractSections(root)
	passages = append(passages, Flatten(root)...)
	return passages, nil
}

// LoadPDFs reads every PDF in dir and emits one passage per document.
// A missing directory yields no passages; unreadable PDFs are logged
// and skipped rather than failing the whole ingestion.
func LoadPDFs(dir string, logger *log.Logger) []Passage {
	if logger == nil {
		logger = log.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var passages []Passage
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := extractPDFText(path)
		if err != nil {
			logger.Printf("skip pdf %s: %v", entry.Name(), err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		passages = append(passages, Passage{
			Content:  content,
			Category: "documents",
			Source:   SourcePDF,
		})
	}

	return passages
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}
