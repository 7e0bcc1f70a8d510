package util

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractPDFText pulls the text layer out of a PDF resume, page by page.
func ExtractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
			continue
		}

		pageText = strings.TrimSpace(pageText)
		if len(pageText) > 0 {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())

	if len(result) == 0 {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text: %w", lastErr)
		}
		return "", fmt.Errorf("no text extracted from PDF (PDF might be empty or scanned)")
	} else if len(result) < 100 {
		return "", fmt.Errorf("content too short for meaningful matching")
	}

	return result, nil
}
