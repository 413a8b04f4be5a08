// Package docparse extracts plain text from uploaded documents. It never
// returns an error: unsupported or unreadable input yields a descriptive
// placeholder string, and downstream treats any string as valid document text.
package docparse

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"strings"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDoc  = "application/msword"
	mimeText = "text/plain"
	mimeJSON = "application/json"
)

// ExtractText returns the plain text of data interpreted per the declared
// MIME type. Parameters such as "; charset=utf-8" are ignored.
func ExtractText(data []byte, mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mt
	}
	switch mimeType {
	case mimeText, mimeJSON:
		return string(data)
	case mimeDocx, mimeDoc:
		text, err := extractDocx(data)
		if err != nil || strings.TrimSpace(text) == "" {
			return "Unable to parse Word document content."
		}
		return text
	case mimePDF:
		// PDF extraction is disabled; callers get a fixed placeholder.
		return "PDF content extraction is not available. The document was uploaded but its text could not be extracted."
	default:
		return fmt.Sprintf("Unsupported file type: %s. Text extraction not available.", mimeType)
	}
}

// extractDocx pulls the raw text out of a DOCX archive: word/document.xml is
// XML where w:t elements hold text runs and w:p elements delimit paragraphs.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docparse: no word/document.xml in archive")
	}
	rc, err := doc.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var b strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}
