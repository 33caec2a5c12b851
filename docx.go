package main

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	log "github.com/rs/zerolog/log"
)

const (
	docxMarkerEmpty  = "[No text found in DOCX document]"
	docMarkerNoText  = "[Legacy .doc extraction is best-effort - no readable text recovered]"
	minDocRunLength  = 4
	maxDocScanOutput = 1 << 20 // cap recovered strings at 1 MiB
)

// extractDocx reads word/document.xml out of the .docx ZIP archive and
// flattens paragraph text. Headings are not distinguished; the report only
// needs raw text.
func (e *Extractor) extractDocx(path, rel string) Outcome {
	r, err := zip.OpenReader(path)
	if err != nil {
		log.Debug().Err(err).Str("file", rel).Msg("docx open failed")
		return marker(fmt.Sprintf("[DOCX extraction failed for %s - content omitted]", rel))
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return marker(fmt.Sprintf("[DOCX extraction failed for %s - word/document.xml missing]", rel))
	}

	rc, err := docFile.Open()
	if err != nil {
		return marker(fmt.Sprintf("[DOCX extraction failed for %s - content omitted]", rel))
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return marker(fmt.Sprintf("[DOCX extraction failed for %s - content omitted]", rel))
	}
	if len(paragraphs) == 0 {
		return marker(docxMarkerEmpty)
	}
	return Outcome{Content: strings.Join(paragraphs, "\n")}
}

// docxParagraphs streams the document XML and returns one string per <w:p>
// paragraph containing text.
func docxParagraphs(rc io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var current strings.Builder
	inParagraph := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "tab":
				if inParagraph {
					current.WriteByte('\t')
				}
			case "br":
				if inParagraph {
					current.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inParagraph {
				current.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		}
	}
	return paragraphs, nil
}

// extractDoc is the legacy Word 97 path. There is no reliable pure-Go parser
// for the OLE binary format, so this scans for printable character runs the
// way forensic strings tools do. Output quality is materially lower than the
// .docx path and the marker says so when nothing usable comes out.
func (e *Extractor) extractDoc(path, rel string) Outcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return marker(fmt.Sprintf("[Error reading file %s - content omitted: %v]", rel, err))
	}

	runs := printableRuns(data, minDocRunLength)
	if len(runs) == 0 {
		return marker(docMarkerNoText)
	}
	text := strings.Join(runs, "\n")
	if len(text) > maxDocScanOutput {
		text = text[:maxDocScanOutput]
	}
	header := "[Legacy .doc file - best-effort text recovery, formatting lost]"
	return Outcome{Content: header + "\n" + text}
}

// printableRuns returns maximal runs of printable characters of at least
// minLen from raw bytes. Both single-byte and the UTF-16LE runs common in
// Word binaries are picked up; the UTF-16 case shows as letters separated by
// NULs, so NUL bytes inside a run are tolerated as joiners.
func printableRuns(data []byte, minLen int) []string {
	var runs []string
	var current strings.Builder
	flush := func() {
		s := strings.TrimSpace(current.String())
		if len([]rune(s)) >= minLen && hasLetter(s) {
			runs = append(runs, s)
		}
		current.Reset()
	}
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch {
		case b >= 0x20 && b < 0x7f:
			current.WriteByte(b)
		case b == '\t':
			current.WriteByte(' ')
		case b == 0 && i+1 < len(data) && data[i+1] >= 0x20 && data[i+1] < 0x7f:
			// UTF-16LE interleaving: skip the NUL, keep the run going.
		default:
			flush()
		}
	}
	flush()
	return runs
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
