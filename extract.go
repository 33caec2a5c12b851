package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// extractFunc is one format-specific extraction capability. Implementations
// must not return errors; any failure becomes a marker Outcome so a single
// bad file never poisons the report.
type extractFunc func(path, rel string) Outcome

// Extractor dispatches file content extraction by extension. Each registered
// capability owns its internal fallback policy.
type Extractor struct {
	rules    *IgnoreRules
	root     string
	registry map[string]extractFunc

	// maxSize skips content extraction for files above this many bytes.
	// Zero means no limit.
	maxSize int64

	// fetchTranscript is swappable so tests can splice without hitting the
	// network.
	fetchTranscript transcriptFetchFunc
}

func newExtractor(root string, rules *IgnoreRules) *Extractor {
	e := &Extractor{
		rules:           rules,
		root:            root,
		fetchTranscript: fetchVideoTranscript,
	}
	e.registry = map[string]extractFunc{
		".pdf":  e.extractPDF,
		".docx": e.extractDocx,
		".doc":  e.extractDoc,
		".html": e.extractHTML,
		".htm":  e.extractHTML,
	}
	return e
}

// Extract resolves a single file to an Outcome. Every path through here
// terminates in either content or a marker.
func (e *Extractor) Extract(path string) Outcome {
	rel := relativeTo(e.root, path)
	if e.maxSize > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > e.maxSize {
			return marker(fmt.Sprintf("[File %s exceeds the size limit (%d bytes) - content omitted]", rel, info.Size()))
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if fn, ok := e.registry[ext]; ok {
		return fn(path, rel)
	}
	return e.extractPlain(path, rel)
}

// extractPlain reads a file as UTF-8 text. For extensions flagged for
// transcript scanning, embedded video URLs are expanded in place.
func (e *Extractor) extractPlain(path, rel string) Outcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return marker(fmt.Sprintf("[Error reading file %s - content omitted: %v]", rel, err))
	}
	if !utf8.Valid(data) {
		return marker(fmt.Sprintf("[Error reading file %s - content omitted: not valid UTF-8 text]", rel))
	}
	text := string(data)

	ext := strings.ToLower(filepath.Ext(path))
	if e.rules.TranscriptExts[ext] {
		text = spliceTranscripts(text, e.fetchTranscript)
	}
	return Outcome{Content: text}
}

func marker(text string) Outcome {
	return Outcome{Content: text, IsMarker: true}
}
