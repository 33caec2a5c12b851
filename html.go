package main

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// extractHTML converts a local HTML file to Markdown so the report carries
// readable text instead of markup. The document title, when present, is
// prepended as a heading. Conversion failures fall back to the raw file text
// rather than dropping the file.
func (e *Extractor) extractHTML(path, rel string) Outcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return marker(fmt.Sprintf("[Error reading file %s - content omitted: %v]", rel, err))
	}
	raw := string(data)

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(raw)
	if err != nil {
		// Keep the raw markup; still more useful than a marker.
		return Outcome{Content: raw}
	}

	title := htmlTitle(raw)
	if title != "" && !strings.HasPrefix(markdown, "# ") {
		markdown = "# " + title + "\n\n" + markdown
	}
	return Outcome{Content: markdown}
}

func htmlTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
