package importer

import "context"

// DocxImporter extracts chapters from a .docx manuscript file.
//
// Parsing is not wired up yet; it returns an empty sequence so callers
// degrade gracefully. TODO: unzip the document and split chapters on
// Heading 1/2 paragraphs in word/document.xml.
type DocxImporter struct{}

// Name implements Importer.
func (DocxImporter) Name() string { return ".docx file" }

// Import implements Importer. Currently a stub returning no chapters.
func (DocxImporter) Import(ctx context.Context, source string) ([]Record, error) {
	return nil, nil
}
