package importer

import "context"

// GoogleDocImporter extracts chapters from a Google Doc URL.
//
// Fetching requires Google API credentials and an OAuth flow that are
// not set up; it returns an empty sequence so callers degrade
// gracefully.
type GoogleDocImporter struct{}

// Name implements Importer.
func (GoogleDocImporter) Name() string { return "Google Doc URL" }

// Import implements Importer. Currently a stub returning no chapters.
func (GoogleDocImporter) Import(ctx context.Context, source string) ([]Record, error) {
	return nil, nil
}
