package main

import "fmt"

// Document is a Markdown file and the deduplication key found in its front matter
type Document struct {
	Path      string
	SourceURL string
	HasKey    bool
}

// KnownURLs is the set of keys already present in the target tree
type KnownURLs map[string]struct{}

// Add records a key
func (k KnownURLs) Add(url string) {
	k[url] = struct{}{}
}

// Contains reports whether the key is present. Comparison is exact.
func (k KnownURLs) Contains(url string) bool {
	_, ok := k[url]
	return ok
}

// SyncStatus represents the outcome of evaluating one source file
type SyncStatus string

const (
	StatusCopied       SyncStatus = "copied"
	StatusWouldCopy    SyncStatus = "would_copy"
	StatusSkippedKnown SyncStatus = "skipped_known"
	StatusSkippedNoKey SyncStatus = "skipped_no_key"
)

// SyncResult tracks what happened to each source file
type SyncResult struct {
	Source      string
	Destination string
	SourceURL   string
	Status      SyncStatus
}

// FieldTypeError reports a front matter key whose value is not a string
type FieldTypeError struct {
	Field string
	Tag   string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("front matter field %q must be a string, got %s", e.Field, e.Tag)
}
