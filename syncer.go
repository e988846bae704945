package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

var (
	wouldCopyLabel = color.New(color.FgYellow).SprintFunc()
	copiedLabel    = color.New(color.FgGreen).SprintFunc()
)

// Syncer copies source documents whose key is missing from the target tree
type Syncer struct {
	settings *Settings
	out      io.Writer
	dryRun   bool
}

// NewSyncer creates a syncer that reports actions to out
func NewSyncer(settings *Settings, out io.Writer) *Syncer {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Syncer{
		settings: settings,
		out:      out,
	}
}

// SetDryRun sets the dry run flag
func (s *Syncer) SetDryRun(dryRun bool) {
	s.dryRun = dryRun
}

// CollectKnown builds the set of keys present under target. Files that
// cannot be read or parsed are treated as having no key.
func (s *Syncer) CollectKnown(target string) KnownURLs {
	known := make(KnownURLs)

	for path := range ScanFiles(target, s.settings.ScanOptions()) {
		doc, err := ReadDocument(path, s.settings.KeyField)
		if err != nil {
			debugLog("ignoring target file: %v", err)
			continue
		}
		if doc.HasKey {
			known.Add(doc.SourceURL)
		}
	}

	return known
}

// Sync copies every document under source whose key is not yet present
// under target. It stops at the first error; results gathered so far are
// returned with it.
func (s *Syncer) Sync(source, target string) ([]SyncResult, error) {
	known := s.CollectKnown(target)
	debugLog("found %d known URLs in %s", len(known), target)

	var results []SyncResult
	for path := range ScanFiles(source, s.settings.ScanOptions()) {
		doc, err := ReadDocument(path, s.settings.KeyField)
		if err != nil {
			return results, err
		}

		if !doc.HasKey {
			debugLog("skipping %s: no %s", path, s.settings.KeyField)
			results = append(results, SyncResult{Source: path, Status: StatusSkippedNoKey})
			continue
		}
		if known.Contains(doc.SourceURL) {
			debugLog("skipping %s: %s already in target", path, doc.SourceURL)
			results = append(results, SyncResult{Source: path, SourceURL: doc.SourceURL, Status: StatusSkippedKnown})
			continue
		}

		result, err := s.copyOrReport(doc, source, target)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}

	return results, nil
}

func (s *Syncer) copyOrReport(doc *Document, source, target string) (*SyncResult, error) {
	rel, err := filepath.Rel(source, doc.Path)
	if err != nil {
		return nil, fmt.Errorf("computing path of %s relative to %s: %w", doc.Path, source, err)
	}
	targetPath := filepath.Join(target, rel)

	result := &SyncResult{
		Source:      doc.Path,
		Destination: targetPath,
		SourceURL:   doc.SourceURL,
	}

	if s.dryRun {
		fmt.Fprintf(s.out, "%s %s to %s\n", wouldCopyLabel("Would copy"), doc.Path, targetPath)
		result.Status = StatusWouldCopy
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", targetPath, err)
	}
	if err := copyFile(doc.Path, targetPath); err != nil {
		return nil, fmt.Errorf("failed to copy to %s: %w", targetPath, err)
	}

	fmt.Fprintf(s.out, "%s %s to %s\n", copiedLabel("Copied"), doc.Path, targetPath)
	result.Status = StatusCopied
	return result, nil
}

// copyFile overwrites dst with the contents and permission bits of src
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chmod(dst, info.Mode().Perm())
}

// logSummary writes a one-line run summary to the log
func logSummary(results []SyncResult) {
	counts := make(map[SyncStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}

	log.Printf("Evaluated %d files: %d copied, %d would copy, %d already in target, %d without key",
		len(results), counts[StatusCopied], counts[StatusWouldCopy],
		counts[StatusSkippedKnown], counts[StatusSkippedNoKey])
}
