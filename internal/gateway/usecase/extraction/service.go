// Package extraction orchestrates upload and extraction against the narrow
// storage interfaces. The pipeline core never sees storage; this layer feeds
// it text and persists what comes back.
package extraction

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"stixify/internal/docparse"
	"stixify/internal/gateway/repository/document"
	"stixify/internal/stix"
)

// ObjectStore is the keyed blob store the service persists into.
type ObjectStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// RecordStore persists document records.
type RecordStore interface {
	Put(ctx context.Context, rec document.Record) error
	Get(ctx context.Context, id string) (document.Record, error)
	ListByUser(ctx context.Context, userID string) ([]document.Record, error)
	Delete(ctx context.Context, id string) error
	AttachBundleURL(ctx context.Context, id, bundleURL string) error
}

// BundleExtractor is the pipeline core's public operation.
type BundleExtractor interface {
	ExtractBundle(ctx context.Context, documentText, documentLabel string) stix.Bundle
}

// StatusReporter receives job lifecycle events; the service itself keeps no
// job state.
type StatusReporter interface {
	Begin(documentID string) error
	Done(documentID, bundleURL string, objectCount int)
	Fail(documentID string, err error)
}

type Service struct {
	records   RecordStore
	blobs     ObjectStore
	extractor BundleExtractor
	status    StatusReporter
}

func New(records RecordStore, blobs ObjectStore, extractor BundleExtractor, status StatusReporter) *Service {
	return &Service{records: records, blobs: blobs, extractor: extractor, status: status}
}

// Records exposes the record store for read-side handlers.
func (s *Service) Records() RecordStore { return s.records }

// Upload stores the original file and its extracted text, then creates the
// document record. Text extraction never fails; whatever docparse produced is
// stored as the document's text.
func (s *Service) Upload(ctx context.Context, userID, fileName, fileType string, data []byte) (document.Record, error) {
	if userID == "" || fileName == "" {
		return document.Record{}, fmt.Errorf("extraction: user id and file name are required")
	}

	if _, err := s.blobs.Put(ctx, originalKey(userID, fileName), data, fileType); err != nil {
		return document.Record{}, fmt.Errorf("store original: %w", err)
	}

	text := docparse.ExtractText(data, fileType)
	textURL, err := s.blobs.Put(ctx, textKey(userID, fileName), []byte(text), "text/plain")
	if err != nil {
		return document.Record{}, fmt.Errorf("store text: %w", err)
	}

	rec := document.Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		FileName:  fileName,
		FileType:  fileType,
		FileSize:  int64(len(data)),
		TextURL:   textURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.records.Put(ctx, rec); err != nil {
		return document.Record{}, fmt.Errorf("store record: %w", err)
	}
	log.Printf("extraction: uploaded %s (%d bytes) for user %s as document %s", fileName, len(data), userID, rec.ID)
	return rec, nil
}

// Extract runs the pipeline for a stored document, persists the bundle, and
// attaches its URL to the record. The pipeline itself cannot fail; errors
// here are storage errors. The whole call is one long-latency operation —
// callers apply their own timeout via ctx.
func (s *Service) Extract(ctx context.Context, documentID string) (stix.Bundle, error) {
	rec, err := s.records.Get(ctx, documentID)
	if err != nil {
		return stix.Bundle{}, err
	}
	if err := s.status.Begin(documentID); err != nil {
		return stix.Bundle{}, err
	}

	bundle, url, err := s.run(ctx, rec)
	if err != nil {
		s.status.Fail(documentID, err)
		return stix.Bundle{}, err
	}
	s.status.Done(documentID, url, len(bundle.Objects))
	return bundle, nil
}

func (s *Service) run(ctx context.Context, rec document.Record) (stix.Bundle, string, error) {
	text, err := s.blobs.Get(ctx, textKey(rec.UserID, rec.FileName))
	if err != nil {
		return stix.Bundle{}, "", fmt.Errorf("load text: %w", err)
	}

	start := time.Now()
	bundle := s.extractor.ExtractBundle(ctx, string(text), rec.FileName)
	log.Printf("extraction: document %s yielded %d objects in %s", rec.ID, len(bundle.Objects), time.Since(start).Round(time.Millisecond))

	payload, err := bundle.MarshalIndent()
	if err != nil {
		return stix.Bundle{}, "", fmt.Errorf("serialize bundle: %w", err)
	}
	url, err := s.blobs.Put(ctx, BundleKey(rec.UserID, rec.ID), payload, "application/json")
	if err != nil {
		return stix.Bundle{}, "", fmt.Errorf("store bundle: %w", err)
	}
	if err := s.records.AttachBundleURL(ctx, rec.ID, url); err != nil {
		return stix.Bundle{}, "", fmt.Errorf("attach bundle url: %w", err)
	}
	return bundle, url, nil
}

// Bundle loads a document's persisted STIX bundle bytes.
func (s *Service) Bundle(ctx context.Context, documentID string) ([]byte, error) {
	rec, err := s.records.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if rec.StixBundleURL == "" {
		return nil, document.ErrNotFound
	}
	return s.blobs.Get(ctx, BundleKey(rec.UserID, rec.ID))
}

// BundleKey is the storage key for a document's STIX bundle, scoped by user
// and document identifier.
func BundleKey(userID, documentID string) string {
	return "documents/" + userID + "/stix/" + documentID + ".json"
}

func originalKey(userID, fileName string) string {
	return "documents/" + userID + "/" + fileName
}

func textKey(userID, fileName string) string {
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	return "documents/" + userID + "/text/" + base + ".txt"
}
