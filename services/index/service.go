package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/meghashyamc/littlesearch/db/invindex"
	"github.com/meghashyamc/littlesearch/db/kvdb"
	"github.com/meghashyamc/littlesearch/logger"
)

const (
	ProgressStatusStarted  = 0
	ProgressStatusScanning = 10
	ProgressStatusComplete = 100
	ProgressStatusFailed   = -1
)

type Service struct {
	logger        logger.Logger
	index         *invindex.Index
	scanner       *Scanner
	metadataStore MetadataStore
	buildIndexC   chan indexRequest
}

type indexRequest struct {
	manifestPath string
	requestID    string
}

func New(ctx context.Context, logger logger.Logger, index *invindex.Index, scanner *Scanner, metadataStore MetadataStore) *Service {
	indexService := &Service{
		logger:        logger,
		index:         index,
		scanner:       scanner,
		metadataStore: metadataStore,
		buildIndexC:   make(chan indexRequest),
	}

	go indexService.build(ctx)
	return indexService
}

// Build accepts a request to index the documents listed in a corpus
// manifest. The build itself runs on the service's single build
// goroutine; index mutation is never concurrent.
func (s *Service) Build(manifestPath string, requestID string) error {

	s.setRequestStatus(requestID, ProgressStatusStarted)

	select {
	// This leads to s.buildIndex being called
	case s.buildIndexC <- indexRequest{manifestPath: manifestPath, requestID: requestID}:
		return nil
	default:
		// A rejected request must not linger in the store with
		// progress 0.
		s.deleteRequestStatus(requestID)
		s.logger.Warn("request to index while indexing is already in progress")
		return errors.New("indexing already in progress")
	}
}

// GetStatus retrieves the progress status for index creation
func (s *Service) GetStatus(requestID string) (int, error) {
	value, err := s.metadataStore.Get(kvdb.RequestsBucket, requestID)
	if err != nil {
		return 0, fmt.Errorf("request not found: %w", err)
	}

	status, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid status value: %w", err)
	}

	return status, nil
}

func (s *Service) build(ctx context.Context) {

	for {
		select {
		case req := <-s.buildIndexC:
			s.buildIndex(req.manifestPath, req.requestID)
		case <-ctx.Done():
			s.logger.Info("index service stopped", "reason", ctx.Err())
			return
		}
	}
}

func (s *Service) buildIndex(manifestPath string, requestID string) {
	documents, err := readManifest(manifestPath)
	if err != nil {
		s.logger.Error("failed to create index", "request_id", requestID, "err", err.Error())
		s.setRequestStatus(requestID, ProgressStatusFailed)
		return
	}

	s.setRequestStatus(requestID, ProgressStatusScanning)
	s.logger.Info("building index of documents...", "documents", len(documents))

	indexTime := time.Now().UTC()
	merged := 0
	for i, documentPath := range documents {
		if s.isAlreadyIndexed(documentPath) {
			s.logger.Debug("skipping already indexed document", "path", documentPath)
			continue
		}

		keywords, err := s.scanner.ExtractKeywordMap(documentPath)
		if err != nil {
			s.logger.Error("failed to create index", "request_id", requestID, "path", documentPath, "err", err.Error())
			s.setRequestStatus(requestID, ProgressStatusFailed)
			return
		}

		s.index.Merge(keywords)
		s.setDocumentMetadata(documentPath, kvdb.DocumentMetadata{IndexedAt: indexTime})
		merged++

		status := getProgressPercentage(i+1, len(documents), ProgressStatusScanning, ProgressStatusComplete)
		s.setRequestStatus(requestID, status)
	}

	s.setRequestStatus(requestID, ProgressStatusComplete)
	s.logger.Info("finished building index", "documents", len(documents), "merged", merged, "keywords", s.index.KeywordCount())
}

func (s *Service) isAlreadyIndexed(documentPath string) bool {
	value, err := s.metadataStore.Get(kvdb.DocumentsBucket, documentPath)
	if err != nil {
		var notFoundErr *kvdb.NotFoundError
		if !errors.As(err, &notFoundErr) {
			s.logger.Error("failed to get document metadata", "path", documentPath, "err", err.Error())
		}
		return false
	}

	var metadata kvdb.DocumentMetadata
	if err := json.Unmarshal([]byte(value), &metadata); err != nil {
		s.logger.Error("failed to unmarshal document metadata", "path", documentPath, "err", err.Error())
		return false
	}

	// Merging the same document twice would double-count its
	// occurrences; the index only ever grows.
	return true
}

func (s *Service) setDocumentMetadata(documentPath string, metadata kvdb.DocumentMetadata) {
	data, err := json.Marshal(metadata)
	if err != nil {
		s.logger.Error("failed to marshal document metadata", "path", documentPath, "err", err.Error())
		return
	}

	if err := s.metadataStore.Set(kvdb.DocumentsBucket, documentPath, string(data)); err != nil {
		s.logger.Error("failed to set document metadata", "path", documentPath, "err", err.Error())
	}
}

func (s *Service) deleteRequestStatus(requestID string) {
	if err := s.metadataStore.Delete(kvdb.RequestsBucket, requestID); err != nil {
		s.logger.Error("failed to delete request status", "request_id", requestID, "err", err.Error())
	}
}

func (s *Service) setRequestStatus(requestID string, status int) {
	if err := s.metadataStore.Set(kvdb.RequestsBucket, requestID, strconv.Itoa(status)); err != nil {
		s.logger.Error("failed to update request status", "request_id", requestID, "status", status, "err", err.Error())
	}
}

func getProgressPercentage(done int, total int, initial int, final int) int {
	if done == 0 || total == 0 {
		return initial
	}

	if done >= total {
		return final
	}

	progress := float64(done) / float64(total)
	result := float64(initial) + progress*float64(final-initial)

	return int(result)
}
