package index

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/meghashyamc/littlesearch/db/invindex"
	"github.com/meghashyamc/littlesearch/logger"
)

// Tokens longer than this are rejected by the scanner rather than read
// into memory; no real word comes close.
const maxTokenSize = 1024 * 1024

// Scanner reads documents and produces per-document keyword frequency
// maps ready to be merged into the index.
type Scanner struct {
	logger    logger.Logger
	tokenizer *Tokenizer
}

func NewScanner(logger logger.Logger, tokenizer *Tokenizer) *Scanner {
	return &Scanner{
		logger:    logger,
		tokenizer: tokenizer,
	}
}

// ExtractKeywordMap scans one document and maps each keyword it contains
// to a single occurrence, with repeats within the document aggregated
// into that occurrence's frequency.
func (s *Scanner) ExtractKeywordMap(documentPath string) (map[string]*invindex.Occurrence, error) {
	file, err := os.Open(documentPath)
	if err != nil {
		return nil, fmt.Errorf("document not found: %s: %w", documentPath, err)
	}
	defer file.Close()

	keywords := make(map[string]*invindex.Occurrence)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		keyword := s.tokenizer.ExtractKeyword(scanner.Text())
		if keyword == "" {
			continue
		}
		if occ, ok := keywords[keyword]; ok {
			occ.Frequency++
			continue
		}
		keywords[keyword] = &invindex.Occurrence{Document: documentPath, Frequency: 1}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan document %s: %w", documentPath, err)
	}

	return keywords, nil
}

// readManifest returns the document paths listed in a corpus manifest,
// one path per line. Blank lines are skipped.
func readManifest(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("manifest not found: %s: %w", manifestPath, err)
	}
	defer file.Close()

	var documents []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		documents = append(documents, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}

	return documents, nil
}
