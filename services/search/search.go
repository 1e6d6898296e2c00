package search

import (
	"github.com/meghashyamc/littlesearch/db/invindex"
	"github.com/meghashyamc/littlesearch/logger"
	"github.com/meghashyamc/littlesearch/services/index"
)

type Service struct {
	logger    logger.Logger
	index     *invindex.Index
	tokenizer *index.Tokenizer
}

func New(logger logger.Logger, idx *invindex.Index, tokenizer *index.Tokenizer) *Service {
	return &Service{
		logger:    logger,
		index:     idx,
		tokenizer: tokenizer,
	}
}

// Query answers an OR search over two keywords with up to five document
// identifiers ranked by descending frequency. Query terms go through the
// same normalization as indexing, so casing and trailing punctuation do
// not matter and a noise word behaves like an unindexed keyword. The
// second return value is false when neither keyword is indexed.
func (s *Service) Query(first string, second string) ([]string, bool) {
	kw1 := s.tokenizer.ExtractKeyword(first)
	kw2 := s.tokenizer.ExtractKeyword(second)

	results := s.index.TopFive(kw1, kw2)
	if results == nil {
		s.logger.Info("no results for query", "first", first, "second", second)
		return nil, false
	}

	return results, true
}
