package invindex

import (
	"slices"
	"sync"

	"github.com/meghashyamc/littlesearch/logger"
)

// Index maps each keyword to its posting list. The index grows
// monotonically: entries are never removed or decremented. Merges come
// from a single build goroutine, but queries may arrive at any time, so
// reads and writes are guarded by mu.
type Index struct {
	logger   logger.Logger
	mu       sync.RWMutex
	keywords map[string]PostingList
}

func New(logger logger.Logger) *Index {
	return &Index{
		logger:   logger,
		keywords: make(map[string]PostingList),
	}
}

// Merge folds one document's keyword frequency map into the index. A
// keyword seen for the first time gets a singleton posting list; for a
// keyword already present, the new occurrence is appended and relocated
// into its sorted position. The caller guarantees each document
// contributes at most one occurrence per keyword.
func (idx *Index) Merge(keywords map[string]*Occurrence) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for keyword, occ := range keywords {
		list, ok := idx.keywords[keyword]
		if !ok {
			idx.keywords[keyword] = PostingList{occ}
			continue
		}
		list = append(list, occ)
		InsertLast(list)
		idx.keywords[keyword] = list
	}
}

// Lookup returns a copy of the posting list for a keyword, nil if the
// keyword is not indexed. Copying keeps the caller's view stable while
// merges rearrange the underlying list.
func (idx *Index) Lookup(keyword string) PostingList {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	list, ok := idx.keywords[keyword]
	if !ok {
		return nil
	}
	return slices.Clone(list)
}

// KeywordCount returns the number of distinct keywords indexed.
func (idx *Index) KeywordCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.keywords)
}
