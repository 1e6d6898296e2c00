package invindex

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeCreatesSingletonLists(t *testing.T) {
	assert := require.New(t)
	idx := New(newTestLogger())

	idx.Merge(map[string]*Occurrence{
		"tree": {Document: "doc1.txt", Frequency: 3},
		"cat":  {Document: "doc1.txt", Frequency: 1},
	})

	assert.Equal(2, idx.KeywordCount())
	assert.Equal(PostingList{{Document: "doc1.txt", Frequency: 3}}, idx.Lookup("tree"))
	assert.Equal(PostingList{{Document: "doc1.txt", Frequency: 1}}, idx.Lookup("cat"))
	assert.Nil(idx.Lookup("dog"))
}

func TestMergeKeepsPostingListsSorted(t *testing.T) {
	assert := require.New(t)
	idx := New(newTestLogger())

	frequencies := map[string]int{
		"doc1.txt": 2,
		"doc2.txt": 5,
		"doc3.txt": 3,
		"doc4.txt": 5,
		"doc5.txt": 1,
	}
	for _, document := range []string{"doc1.txt", "doc2.txt", "doc3.txt", "doc4.txt", "doc5.txt"} {
		idx.Merge(map[string]*Occurrence{
			"tree": {Document: document, Frequency: frequencies[document]},
		})
	}

	list := idx.Lookup("tree")
	assert.Len(list, 5)
	assertNonIncreasing(assert, list)

	// The earlier document with frequency 5 stays ahead of the later one.
	assert.Equal([]string{"doc2.txt", "doc4.txt", "doc3.txt", "doc1.txt", "doc5.txt"}, documentsOf(list))
}

func TestConcurrentQueriesDuringMerges(t *testing.T) {
	assert := require.New(t)
	idx := New(newTestLogger())

	done := make(chan struct{})
	var wg sync.WaitGroup

	// One writer plays the build goroutine; readers query throughout,
	// as search requests may arrive while a build is running.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < 500; i++ {
			document := fmt.Sprintf("doc%d.txt", i)
			idx.Merge(map[string]*Occurrence{
				"tree": {Document: document, Frequency: i%7 + 1},
				"cat":  {Document: document, Frequency: i%3 + 1},
			})
		}
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				idx.TopFive("tree", "cat")
				idx.Lookup("tree")
				idx.KeywordCount()
			}
		}()
	}

	wg.Wait()

	assert.Equal(2, idx.KeywordCount())
	assertNonIncreasing(assert, idx.Lookup("tree"))
	assert.Len(idx.TopFive("tree", "cat"), MaxResults)
}

func TestMergeAcrossManyDocuments(t *testing.T) {
	assert := require.New(t)
	idx := New(newTestLogger())

	documents := []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt", "f.txt", "g.txt", "h.txt"}
	for i, document := range documents {
		idx.Merge(map[string]*Occurrence{
			"alpha": {Document: document, Frequency: (i * 7 % 5) + 1},
			"beta":  {Document: document, Frequency: (i * 3 % 4) + 1},
		})
	}

	for _, keyword := range []string{"alpha", "beta"} {
		list := idx.Lookup(keyword)
		assert.Len(list, len(documents))
		assertNonIncreasing(assert, list)
	}
}
