package invindex

import "slices"

// MaxResults caps the number of documents a two-keyword query returns.
const MaxResults = 5

// TopFive answers an OR query over two keywords with up to five document
// identifiers ranked by descending frequency. Ties favor the first
// keyword. A document appearing under both keywords is returned once, at
// the rank where the merge first visits it. The result is nil when
// neither keyword is indexed.
func (idx *Index) TopFive(first, second string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	firstList := idx.keywords[first]
	secondList := idx.keywords[second]

	if firstList == nil && secondList == nil {
		return nil
	}
	if secondList == nil {
		return appendDocuments(nil, firstList)
	}
	if firstList == nil {
		return appendDocuments(nil, secondList)
	}

	results := make([]string, 0, MaxResults)
	j, k := 0, 0
	for j < len(firstList) && k < len(secondList) && len(results) < MaxResults {
		if firstList[j].Frequency >= secondList[k].Frequency {
			if !slices.Contains(results, firstList[j].Document) {
				results = append(results, firstList[j].Document)
			}
			j++
		} else {
			if !slices.Contains(results, secondList[k].Document) {
				results = append(results, secondList[k].Document)
			}
			k++
		}
	}

	if j < len(firstList) {
		results = appendDocuments(results, firstList[j:])
	} else if k < len(secondList) {
		results = appendDocuments(results, secondList[k:])
	}

	return results
}

// appendDocuments drains occurrences into results in list order, skipping
// documents already present, until the result cap is reached.
func appendDocuments(results []string, occs PostingList) []string {
	if results == nil {
		results = make([]string, 0, MaxResults)
	}
	for _, occ := range occs {
		if len(results) == MaxResults {
			break
		}
		if slices.Contains(results, occ.Document) {
			continue
		}
		results = append(results, occ.Document)
	}
	return results
}
