package invindex

// Occurrence records how many times a keyword appears in one document.
// Frequency is incremented while a single document is being scanned and
// is frozen once the occurrence is merged into the index.
type Occurrence struct {
	Document  string `json:"document"`
	Frequency int    `json:"frequency"`
}

// PostingList holds one Occurrence per document containing a keyword.
// It is kept in non-increasing order of frequency after every merge.
type PostingList []*Occurrence
