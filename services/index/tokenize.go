package index

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/meghashyamc/littlesearch/logger"
)

// Characters stripped from the end of a raw token before it is tested
// as a keyword. Nothing else counts as punctuation.
const trailingPunctuation = ".,?:;!"

// Tokenizer turns raw whitespace-separated tokens into normalized
// keywords, filtering out noise words.
type Tokenizer struct {
	logger     logger.Logger
	noiseWords map[string]struct{}
}

func NewTokenizer(logger logger.Logger, noiseWordsPath string) (*Tokenizer, error) {
	noiseWords, err := loadNoiseWords(noiseWordsPath)
	if err != nil {
		logger.Error("failed to load noise words", "path", noiseWordsPath, "err", err.Error())
		return nil, err
	}
	logger.Info("loaded noise words", "path", noiseWordsPath, "count", len(noiseWords))

	return &Tokenizer{logger: logger, noiseWords: noiseWords}, nil
}

// ExtractKeyword normalizes a raw token: trailing punctuation is
// stripped (however many characters, in any combination), then the
// remainder is lowercased. The empty string is returned when the
// remainder is empty, a noise word, or contains any non-alphabetic
// character.
func (t *Tokenizer) ExtractKeyword(word string) string {
	word = strings.TrimRight(word, trailingPunctuation)
	word = strings.ToLower(word)

	if len(word) == 0 {
		return ""
	}
	if _, ok := t.noiseWords[word]; ok {
		return ""
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return ""
		}
	}

	return word
}

func loadNoiseWords(path string) (map[string]struct{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open noise words file %s: %w", path, err)
	}
	defer file.Close()

	noiseWords := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		noiseWords[strings.ToLower(scanner.Text())] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read noise words file %s: %w", path, err)
	}

	return noiseWords, nil
}
