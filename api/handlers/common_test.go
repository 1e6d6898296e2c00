// Common test helpers
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/littlesearch/config"
	"github.com/meghashyamc/littlesearch/db/invindex"
	"github.com/meghashyamc/littlesearch/db/kvdb"
	"github.com/meghashyamc/littlesearch/logger"
	"github.com/meghashyamc/littlesearch/services/index"
	"github.com/meghashyamc/littlesearch/services/search"
	"github.com/meghashyamc/littlesearch/validation"
	"github.com/stretchr/testify/require"
)

var defaultTestRequestHeaders = map[string]string{"Content-Type": "application/json"}

// Document contents are chosen so that per-keyword frequencies (and so
// result ranks) are known: doc1 has tree:3 cat:1, doc2 has cat:2 tree:1,
// doc3 has dog:4.
var testDocuments = map[string]string{
	"doc1.txt": "Tree tree tree! cat",
	"doc2.txt": "cat cat tree.",
	"doc3.txt": "dog dog dog dog",
}

const testNoiseWords = "the\na\nan\nand\nor\nis\n"

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func setupTestServer(t *testing.T, assert *require.Assertions, tempDir string) (*gin.Engine, func()) {

	t.Setenv("ENV", "test")

	tempDir = mustGetAbsolutePath(tempDir)
	err := os.MkdirAll(tempDir, 0755)
	assert.NoError(err, "could not create temporary directory")

	var manifest strings.Builder
	for name, content := range testDocuments {
		documentPath := filepath.Join(tempDir, name)
		err := os.WriteFile(documentPath, []byte(content), 0644)
		assert.NoError(err, "could not write test document")
		fmt.Fprintln(&manifest, documentPath)
	}
	err = os.WriteFile(filepath.Join(tempDir, "docs.txt"), []byte(manifest.String()), 0644)
	assert.NoError(err, "could not write test manifest")

	noiseWordsPath := filepath.Join(tempDir, "noisewords.txt")
	err = os.WriteFile(noiseWordsPath, []byte(testNoiseWords), 0644)
	assert.NoError(err, "could not write noise words file")

	t.Setenv("KVDB_PATH", filepath.Join(tempDir, "littlesearch.db"))
	t.Setenv("NOISE_WORDS_PATH", noiseWordsPath)

	cfg, err := config.Load()
	assert.NoError(err, "could not load config")

	testLogger := newTestLogger()

	kvDB, err := kvdb.New(testLogger, cfg)
	assert.NoError(err, "could not create kv database")

	tokenizer, err := index.NewTokenizer(testLogger, cfg.GetNoiseWordsPath())
	assert.NoError(err, "could not create tokenizer")

	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")

	ctx, cancel := context.WithCancel(context.Background())

	idx := invindex.New(testLogger)
	scanner := index.NewScanner(testLogger, tokenizer)
	indexService := index.New(ctx, testLogger, idx, scanner, kvDB)
	searchService := search.New(testLogger, idx, tokenizer)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupIndex(router, testLogger, indexService, validator)
	SetupSearch(router, testLogger, searchService, validator)

	cleanup := func() {
		cancel()
		var err error
		err = kvDB.Close()
		assert.NoError(err, "could not close kv database")
		err = os.RemoveAll(tempDir)
		assert.NoError(err, "could not remove temporary directory")
	}

	return router, cleanup
}

// buildTestIndex requests an index build over the test corpus and waits
// for it to complete.
func buildTestIndex(router *gin.Engine, assert *require.Assertions, tempDir string) {
	indexRequestBody := map[string]any{
		"manifest_path": filepath.Join(mustGetAbsolutePath(tempDir), "docs.txt"),
	}

	var indexResponse struct {
		Data struct {
			RequestID string `json:"request_id"`
		} `json:"data"`
	}
	// A previous build may still be wrapping up, in which case the
	// request is rejected with a conflict; retry until accepted.
	assert.Eventually(func() bool {
		w := makeTestHTTPRequest(router, assert, http.MethodPost, "/index", defaultTestRequestHeaders, indexRequestBody, nil)
		if w.Code != http.StatusAccepted {
			return false
		}
		return json.Unmarshal(w.Body.Bytes(), &indexResponse) == nil
	}, 10*time.Second, 20*time.Millisecond, "index build request should be accepted")
	assert.NotEmpty(indexResponse.Data.RequestID)

	assert.Eventually(func() bool {
		w := makeTestHTTPRequest(router, assert, http.MethodGet, "/index/status", nil, nil, map[string]string{"request_id": indexResponse.Data.RequestID})
		if w.Code != http.StatusOK {
			return false
		}
		var statusResponse struct {
			Data struct {
				Progress int `json:"progress"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &statusResponse); err != nil {
			return false
		}
		return statusResponse.Data.Progress == 100
	}, 10*time.Second, 20*time.Millisecond, "index build should complete")
}

func makeTestHTTPRequest(router *gin.Engine, assert *require.Assertions, method string, endpoint string, headers map[string]string, requestBodyMap map[string]interface{}, queryParams map[string]string) *httptest.ResponseRecorder {

	var err error
	w := httptest.NewRecorder()

	if len(queryParams) > 0 {
		endpoint = endpoint + "?"
		for key, value := range queryParams {
			if endpoint[len(endpoint)-1] != '?' {
				endpoint = endpoint + "&"
			}
			endpoint = endpoint + key + "=" + value
		}
	}
	var jsonBody []byte
	var req *http.Request
	if requestBodyMap != nil {
		jsonBody, err = json.Marshal(requestBodyMap)
		assert.NoError(err)
	}

	if len(jsonBody) > 0 {
		req, err = http.NewRequest(method, endpoint, bytes.NewBuffer(jsonBody))
	} else {
		req, err = http.NewRequest(method, endpoint, nil)
	}
	assert.NoError(err)

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	router.ServeHTTP(w, req)

	return w
}

func mustGetAbsolutePath(relativePath string) string {
	absPath, err := filepath.Abs(relativePath)
	if err != nil {
		panic(err)
	}
	return absPath
}
