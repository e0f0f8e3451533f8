package web

import (
	"bytes"
	"crittok/criteria"
	ownIo "crittok/io"
	"crittok/tokenizer"
	"encoding/json"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"io"
	"net/http"
	"strings"
)

const (
	maxLengthOfPrintedCriteria = 10000
	DefaultMaxBodyBytes        = 1 << 20
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details error  `json:"details"`
}

func NewErrorResponse(message string, err error) ErrorResponse {
	return ErrorResponse{
		Error:   message,
		Details: err,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Options struct {
	Tokenizer tokenizer.Options
	CacheSize int
	// MaxBodyBytes limits the size of request bodies. Zero or a negative value uses DefaultMaxBodyBytes.
	MaxBodyBytes int64
	Version      string
}

func StartServer(port string, options Options) {
	r := initRouter(options)
	sigolo.Infof("Start server without TLS support on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func StartServerTls(port string, certFile string, keyFile string, options Options) {
	r := initRouter(options)
	sigolo.Infof("Start server with TLS support on port %s", port)
	err := http.ListenAndServeTLS(":"+port, certFile, keyFile, r)
	sigolo.FatalCheck(err)
}

func initRouter(options Options) *mux.Router {
	cache := newTokenCache(options.CacheSize)
	sigolo.Debugf("Initialized token cache with size %d", options.CacheSize)

	r := mux.NewRouter()
	r.HandleFunc("/tokenize", func(writer http.ResponseWriter, request *http.Request) {
		handleTokenize(writer, request, options.Tokenizer, maxBodyBytes(options), cache)
	}).Methods(http.MethodPost)
	r.HandleFunc("/identifiers", func(writer http.ResponseWriter, request *http.Request) {
		writeJson(writer, http.StatusOK, tokenizer.Identifiers())
	}).Methods(http.MethodGet)
	r.HandleFunc("/health", func(writer http.ResponseWriter, request *http.Request) {
		writeJson(writer, http.StatusOK, HealthResponse{Status: "ok", Version: options.Version})
	}).Methods(http.MethodGet)

	return r
}

func maxBodyBytes(options Options) int64 {
	if options.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}
	return options.MaxBodyBytes
}

func handleTokenize(writer http.ResponseWriter, request *http.Request, tokenizerOptions tokenizer.Options, maxBodyBytes int64, cache *tokenCache) {
	requestId := uuid.NewV4().String()
	writer.Header().Set("Access-Control-Allow-Origin", "*")
	writer.Header().Set("Content-Type", "application/json")
	writer.Header().Set("X-Request-Id", requestId)

	criteriaBytes, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		sigolo.Errorf("[%s] HTTP body of request to '/tokenize' exceeds %d bytes", requestId, maxBytesErr.Limit)
		writeErrorResponse(writer, http.StatusRequestEntityTooLarge, fmt.Sprintf("HTTP body exceeds %d bytes.", maxBytesErr.Limit), nil)
		return
	} else if err != nil {
		sigolo.Errorf("[%s] Error reading HTTP body of request to '/tokenize': %+v", requestId, err)
		writeErrorResponse(writer, http.StatusInternalServerError, "Error reading HTTP body.", nil)
		return
	}

	sigolo.Infof("[%s] Criteria:\n%s", requestId, truncateForLog(criteriaBytes))

	expression, err := criteria.Parse(bytes.NewReader(criteriaBytes))
	if err != nil {
		sigolo.Errorf("[%s] Error parsing criteria: %+v", requestId, err)
		writeErrorResponse(writer, http.StatusBadRequest, fmt.Sprintf("Error parsing criteria: %s", err.Error()), nil)
		return
	}

	if request.URL.Query().Get("strict") == "true" {
		tokenizerOptions.Strict = true
	}

	cacheKey, err := canonicalCacheKey(expression, tokenizerOptions)
	if err != nil {
		sigolo.Errorf("[%s] Error creating cache key: %+v", requestId, err)
		writeErrorResponse(writer, http.StatusInternalServerError, "Error creating cache key.", nil)
		return
	}

	tokens, cacheHit := cache.get(cacheKey)
	if cacheHit {
		writer.Header().Set("X-Cache", "hit")
	} else {
		writer.Header().Set("X-Cache", "miss")

		tokens, err = tokenizer.New(tokenizerOptions).Tokenize(expression)
		if err != nil {
			sigolo.Errorf("[%s] Error tokenizing criteria: %+v", requestId, err)
			writeErrorResponse(writer, http.StatusBadRequest, fmt.Sprintf("Error tokenizing criteria: %s", err.Error()), err)
			return
		}

		cache.insert(cacheKey, tokens)
	}

	sigolo.Debugf("[%s] Found %d token (cache hit: %t)", requestId, len(tokens), cacheHit)

	err = ownIo.WriteTokensAsJson(tokens, writer)
	if err != nil {
		sigolo.Errorf("[%s] Error writing tokens: %+v", requestId, err)
	}
}

// truncateForLog only converts the first bytes of the body. A multibyte character cut at the end is dropped.
func truncateForLog(body []byte) string {
	if len(body) <= maxLengthOfPrintedCriteria {
		return string(body)
	}
	return strings.ToValidUTF8(string(body[:maxLengthOfPrintedCriteria]), "") + "... [truncated]"
}

// canonicalCacheKey creates a key that's equal for documents only differing in whitespace. The key order is kept,
// since it changes the resulting tokens.
func canonicalCacheKey(expression any, options tokenizer.Options) (string, error) {
	canonicalBytes, err := json.Marshal(expression)
	if err != nil {
		return "", errors.Wrap(err, "Unable to marshal criteria document")
	}
	return fmt.Sprintf("%t:%d:%s", options.Strict, options.MaxDepth, canonicalBytes), nil
}

func writeErrorResponse(writer http.ResponseWriter, status int, message string, err error) {
	writeJson(writer, status, NewErrorResponse(message, err))
}

func writeJson(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")

	responseBytes, err := json.Marshal(value)
	if err != nil {
		sigolo.Errorf("Error marshalling response object: %+v", err)
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}

	writer.WriteHeader(status)
	_, err = writer.Write(responseBytes)
	if err != nil {
		sigolo.Errorf("Error writing response: %+v", err)
	}
}
