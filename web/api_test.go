package web

import (
	"crittok/tokenizer"
	"crittok/util"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRouterRequest(method string, target string, body string) *http.Request {
	return httptest.NewRequest(method, target, strings.NewReader(body))
}

func TestTokenizeEndpoint(t *testing.T) {
	// Arrange
	router := initRouter(Options{Tokenizer: tokenizer.DefaultOptions(), CacheSize: 10, Version: "test"})
	recorder := httptest.NewRecorder()
	request := newTestRouterRequest(http.MethodPost, "/tokenize", `{"select": "*", "from": "users", "offset": 10}`)

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	util.AssertEqual(t, http.StatusOK, recorder.Code)
	util.AssertEqual(t, "miss", recorder.Header().Get("X-Cache"))
	util.AssertMatch(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, recorder.Header().Get("X-Request-Id"))
	util.AssertEqual(t, `[{"type":"IDENTIFIER","value":"SELECT"},{"type":"VALUE","value":"*"},{"type":"IDENTIFIER","value":"FROM"},{"type":"VALUE","value":"users"},{"type":"IDENTIFIER","value":"OFFSET"},{"type":"VALUE","value":10}]`, recorder.Body.String())
}

func TestTokenizeEndpoint_cacheHitIgnoresWhitespace(t *testing.T) {
	// Arrange
	router := initRouter(Options{Tokenizer: tokenizer.DefaultOptions(), CacheSize: 10})
	firstRecorder := httptest.NewRecorder()
	secondRecorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(firstRecorder, newTestRouterRequest(http.MethodPost, "/tokenize", `{"where": {"a": 1}}`))
	router.ServeHTTP(secondRecorder, newTestRouterRequest(http.MethodPost, "/tokenize", "{ \"where\" :\n {\"a\":1} }"))

	// Assert
	util.AssertEqual(t, "miss", firstRecorder.Header().Get("X-Cache"))
	util.AssertEqual(t, "hit", secondRecorder.Header().Get("X-Cache"))
	util.AssertEqual(t, firstRecorder.Body.String(), secondRecorder.Body.String())
}

func TestTokenizeEndpoint_keyOrderIsPartOfCacheKey(t *testing.T) {
	// Arrange
	router := initRouter(Options{Tokenizer: tokenizer.DefaultOptions(), CacheSize: 10})
	firstRecorder := httptest.NewRecorder()
	secondRecorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(firstRecorder, newTestRouterRequest(http.MethodPost, "/tokenize", `{"limit": 1, "offset": 2}`))
	router.ServeHTTP(secondRecorder, newTestRouterRequest(http.MethodPost, "/tokenize", `{"offset": 2, "limit": 1}`))

	// Assert
	util.AssertEqual(t, "miss", secondRecorder.Header().Get("X-Cache"))
	util.AssertEqual(t, `[{"type":"IDENTIFIER","value":"OFFSET"},{"type":"VALUE","value":2},{"type":"IDENTIFIER","value":"LIMIT"},{"type":"VALUE","value":1}]`, secondRecorder.Body.String())
}

func TestTokenizeEndpoint_invalidJoin(t *testing.T) {
	// Arrange
	router := initRouter(Options{Tokenizer: tokenizer.DefaultOptions(), CacheSize: 10})
	recorder := httptest.NewRecorder()
	request := newTestRouterRequest(http.MethodPost, "/tokenize", `{"select": "*", "from": "users", "join": {"from": "accounts"}}`)

	// Act
	router.ServeHTTP(recorder, request)

	// Assert
	util.AssertEqual(t, http.StatusBadRequest, recorder.Code)
	util.AssertMatch(t, `"error":"Error tokenizing criteria: Invalid join instructions for 'join': 'from' and 'on' are required"`, recorder.Body.String())
	util.AssertMatch(t, `"keyword":"join"`, recorder.Body.String())
}

func TestTokenizeEndpoint_strictParameter(t *testing.T) {
	// Arrange
	router := initRouter(Options{Tokenizer: tokenizer.DefaultOptions(), CacheSize: 10})
	lenientRecorder := httptest.NewRecorder()
	strictRecorder := httptest.NewRecorder()
	body := `{"insert": "foo"}`

	// Act
	router.ServeHTTP(lenientRecorder, newTestRouterRequest(http.MethodPost, "/tokenize", body))
	router.ServeHTTP(strictRecorder, newTestRouterRequest(http.MethodPost, "/tokenize?strict=true", body))

	// Assert
	util.AssertEqual(t, http.StatusOK, lenientRecorder.Code)
	util.AssertEqual(t, `[{"type":"IDENTIFIER","value":"INSERT"}]`, lenientRecorder.Body.String())
	util.AssertEqual(t, http.StatusBadRequest, strictRecorder.Code)
	util.AssertMatch(t, `Invalid 'insert' clause`, strictRecorder.Body.String())
}

func TestTokenizeEndpoint_invalidJson(t *testing.T) {
	// Arrange
	router := initRouter(Options{Tokenizer: tokenizer.DefaultOptions()})
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, newTestRouterRequest(http.MethodPost, "/tokenize", `{"select": `))

	// Assert
	util.AssertEqual(t, http.StatusBadRequest, recorder.Code)
	util.AssertMatch(t, `^\{"error":"Error parsing criteria: .*","details":null\}$`, recorder.Body.String())
}

func TestTokenizeEndpoint_wrongMethod(t *testing.T) {
	// Arrange
	router := initRouter(Options{})
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, newTestRouterRequest(http.MethodGet, "/tokenize", ""))

	// Assert
	util.AssertEqual(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestIdentifiersEndpoint(t *testing.T) {
	// Arrange
	router := initRouter(Options{})
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, newTestRouterRequest(http.MethodGet, "/identifiers", ""))

	// Assert
	util.AssertEqual(t, http.StatusOK, recorder.Code)
	// The JSON encoder escapes "<" as unicode sequence
	util.AssertMatch(t, `^\[\{"keyword":"\\u003c","category":"OPERATOR"\},`, recorder.Body.String())
	util.AssertMatch(t, `\{"keyword":"leftOuterJoin","category":"JOIN"\}`, recorder.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	// Arrange
	router := initRouter(Options{Version: "v1.2.3"})
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, newTestRouterRequest(http.MethodGet, "/health", ""))

	// Assert
	util.AssertEqual(t, http.StatusOK, recorder.Code)
	util.AssertEqual(t, `{"status":"ok","version":"v1.2.3"}`, recorder.Body.String())
}

func TestTokenizeEndpoint_bodyTooLarge(t *testing.T) {
	// Arrange
	router := initRouter(Options{Tokenizer: tokenizer.DefaultOptions(), MaxBodyBytes: 16})
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, newTestRouterRequest(http.MethodPost, "/tokenize", `{"select": "*", "from": "users"}`))

	// Assert
	util.AssertEqual(t, http.StatusRequestEntityTooLarge, recorder.Code)
	util.AssertEqual(t, `{"error":"HTTP body exceeds 16 bytes.","details":null}`, recorder.Body.String())
}

func TestTokenizeEndpoint_deeplyNestedDocument(t *testing.T) {
	// Arrange
	router := initRouter(Options{Tokenizer: tokenizer.DefaultOptions()})
	recorder := httptest.NewRecorder()

	// Act
	router.ServeHTTP(recorder, newTestRouterRequest(http.MethodPost, "/tokenize", strings.Repeat("[", 500000)))

	// Assert
	util.AssertEqual(t, http.StatusBadRequest, recorder.Code)
	util.AssertMatch(t, `^\{"error":"Error parsing criteria: Criteria document nested too deep: Exceeds the maximum depth of 512 at offset \d+","details":null\}$`, recorder.Body.String())
}

func TestTruncateForLog(t *testing.T) {
	// Arrange
	short := []byte(`{"select": "*"}`)
	long := []byte(strings.Repeat("a", maxLengthOfPrintedCriteria-1) + "ä" + "tail")

	// Act & Assert
	util.AssertEqual(t, `{"select": "*"}`, truncateForLog(short))
	util.AssertEqual(t, strings.Repeat("a", maxLengthOfPrintedCriteria-1)+"... [truncated]", truncateForLog(long))
}
