package io

import (
	"bytes"
	"crittok/criteria"
	"crittok/tokenizer"
	"crittok/util"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCriteriaFile(t *testing.T) {
	// Arrange
	filename := filepath.Join(t.TempDir(), "criteria.json")
	err := os.WriteFile(filename, []byte(`{"select": "*", "from": "users"}`), 0644)
	util.AssertNil(t, err)

	// Act
	expression, err := ReadCriteriaFile(filename)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, criteria.NewRecord(criteria.F("select", "*"), criteria.F("from", "users")), expression)
}

func TestReadCriteriaFile_notExisting(t *testing.T) {
	// Act
	expression, err := ReadCriteriaFile(filepath.Join(t.TempDir(), "missing.json"))

	// Assert
	util.AssertNil(t, expression)
	util.AssertErrorContains(t, "Unable to open criteria file", err)
}

func TestReadCriteria_invalidDocument(t *testing.T) {
	// Act
	_, err := ReadCriteria(strings.NewReader(`{"select": `), "test")

	// Assert
	util.AssertErrorContains(t, "Unable to parse criteria document test", err)
}

func TestWriteTokensAsJson(t *testing.T) {
	// Arrange
	tokens, err := tokenizer.Tokenize(criteria.NewRecord(criteria.F("limit", 5)))
	util.AssertNil(t, err)
	buffer := &bytes.Buffer{}

	// Act
	err = WriteTokensAsJson(tokens, buffer)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, `[{"type":"IDENTIFIER","value":"LIMIT"},{"type":"VALUE","value":5}]`, buffer.String())
}

func TestWriteTokensAsTable(t *testing.T) {
	// Arrange
	expression, err := criteria.ParseString(`{"where": {"or": [{"a": 1}]}}`)
	util.AssertNil(t, err)
	tokens, err := tokenizer.Tokenize(expression)
	util.AssertNil(t, err)
	buffer := &bytes.Buffer{}

	// Act
	err = WriteTokensAsTable(tokens, buffer, false)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, ""+
		"   0  IDENTIFIER   WHERE\n"+
		"   1  CONDITION    OR\n"+
		"   2    GROUP        0\n"+
		"   3      KEY          a\n"+
		"   4      VALUE        1\n"+
		"   5    ENDGROUP     0\n"+
		"   6  ENDCONDITION OR\n", buffer.String())
}
