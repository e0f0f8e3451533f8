package tokenizer

import (
	"crittok/criteria"
	"github.com/hauke96/sigolo/v2"
	"math"
)

// processOperator adds the comparison of a field. Multiple operators on the same field (e.g. {age: {'>': 1, '<': 9}})
// each get their own KEY token, because the VALUE of the previous operator is the last token then.
func processOperator(stream *Stream, operator string, value any, parentKey string) {
	if parentKey != "" && !stream.lastKindIs(TokenKindKey) {
		stream.push(keyToken(parentKey))
	}

	stream.push(operatorToken(operator), valueToken(value))
}

func processSelect(stream *Stream, value any) {
	if record, ok := criteria.AsRecord(value); ok {
		distinct, hasDistinct := record.Get("distinct")
		if hasDistinct && isTruthy(distinct) {
			// All other fields of the selection are ignored in this case.
			stream.push(identifierToken(CategoryDistinct.String()), valueToken(distinct))
			return
		}
	}

	stream.push(identifierToken(CategorySelect.String()), valueToken(value))
}

func processFrom(stream *Stream, keyword string, value any, strict bool) error {
	if record, ok := criteria.AsRecord(value); ok {
		schema, hasSchema := record.Get("schema")
		hasSchema = hasSchema && isTruthy(schema)
		if hasSchema {
			stream.push(identifierToken("SCHEMA"), valueToken(schema))
		}

		table, hasTable := record.Get("table")
		hasTable = hasTable && isTruthy(table)
		if hasTable {
			stream.push(identifierToken(CategoryFrom.String()), valueToken(table))
		}

		if !hasSchema && !hasTable {
			return degrade(strict, keyword, "object has neither a 'schema' nor a 'table'")
		}
		return nil
	}

	if _, ok := criteria.AsSequence(value); ok {
		return degrade(strict, keyword, "value is a list")
	}

	stream.push(identifierToken(CategoryFrom.String()), valueToken(value))
	return nil
}

// processKeyValueClause handles INSERT and UPDATE clauses, which consist of column/value pairs.
func processKeyValueClause(stream *Stream, category Category, keyword string, value any, strict bool) error {
	stream.push(identifierToken(category.String()))

	record, ok := criteria.AsRecord(value)
	if !ok {
		return degrade(strict, keyword, "value is not an object of columns and values")
	}

	for _, field := range record {
		stream.push(keyToken(field.Key), valueToken(field.Value))
	}

	return nil
}

func processDelete(stream *Stream) {
	// The value (usually just "true") carries no information.
	stream.push(identifierToken(CategoryDelete.String()))
}

// processIdentifierWithValue adds the simple clauses consisting of one identifier and its value, like LIMIT 10.
func processIdentifierWithValue(stream *Stream, category Category, value any) {
	stream.push(identifierToken(category.String()), valueToken(value))
}

func (w *walker) processOrderBy(stream *Stream, value any, depth int) error {
	stream.push(identifierToken(CategoryOrderBy.String()))

	sequence, ok := criteria.AsSequence(value)
	if !ok {
		sequence = criteria.Sequence{value}
	}

	for _, sorting := range sequence {
		err := w.tokenizeInto(stream, sorting, "", depth+1)
		if err != nil {
			return err
		}
	}

	return nil
}

// degrade is called when a clause has an unexpected shape. In strict mode, this is an error, otherwise the clause
// just produces fewer tokens.
func degrade(strict bool, keyword string, reason string) error {
	if strict {
		return InvalidClause(keyword, reason)
	}
	sigolo.Debugf("Clause '%s' produces incomplete tokens: %s", keyword, reason)
	return nil
}

// isTruthy decides whether an optional sub-value like the "schema" of a FROM clause is set. Empty strings, zero
// numbers, false and nil count as not set.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	}
	return true
}
