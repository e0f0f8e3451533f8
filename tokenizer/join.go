package tokenizer

import (
	"crittok/criteria"
	"fmt"
	"strings"
)

const (
	joinTableKey  = "TABLE"
	joinPairTable = "TABLE_KEY"
	joinPairCol   = "COLUMN_KEY"
)

// processJoin adds one JOIN identifier (the uppercased keyword, e.g. LEFTOUTERJOIN) per join instruction. Each
// instruction needs a "from" with the joined table and an "on" with the column pairs in one of these forms:
//
//	on: {users: 'id', orders: 'user_id'}               single pair, no combinator
//	on: [{...pair...}, {...pair...}]                   pairs combined with AND
//	on: {or: [{...pair...}, {...pair...}]}             pairs combined with OR
//
// The first entry of a pair is the parent table and column, the second one the child table and column.
func processJoin(stream *Stream, keyword string, value any) error {
	instructions, ok := criteria.AsSequence(value)
	if !ok {
		instructions = criteria.Sequence{value}
	}

	for _, instruction := range instructions {
		stream.push(identifierToken(strings.ToUpper(keyword)))

		record, _ := criteria.AsRecord(instruction)
		from, hasFrom := record.Get("from")
		on, hasOn := record.Get("on")
		if !hasFrom || !hasOn {
			return InvalidJoinInstructions(keyword, "'from' and 'on' are required")
		}

		tokens, err := joinTokens(keyword, from, on)
		if err != nil {
			return err
		}
		stream.push(tokens...)
	}

	return nil
}

func joinTokens(keyword string, from any, on any) ([]Token, error) {
	tokens := []Token{keyToken(joinTableKey), valueToken(from)}

	if pairs, ok := criteria.AsSequence(on); ok {
		pairTokens, err := combinedPairTokens(keyword, "AND", pairs)
		if err != nil {
			return nil, err
		}
		return append(tokens, pairTokens...), nil
	}

	onRecord, ok := criteria.AsRecord(on)
	if !ok {
		return nil, InvalidJoinInstructions(keyword, fmt.Sprintf("'on' must be an object or a list but was %T", on))
	}

	if orValue, hasOr := onRecord.Get("or"); hasOr {
		if pairs, ok := criteria.AsSequence(orValue); ok {
			pairTokens, err := combinedPairTokens(keyword, "OR", pairs)
			if err != nil {
				return nil, err
			}
			return append(tokens, pairTokens...), nil
		}
	}

	pairTokens, err := columnPairTokens(keyword, onRecord)
	if err != nil {
		return nil, err
	}
	return append(tokens, pairTokens...), nil
}

// combinedPairTokens adds the combinator in front of each pair.
func combinedPairTokens(keyword string, combinator string, pairs criteria.Sequence) ([]Token, error) {
	var tokens []Token

	for i, pair := range pairs {
		pairRecord, ok := criteria.AsRecord(pair)
		if !ok {
			return nil, InvalidJoinInstructions(keyword, fmt.Sprintf("column pair %d is not an object", i))
		}

		pairTokens, err := columnPairTokens(keyword, pairRecord)
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, combinatorToken(combinator))
		tokens = append(tokens, pairTokens...)
	}

	return tokens, nil
}

func columnPairTokens(keyword string, pair criteria.Record) ([]Token, error) {
	if pair.Len() != 2 {
		return nil, InvalidJoinInstructions(keyword, fmt.Sprintf("a column pair needs exactly two entries but has %d", pair.Len()))
	}

	parent := pair[0]
	child := pair[1]

	return []Token{
		keyToken(joinPairTable), valueToken(parent.Key),
		keyToken(joinPairCol), valueToken(parent.Value),
		keyToken(joinPairTable), valueToken(child.Key),
		keyToken(joinPairCol), valueToken(child.Value),
	}, nil
}
