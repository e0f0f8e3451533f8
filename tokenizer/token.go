package tokenizer

import (
	"encoding/json"
	"fmt"
)

type TokenKind int

const (
	TokenKindUnknown TokenKind = iota

	TokenKindIdentifier
	TokenKindValue
	TokenKindKey
	TokenKindOperator

	TokenKindCondition
	TokenKindEndCondition
	TokenKindGroup
	TokenKindEndGroup

	TokenKindCombinator
)

func (k TokenKind) String() string {
	switch k {
	case TokenKindUnknown:
		return "UNKNOWN"
	case TokenKindIdentifier:
		return "IDENTIFIER"
	case TokenKindValue:
		return "VALUE"
	case TokenKindKey:
		return "KEY"
	case TokenKindOperator:
		return "OPERATOR"
	case TokenKindCondition:
		return "CONDITION"
	case TokenKindEndCondition:
		return "ENDCONDITION"
	case TokenKindGroup:
		return "GROUP"
	case TokenKindEndGroup:
		return "ENDGROUP"
	case TokenKindCombinator:
		return "COMBINATOR"
	}
	return fmt.Sprintf("!! INVALID TOKEN KIND %d !!", k)
}

func (k TokenKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Token is one element of the flat token stream. The value is never inspected by the tokenizer, it's passed on to the
// consumer of the stream as it is.
type Token struct {
	Kind  TokenKind `json:"type"`
	Value any       `json:"value"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%v)", t.Kind.String(), t.Value)
}

func identifierToken(value any) Token {
	return Token{Kind: TokenKindIdentifier, Value: value}
}

func valueToken(value any) Token {
	return Token{Kind: TokenKindValue, Value: value}
}

func keyToken(key string) Token {
	return Token{Kind: TokenKindKey, Value: key}
}

func operatorToken(operator string) Token {
	return Token{Kind: TokenKindOperator, Value: operator}
}

func conditionToken(condition string) Token {
	return Token{Kind: TokenKindCondition, Value: condition}
}

func endConditionToken(condition string) Token {
	return Token{Kind: TokenKindEndCondition, Value: condition}
}

func groupToken(index int) Token {
	return Token{Kind: TokenKindGroup, Value: index}
}

func endGroupToken(index int) Token {
	return Token{Kind: TokenKindEndGroup, Value: index}
}

func combinatorToken(combinator string) Token {
	return Token{Kind: TokenKindCombinator, Value: combinator}
}
