package io

import (
	"crittok/tokenizer"
	"encoding/json"
	"fmt"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"io"
	"strings"
)

var kindColors = map[tokenizer.TokenKind]color.Attribute{
	tokenizer.TokenKindIdentifier:   color.FgHiCyan,
	tokenizer.TokenKindKey:          color.FgHiGreen,
	tokenizer.TokenKindValue:        color.FgHiWhite,
	tokenizer.TokenKindOperator:     color.FgHiYellow,
	tokenizer.TokenKindCondition:    color.FgHiMagenta,
	tokenizer.TokenKindEndCondition: color.FgHiMagenta,
	tokenizer.TokenKindGroup:        color.FgHiBlue,
	tokenizer.TokenKindEndGroup:     color.FgHiBlue,
	tokenizer.TokenKindCombinator:   color.FgHiRed,
}

func WriteTokensAsJson(tokens []tokenizer.Token, writer io.Writer) error {
	tokenBytes, err := json.Marshal(tokens)
	if err != nil {
		return errors.Wrap(err, "Unable to marshal tokens to JSON")
	}

	_, err = writer.Write(tokenBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write tokens")
	}

	return nil
}

// WriteTokensAsTable writes one token per line. Tokens within OR conditions and groups are indented so that the
// nesting is visible.
func WriteTokensAsTable(tokens []tokenizer.Token, writer io.Writer, colored bool) error {
	indent := 0

	for i, token := range tokens {
		if token.Kind == tokenizer.TokenKindEndGroup || token.Kind == tokenizer.TokenKindEndCondition {
			indent--
		}

		valueString, err := tokenValueString(token.Value)
		if err != nil {
			return err
		}

		kindColor := color.New(kindColors[token.Kind])
		if colored {
			kindColor.EnableColor()
		} else {
			kindColor.DisableColor()
		}

		_, err = fmt.Fprintf(writer, "%4d  %s%s %s\n", i, strings.Repeat("  ", max(indent, 0)), kindColor.Sprintf("%-12s", token.Kind.String()), valueString)
		if err != nil {
			return errors.Wrapf(err, "Unable to write token %d", i)
		}

		if token.Kind == tokenizer.TokenKindGroup || (token.Kind == tokenizer.TokenKindCondition && token.Value == "OR") {
			indent++
		}
	}

	return nil
}

func tokenValueString(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}

	valueBytes, err := json.Marshal(value)
	if err != nil {
		return "", errors.Wrapf(err, "Unable to format token value %v", value)
	}
	return string(valueBytes), nil
}
