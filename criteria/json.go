package criteria

import (
	"encoding/json"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"io"
	"strconv"
	"strings"
)

// DefaultMaxDepth is the maximum number of nested objects and arrays Parse accepts.
const DefaultMaxDepth = 512

// Parse decodes exactly one JSON document from the given reader. Objects become Records with their keys in document
// order, arrays become Sequences, integral numbers become int64 and all other numbers float64. Documents nested deeper
// than DefaultMaxDepth are rejected.
func Parse(reader io.Reader) (any, error) {
	return ParseWithMaxDepth(reader, DefaultMaxDepth)
}

// ParseWithMaxDepth works like Parse but with a custom nesting limit. Zero or a negative value disables the limit.
//
// A key appearing more than once within the same object keeps the position of its first occurrence and the value of
// its last one.
func ParseWithMaxDepth(reader io.Reader, maxDepth int) (any, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	parser := &documentParser{
		decoder:  decoder,
		maxDepth: maxDepth,
	}

	value, err := parser.parseValue(0)
	if err != nil {
		return nil, err
	}

	token, err := decoder.Token()
	if err != io.EOF {
		if err != nil {
			return nil, errors.Wrap(err, "Unable to read end of criteria document")
		}
		return nil, errors.Errorf("Unexpected data after end of criteria document at offset %d: %v", decoder.InputOffset(), token)
	}

	return value, nil
}

func ParseString(document string) (any, error) {
	return Parse(strings.NewReader(document))
}

type documentParser struct {
	decoder  *json.Decoder
	maxDepth int
	depthErr error // Set once the maximum depth is exceeded, it's passed up unwrapped.
}

func (p *documentParser) parseValue(depth int) (any, error) {
	decoder := p.decoder
	token, err := decoder.Token()
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read JSON token at offset %d", decoder.InputOffset())
	}

	switch t := token.(type) {
	case json.Delim:
		if (t == '{' || t == '[') && p.maxDepth > 0 && depth >= p.maxDepth {
			p.depthErr = errors.Errorf("Criteria document nested too deep: Exceeds the maximum depth of %d at offset %d", p.maxDepth, decoder.InputOffset())
			return nil, p.depthErr
		}

		switch t {
		case '{':
			return p.parseRecord(depth + 1)
		case '[':
			return p.parseSequence(depth + 1)
		}
		return nil, errors.Errorf("Unexpected delimiter '%s' at offset %d", t, decoder.InputOffset())
	case json.Number:
		return parseNumber(t)
	}

	// Strings, booleans and null
	return token, nil
}

func (p *documentParser) parseRecord(depth int) (Record, error) {
	decoder := p.decoder
	record := Record{}
	keyIndices := map[string]int{}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to read object key at offset %d", decoder.InputOffset())
		}

		key, ok := token.(string)
		if !ok {
			return nil, errors.Errorf("Expected object key at offset %d but found %v", decoder.InputOffset(), token)
		}

		value, err := p.parseValue(depth)
		if err != nil && err == p.depthErr {
			return nil, err
		} else if err != nil {
			return nil, errors.Wrapf(err, "Unable to read value of key '%s'", key)
		}

		if index, isDuplicate := keyIndices[key]; isDuplicate {
			sigolo.Debugf("Duplicate key '%s' overwrites its previous value", key)
			record[index].Value = value
			continue
		}

		sigolo.Tracef("Parsed field %s", key)
		keyIndices[key] = len(record)
		record = append(record, Field{Key: key, Value: value})
	}

	// Closing brace
	_, err := decoder.Token()
	if err != nil {
		return nil, errors.Wrapf(err, "Expected end of object at offset %d", decoder.InputOffset())
	}

	return record, nil
}

func (p *documentParser) parseSequence(depth int) (Sequence, error) {
	decoder := p.decoder
	sequence := Sequence{}

	for decoder.More() {
		value, err := p.parseValue(depth)
		if err != nil && err == p.depthErr {
			return nil, err
		} else if err != nil {
			return nil, errors.Wrapf(err, "Unable to read array element %d", len(sequence))
		}
		sequence = append(sequence, value)
	}

	// Closing bracket
	_, err := decoder.Token()
	if err != nil {
		return nil, errors.Wrapf(err, "Expected end of array at offset %d", decoder.InputOffset())
	}

	return sequence, nil
}

func parseNumber(number json.Number) (any, error) {
	if intValue, err := strconv.ParseInt(number.String(), 10, 64); err == nil {
		return intValue, nil
	}

	floatValue, err := number.Float64()
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid number '%s'", number.String())
	}
	return floatValue, nil
}
