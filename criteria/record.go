package criteria

import (
	"bytes"
	"encoding/json"
)

// Field is one key/value entry of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is a keyed criteria object whose fields keep the order in which they were written. The order is significant
// for the tokenizer (e.g. the first and second entry of a join column pair), so a plain map is not an option here.
type Record []Field

// Sequence is an ordered list of criteria values.
type Sequence []any

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func NewRecord(fields ...Field) Record {
	record := make(Record, 0, len(fields))
	return append(record, fields...)
}

func NewSequence(values ...any) Sequence {
	sequence := make(Sequence, 0, len(values))
	return append(sequence, values...)
}

// Get returns the value of the first field with the given key.
func (r Record) Get(key string) (any, bool) {
	for _, field := range r {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, field := range r {
		keys[i] = field.Key
	}
	return keys
}

func (r Record) Len() int {
	return len(r)
}

// MarshalJSON writes the record as JSON object with the fields in their original order.
func (r Record) MarshalJSON() ([]byte, error) {
	buffer := &bytes.Buffer{}
	buffer.WriteByte('{')

	for i, field := range r {
		if i > 0 {
			buffer.WriteByte(',')
		}

		keyBytes, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		buffer.Write(keyBytes)
		buffer.WriteByte(':')

		valueBytes, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buffer.Write(valueBytes)
	}

	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// AsRecord returns the given value as Record if it is one.
func AsRecord(value any) (Record, bool) {
	record, ok := value.(Record)
	return record, ok
}

// AsSequence returns the given value as Sequence. Plain []any slices are accepted as well.
func AsSequence(value any) (Sequence, bool) {
	switch v := value.(type) {
	case Sequence:
		return v, true
	case []any:
		return v, true
	}
	return nil, false
}
