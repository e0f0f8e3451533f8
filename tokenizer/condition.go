package tokenizer

import (
	"crittok/criteria"
)

func (w *walker) processWhere(stream *Stream, value any, depth int) error {
	stream.push(identifierToken(CategoryWhere.String()))
	return w.tokenizeInto(stream, value, "", depth+1)
}

// processNot adds a NOT condition. There's no closing token, a NOT applies to the field comparison directly following
// it. Therefore, each field within a NOT object gets its own NOT condition:
//
//	{not: {a: 1, b: 2}}  ->  NOT a=1 NOT b=2
//
// A non-object value is added as value right after the condition, which represents "is not null" for {not: null}.
func (w *walker) processNot(stream *Stream, value any, depth int) error {
	record, ok := criteria.AsRecord(value)
	if !ok {
		stream.push(conditionToken(CategoryNot.String()), valueToken(value))
		return nil
	}

	stream.push(conditionToken(CategoryNot.String()))
	for i, field := range record {
		if i > 0 {
			stream.push(conditionToken(CategoryNot.String()))
		}

		err := w.tokenizeField(stream, field, "", depth+1)
		if err != nil {
			return err
		}
	}

	return nil
}

func processIn(stream *Stream, value any) {
	stream.push(conditionToken(CategoryIn.String()), valueToken(value))
}

// processOr adds one group per alternative, each group containing the tokens of one criteria object.
func (w *walker) processOr(stream *Stream, value any, depth int) error {
	stream.push(conditionToken(CategoryOr.String()))

	alternatives, _ := criteria.AsSequence(value)
	for i, alternative := range alternatives {
		stream.push(groupToken(i))

		err := w.tokenizeInto(stream, alternative, "", depth+1)
		if err != nil {
			return err
		}

		stream.push(endGroupToken(i))
	}

	stream.push(endConditionToken(CategoryOr.String()))
	return nil
}
