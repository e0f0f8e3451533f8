package tokenizer

import (
	"crittok/criteria"
	"crittok/util"
	"github.com/hauke96/sigolo/v2"
)

const DefaultMaxDepth = 128

type Options struct {
	// MaxDepth limits how deep the criteria document may be nested. Zero or a negative value disables the limit.
	MaxDepth int
	// Strict turns clauses, that would otherwise silently produce fewer tokens, into an InvalidClauseError.
	Strict bool
}

func DefaultOptions() Options {
	return Options{
		MaxDepth: DefaultMaxDepth,
		Strict:   false,
	}
}

// Tokenizer turns criteria documents into flat token streams. It holds no state besides its options and can therefore
// be shared between goroutines.
type Tokenizer struct {
	options Options
}

func New(options Options) *Tokenizer {
	return &Tokenizer{
		options: options,
	}
}

// Tokenize uses the default options to tokenize the given expression.
func Tokenize(expression any) ([]Token, error) {
	return New(DefaultOptions()).Tokenize(expression)
}

// Tokenize walks over the given expression and returns its tokens. The expression usually is a criteria.Record, any
// other value has no keys and results in an empty token stream.
func (t *Tokenizer) Tokenize(expression any) ([]Token, error) {
	stream := newStream()
	w := &walker{
		options: t.options,
	}

	err := w.tokenizeInto(stream, expression, "", 0)
	if err != nil {
		return nil, err
	}

	sigolo.Tracef("Found %d token", stream.Len())
	return stream.Tokens(), nil
}

type walker struct {
	options Options
}

// tokenizeInto tokenizes all fields of the given expression in their order. The parent key is the field name the
// expression belongs to (e.g. "age" in {age: {'>': 18}}), it's empty on the top level and within clauses.
func (w *walker) tokenizeInto(stream *Stream, expression any, parentKey string, depth int) error {
	record, ok := criteria.AsRecord(expression)
	if !ok {
		return nil
	}

	for _, field := range record {
		err := w.tokenizeField(stream, field, parentKey, depth)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) tokenizeField(stream *Stream, field criteria.Field, parentKey string, depth int) error {
	if w.options.MaxDepth > 0 && depth > w.options.MaxDepth {
		return MaxDepthExceeded(field.Key, w.options.MaxDepth)
	}

	category, isIdentifier := Lookup(field.Key)
	if isIdentifier {
		sigolo.Tracef("[%d] Process identifier '%s' of category %s", depth, field.Key, category.String())
		return w.processIdentifier(stream, category, field.Key, field.Value, parentKey, depth)
	}

	// Not a keyword, so this is a field name
	sigolo.Tracef("[%d] Process field '%s'", depth, field.Key)
	stream.push(keyToken(field.Key))

	if nested, ok := criteria.AsRecord(field.Value); ok {
		// The nested object (e.g. {'>': 18} or {in: [...]}) provides the tokens following the key.
		return w.tokenizeInto(stream, nested, field.Key, depth+1)
	}

	stream.push(valueToken(field.Value))
	return nil
}

func (w *walker) processIdentifier(stream *Stream, category Category, keyword string, value any, parentKey string, depth int) error {
	switch category {
	case CategoryOperator:
		processOperator(stream, keyword, value, parentKey)
	case CategorySelect:
		processSelect(stream, value)
	case CategoryFrom:
		return processFrom(stream, keyword, value, w.options.Strict)
	case CategoryInsert, CategoryUpdate:
		return processKeyValueClause(stream, category, keyword, value, w.options.Strict)
	case CategoryInto, CategoryUsing, CategoryGroupBy:
		processIdentifierWithValue(stream, category, value)
	case CategoryDelete:
		processDelete(stream)
	case CategoryWhere:
		return w.processWhere(stream, value, depth)
	case CategoryNot:
		return w.processNot(stream, value, depth)
	case CategoryIn:
		processIn(stream, value)
	case CategoryOr:
		return w.processOr(stream, value, depth)
	case CategoryJoin:
		return processJoin(stream, keyword, value)
	case CategoryOrderBy:
		return w.processOrderBy(stream, value, depth)
	case CategoryCount, CategoryMin, CategoryMax, CategorySum, CategoryAvg:
		processIdentifierWithValue(stream, category, value)
	case CategoryLimit, CategoryOffset:
		processIdentifierWithValue(stream, category, value)
	case CategoryDistinct:
		return w.processUnhandledIdentifier(stream, category, keyword, value, depth)
	default:
		util.LogFatalBug("Unhandled category %s of identifier '%s'", category.String(), keyword)
	}

	return nil
}

// processUnhandledIdentifier covers keywords which have a category but no dedicated clause handling. Their value is
// tokenized like a nested expression and other values are ignored.
func (w *walker) processUnhandledIdentifier(stream *Stream, category Category, keyword string, value any, depth int) error {
	stream.push(identifierToken(category.String()))

	if sequence, ok := criteria.AsSequence(value); ok {
		for _, expression := range sequence {
			err := w.tokenizeInto(stream, expression, "", depth+1)
			if err != nil {
				return err
			}
		}
		return nil
	}

	if record, ok := criteria.AsRecord(value); ok {
		return w.tokenizeInto(stream, record, keyword, depth+1)
	}

	sigolo.Debugf("Ignore value of type %T for identifier '%s'", value, keyword)
	return nil
}
