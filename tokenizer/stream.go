package tokenizer

// Stream collects the tokens of one tokenization run. It's not safe for concurrent use, each run owns its own stream.
type Stream struct {
	tokens []Token
}

func newStream() *Stream {
	return &Stream{
		tokens: []Token{},
	}
}

func (s *Stream) push(tokens ...Token) {
	s.tokens = append(s.tokens, tokens...)
}

// lastKindIs returns true when the most recently pushed token is of the given kind. It's false on an empty stream.
func (s *Stream) lastKindIs(kind TokenKind) bool {
	if len(s.tokens) == 0 {
		return false
	}
	return s.tokens[len(s.tokens)-1].Kind == kind
}

func (s *Stream) Len() int {
	return len(s.tokens)
}

// Tokens returns a copy of all tokens collected so far.
func (s *Stream) Tokens() []Token {
	result := make([]Token, len(s.tokens))
	copy(result, s.tokens)
	return result
}
