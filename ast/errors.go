package ast

// ParseError reports an unrecognized keyword handed to one of the token
// parsers (ParseWindowFrameUnits, ParseFileFormat). The message names the
// offending token.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }
