package rdf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type ntDecoder struct {
	reader *bufio.Reader
	opts   DecodeOptions
	format Format
	line   int
	count  int64
	err    error
}

func newNQuadsDecoder(r io.Reader, format Format, opts DecodeOptions) *ntDecoder {
	return &ntDecoder{reader: bufio.NewReader(r), opts: opts, format: format}
}

func (d *ntDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	for {
		if err := d.opts.Context.Err(); err != nil {
			d.err = err
			return Quad{}, err
		}
		line, err := d.readLine()
		if err != nil {
			if err != io.EOF {
				err = wrapParseError(string(d.format), "", d.line, 0, err)
			}
			d.err = err
			return Quad{}, err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if d.opts.MaxStatements > 0 && d.count >= d.opts.MaxStatements {
			d.err = wrapParseError(string(d.format), "", d.line, 0, ErrStatementLimitExceeded)
			return Quad{}, d.err
		}
		quad, err := parseNQuadsLine(line, d.format)
		if err != nil {
			d.err = wrapParseError(string(d.format), line, d.line, 0, err)
			return Quad{}, d.err
		}
		d.count++
		return quad, nil
	}
}

func (d *ntDecoder) Close() error {
	return nil
}

// readLine reads one line, failing once it grows past MaxLineBytes.
func (d *ntDecoder) readLine() (string, error) {
	d.line++
	var buf []byte
	for {
		chunk, err := d.reader.ReadSlice('\n')
		buf = append(buf, chunk...)
		if d.opts.MaxLineBytes > 0 && len(buf) > d.opts.MaxLineBytes {
			return "", ErrLineTooLong
		}
		switch {
		case err == nil:
			return string(buf), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == io.EOF && len(buf) > 0:
			return string(buf), nil
		default:
			return "", err
		}
	}
}

func parseNQuadsLine(line string, format Format) (Quad, error) {
	cursor := &ntCursor{input: line}
	subject, err := cursor.parseSubject()
	if err != nil {
		return Quad{}, err
	}
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Quad{}, err
	}
	object, err := cursor.parseObject()
	if err != nil {
		return Quad{}, err
	}

	var graph Term
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '.' {
		if format == FormatNTriples {
			return Quad{}, cursor.errorf("graph term not allowed in N-Triples")
		}
		graph, err = cursor.parseSubject()
		if err != nil {
			return Quad{}, err
		}
		if _, ok := graph.(TripleTerm); ok {
			return Quad{}, cursor.errorf("triple term not allowed as graph name")
		}
	}
	if !cursor.consume('.') {
		return Quad{}, cursor.errorf("expected '.' at end of statement")
	}
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '#' {
		return Quad{}, cursor.errorf("unexpected content after statement")
	}
	return Quad{S: subject, P: predicate, O: object, G: graph}, nil
}

type ntCursor struct {
	input string
	pos   int
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseSubject() (Term, error) {
	return c.parseTerm(false)
}

func (c *ntCursor) parseObject() (Term, error) {
	return c.parseTerm(true)
}

func (c *ntCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case strings.HasPrefix(c.input[c.pos:], "<<"):
		return c.parseTripleTerm()
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token")
	}
}

func (c *ntCursor) parseIRI() (IRI, error) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	var builder strings.Builder
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		switch {
		case ch == '>':
			c.pos++
			return IRI{Value: builder.String()}, nil
		case ch == '\\':
			r, err := c.parseUChar()
			if err != nil {
				return IRI{}, err
			}
			builder.WriteRune(r)
		case ch <= ' ' || ch == '<' || ch == '"':
			return IRI{}, c.errorf("invalid character %q in IRI", ch)
		default:
			builder.WriteByte(ch)
			c.pos++
		}
	}
	return IRI{}, c.errorf("unterminated IRI")
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	// A label may contain '.', but not end with one.
	for c.pos > start && c.input[c.pos-1] == '.' {
		c.pos--
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	if !c.consume('"') {
		return Literal{}, c.errorf("expected literal")
	}
	var builder strings.Builder
	closed := false
	for c.pos < len(c.input) && !closed {
		ch := c.input[c.pos]
		switch ch {
		case '"':
			c.pos++
			closed = true
		case '\\':
			if c.pos+1 >= len(c.input) {
				return Literal{}, c.errorf("unterminated escape")
			}
			if next := c.input[c.pos+1]; next == 'u' || next == 'U' {
				r, err := c.parseUChar()
				if err != nil {
					return Literal{}, err
				}
				builder.WriteRune(r)
				continue
			}
			decoded, ok := echar(c.input[c.pos+1])
			if !ok {
				return Literal{}, c.errorf("invalid escape \\%c", c.input[c.pos+1])
			}
			builder.WriteByte(decoded)
			c.pos += 2
		default:
			builder.WriteByte(ch)
			c.pos++
		}
	}
	if !closed {
		return Literal{}, c.errorf("unterminated literal")
	}
	lexical := builder.String()
	if strings.HasPrefix(c.input[c.pos:], "@") {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && isLangChar(c.input[c.pos]) {
			c.pos++
		}
		if start == c.pos {
			return Literal{}, c.errorf("language tag missing")
		}
		return Literal{Lexical: lexical, Lang: c.input[start:c.pos]}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *ntCursor) parseTripleTerm() (Term, error) {
	c.pos += 2
	subject, err := c.parseSubject()
	if err != nil {
		return nil, err
	}
	predicate, err := c.parseIRI()
	if err != nil {
		return nil, err
	}
	object, err := c.parseObject()
	if err != nil {
		return nil, err
	}
	c.skipWS()
	if !strings.HasPrefix(c.input[c.pos:], ">>") {
		return nil, c.errorf("expected '>>'")
	}
	c.pos += 2
	return TripleTerm{S: subject, P: predicate, O: object}, nil
}

// parseUChar decodes a \uXXXX or \UXXXXXXXX escape at the cursor.
func (c *ntCursor) parseUChar() (rune, error) {
	if c.pos+1 >= len(c.input) {
		return 0, c.errorf("unterminated escape")
	}
	width := 0
	switch c.input[c.pos+1] {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return 0, c.errorf("invalid escape \\%c", c.input[c.pos+1])
	}
	start := c.pos + 2
	if start+width > len(c.input) {
		return 0, c.errorf("truncated unicode escape")
	}
	value, err := strconv.ParseUint(c.input[start:start+width], 16, 32)
	if err != nil || !utf8.ValidRune(rune(value)) {
		return 0, c.errorf("invalid unicode escape %q", c.input[c.pos:start+width])
	}
	c.pos = start + width
	return rune(value), nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Format: "nquads",
		Column: c.pos + 1,
		Err:    fmt.Errorf(format, args...),
	}
}

func echar(ch byte) (byte, bool) {
	switch ch {
	case 't':
		return '\t', true
	case 'b':
		return '\b', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 'f':
		return '\f', true
	case '"', '\'', '\\':
		return ch, true
	default:
		return 0, false
	}
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '<', '"', '#':
		return true
	default:
		return false
	}
}

func isLangChar(ch byte) bool {
	return ch == '-' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

type ntEncoder struct {
	writer *bufio.Writer
	format Format
	err    error
}

func newNQuadsEncoder(w io.Writer, format Format) *ntEncoder {
	return &ntEncoder{writer: bufio.NewWriter(w), format: format}
}

func (e *ntEncoder) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return fmt.Errorf("nquads: missing statement fields")
	}
	if e.format == FormatNTriples {
		q.G = nil
	}
	_, err := e.writer.WriteString(FormatQuad(q) + "\n")
	if err != nil {
		e.err = err
	}
	return err
}

func (e *ntEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *ntEncoder) Close() error {
	return e.Flush()
}

// FormatQuad renders q as a canonical N-Quads statement ending in " .",
// without the trailing newline. A nil graph is omitted.
func FormatQuad(q Quad) string {
	var buf bytes.Buffer
	buf.WriteString(FormatTerm(q.S))
	buf.WriteByte(' ')
	buf.WriteString(FormatTerm(q.P))
	buf.WriteByte(' ')
	buf.WriteString(FormatTerm(q.O))
	if q.G != nil {
		buf.WriteByte(' ')
		buf.WriteString(FormatTerm(q.G))
	}
	buf.WriteString(" .")
	return buf.String()
}

// FormatTerm renders a term in canonical N-Quads form.
func FormatTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return "<" + escapeIRI(value.Value) + ">"
	case BlankNode:
		return value.String()
	case Literal:
		lexical := `"` + escapeLiteral(value.Lexical) + `"`
		if value.Lang != "" {
			return lexical + "@" + value.Lang
		}
		if value.Datatype.Value != "" && value.Datatype.Value != XSDString {
			return lexical + "^^<" + escapeIRI(value.Datatype.Value) + ">"
		}
		return lexical
	case TripleTerm:
		return "<< " + FormatTerm(value.S) + " " + FormatTerm(value.P) + " " + FormatTerm(value.O) + " >>"
	default:
		return ""
	}
}

// escapeLiteral applies the canonical N-Quads string escapes. It works on bytes
// so invalid UTF-8 passes through unchanged.
func escapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if ch < 0x20 || ch == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	return b.String()
}

// escapeIRI escapes only the characters IRIREF cannot carry verbatim. They
// are all ASCII, so it works on bytes and invalid UTF-8 passes through
// unchanged, as in escapeLiteral.
func escapeIRI(s string) string {
	i := 0
	for i < len(s) && !needsIRIEscape(s[i]) {
		i++
	}
	if i == len(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		ch := s[i]
		if needsIRIEscape(ch) {
			fmt.Fprintf(&b, `\u%04X`, ch)
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func needsIRIEscape(ch byte) bool {
	if ch <= 0x20 {
		return true
	}
	switch ch {
	case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
		return true
	}
	return false
}
