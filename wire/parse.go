package wire

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/handle"
)

// MaxNesting bounds container depth while parsing, mirroring the
// conversion engine's default depth limit.
const MaxNesting = 512

// Parse reads GBLN text and builds the corresponding handle tree in s.
// On success the caller owns the returned handle; on failure everything
// allocated so far has been released.
func Parse(s *handle.Store, input string) (handle.Handle, error) {
	p := &parser{s: s, input: input}
	return p.parseRoot()
}

type parser struct {
	s     *handle.Store
	input string
	pos   int
	depth int
}

func (p *parser) lineCol() (int, int) {
	line, col := 1, 1
	for i := 0; i < p.pos && i < len(p.input); i++ {
		if p.input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (p *parser) errorf(kind errors.Kind, format string, args ...any) error {
	line, col := p.lineCol()
	return errors.New(errors.PhaseParse, kind).
		Detail("%d:%d: "+format, append([]any{line, col}, args...)...).
		Build()
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	return p.input[p.pos]
}

// skipSpace consumes whitespace and # line comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.pos++
		case c == '#':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func isKeyStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKeyByte(c byte) bool {
	return isKeyStart(c) || c == '-' || (c >= '0' && c <= '9')
}

func (p *parser) parseRoot() (handle.Handle, error) {
	p.skipSpace()

	// An unkeyed element makes a non-object root.
	if !p.eof() && (p.peek() == '<' || p.peek() == '[' || p.peek() == '{') {
		h, err := p.parseElement()
		if err != nil {
			return 0, err
		}
		g := handle.Own(p.s, h)
		p.skipSpace()
		if !p.eof() {
			g.Release()
			return 0, p.errorf(errors.KindUnexpectedToken, "trailing input after root value")
		}
		return g.Detach(), nil
	}

	// Otherwise the root is a bare entry list forming an object.
	root := handle.Own(p.s, p.s.NewObject())
	if err := p.parseEntries(root.Handle(), 0); err != nil {
		root.Release()
		return 0, err
	}
	p.skipSpace()
	if !p.eof() {
		root.Release()
		return 0, p.errorf(errors.KindUnexpectedChar, "unexpected character %q", p.peek())
	}
	return root.Detach(), nil
}

// parseEntries fills obj with key-tagged entries until terminator (or end
// of input when terminator is zero).
func (p *parser) parseEntries(obj handle.Handle, terminator byte) error {
	for {
		p.skipSpace()
		if p.eof() {
			if terminator != 0 {
				return p.errorf(errors.KindUnexpectedEOF, "missing %q", terminator)
			}
			return nil
		}
		if terminator != 0 && p.peek() == terminator {
			p.pos++
			return nil
		}

		key, err := p.parseKey()
		if err != nil {
			return err
		}

		child, err := p.parseElement()
		if err != nil {
			return err
		}

		cg := handle.Own(p.s, child)
		switch code := p.s.ObjectInsert(obj, key, child); code {
		case handle.CodeOK:
			cg.Detach()
		case handle.CodeDuplicateKey:
			cg.Release()
			return errors.DuplicateKey(errors.PhaseParse, nil, key)
		default:
			cg.Release()
			return p.errorf(errors.KindInvalidSyntax, "insert of %q rejected: %s", key, p.s.LastError())
		}
	}
}

func (p *parser) parseKey() (string, error) {
	if p.eof() || !isKeyStart(p.peek()) {
		if p.eof() {
			return "", p.errorf(errors.KindUnexpectedEOF, "expected key")
		}
		return "", p.errorf(errors.KindUnexpectedChar, "unexpected character %q, expected key", p.peek())
	}
	start := p.pos
	for !p.eof() && isKeyByte(p.peek()) {
		p.pos++
	}
	return p.input[start:p.pos], nil
}

// parseElement parses one value: a tagged scalar, an object, or an array.
func (p *parser) parseElement() (handle.Handle, error) {
	p.skipSpace()
	if p.eof() {
		return 0, p.errorf(errors.KindUnexpectedEOF, "expected value")
	}

	if p.depth >= MaxNesting {
		return 0, errors.DepthExceeded(errors.PhaseParse, nil, MaxNesting)
	}

	switch p.peek() {
	case '<':
		return p.parseTagged()
	case '{':
		p.pos++
		p.depth++
		obj := handle.Own(p.s, p.s.NewObject())
		err := p.parseEntries(obj.Handle(), '}')
		p.depth--
		if err != nil {
			obj.Release()
			return 0, err
		}
		return obj.Detach(), nil
	case '[':
		p.pos++
		p.depth++
		arr, err := p.parseArray()
		p.depth--
		return arr, err
	default:
		return 0, p.errorf(errors.KindUnexpectedChar, "unexpected character %q, expected value", p.peek())
	}
}

func (p *parser) parseArray() (handle.Handle, error) {
	arr := handle.Own(p.s, p.s.NewArray())
	for {
		p.skipSpace()
		if p.eof() {
			arr.Release()
			return 0, p.errorf(errors.KindUnexpectedEOF, `missing "]"`)
		}
		if p.peek() == ']' {
			p.pos++
			return arr.Detach(), nil
		}

		elem, err := p.parseElement()
		if err != nil {
			arr.Release()
			return 0, err
		}

		eg := handle.Own(p.s, elem)
		if code := p.s.ArrayPush(arr.Handle(), elem); code != handle.CodeOK {
			eg.Release()
			arr.Release()
			return 0, p.errorf(errors.KindInvalidSyntax, "push rejected: %s", p.s.LastError())
		}
		eg.Detach()
	}
}

// parseTagged parses `<tag>(payload)`.
func (p *parser) parseTagged() (handle.Handle, error) {
	p.pos++ // consume '<'
	start := p.pos
	for !p.eof() && p.peek() != '>' {
		p.pos++
	}
	if p.eof() {
		return 0, p.errorf(errors.KindUnexpectedEOF, `missing ">"`)
	}
	tag := p.input[start:p.pos]
	p.pos++ // consume '>'

	p.skipSpace()
	if p.eof() || p.peek() != '(' {
		return 0, p.errorf(errors.KindUnexpectedChar, `expected "(" after tag %q`, tag)
	}
	p.pos++

	payload, err := p.parsePayload()
	if err != nil {
		return 0, err
	}

	return p.construct(tag, payload)
}

// parsePayload scans up to the closing parenthesis, decoding the escape
// sequences \(, \) and \\.
func (p *parser) parsePayload() (string, error) {
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf(errors.KindUnexpectedEOF, "unterminated payload")
		}
		c := p.peek()
		switch c {
		case ')':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.eof() {
				return "", p.errorf(errors.KindUnexpectedEOF, "unterminated escape")
			}
			esc := p.peek()
			if esc != '(' && esc != ')' && esc != '\\' {
				return "", p.errorf(errors.KindInvalidSyntax, `invalid escape \%c`, esc)
			}
			b.WriteByte(esc)
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
}

var stringClasses = map[int]bool{
	2: true, 4: true, 8: true, 16: true, 32: true,
	64: true, 128: true, 256: true, 512: true, 1024: true,
}

// construct validates the payload against the tag and builds the node.
func (p *parser) construct(tag, payload string) (handle.Handle, error) {
	switch tag {
	case "n":
		if payload != "" {
			return 0, p.errorf(errors.KindUnexpectedToken, "null takes no payload, got %q", payload)
		}
		return p.s.NewNull(), nil

	case "b":
		switch payload {
		case "t":
			return p.s.NewBool(true), nil
		case "f":
			return p.s.NewBool(false), nil
		}
		return 0, p.errorf(errors.KindUnexpectedToken, "invalid bool payload %q, want t or f", payload)

	case "i8", "i16", "i32", "i64":
		bits, _ := strconv.Atoi(tag[1:])
		v, err := strconv.ParseInt(payload, 10, bits)
		if err != nil {
			return 0, p.numError(err, payload, tag)
		}
		switch bits {
		case 8:
			return p.s.NewI8(int8(v)), nil
		case 16:
			return p.s.NewI16(int16(v)), nil
		case 32:
			return p.s.NewI32(int32(v)), nil
		default:
			return p.s.NewI64(v), nil
		}

	case "u8", "u16", "u32", "u64":
		bits, _ := strconv.Atoi(tag[1:])
		v, err := strconv.ParseUint(payload, 10, bits)
		if err != nil {
			return 0, p.numError(err, payload, tag)
		}
		switch bits {
		case 8:
			return p.s.NewU8(uint8(v)), nil
		case 16:
			return p.s.NewU16(uint16(v)), nil
		case 32:
			return p.s.NewU32(uint32(v)), nil
		default:
			return p.s.NewU64(v), nil
		}

	case "f32", "f64":
		bits := 64
		if tag == "f32" {
			bits = 32
		}
		v, err := strconv.ParseFloat(payload, bits)
		if err != nil {
			return 0, p.numError(err, payload, tag)
		}
		if bits == 32 {
			return p.s.NewF32(float32(v)), nil
		}
		return p.s.NewF64(v), nil
	}

	if strings.HasPrefix(tag, "s") {
		class, err := strconv.Atoi(tag[1:])
		if err != nil || !stringClasses[class] {
			return 0, p.errorf(errors.KindUnexpectedToken, "unknown type tag %q", tag)
		}
		if n := utf8.RuneCountInString(payload); n > class {
			return 0, errors.StringTooLong(errors.PhaseParse, nil, n, class)
		}
		h := p.s.NewString(payload, class)
		if h == 0 {
			return 0, p.errorf(errors.KindInvalidEncoding, "string rejected: %s", p.s.LastError())
		}
		return h, nil
	}

	return 0, p.errorf(errors.KindUnexpectedToken, "unknown type tag %q", tag)
}

func (p *parser) numError(err error, payload, tag string) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return errors.IntOutOfRange(errors.PhaseParse, nil, payload, tag)
	}
	return p.errorf(errors.KindInvalidSyntax, "invalid %s payload %q", tag, payload)
}
