package pbxproj

import (
	"strings"
)

// ValueKind distinguishes the three shapes a property list value can take
type ValueKind int

const (
	ValueScalar ValueKind = iota
	ValueDict
	ValueList
)

// Value is a parsed property list value.
//
// For dictionaries and lists Start is the offset of the opening bracket and
// End the offset of the closing one. For scalars they delimit the raw token.
// Tail is the offset just past the value and its annotation.
type Value struct {
	Kind    ValueKind
	Text    string
	Comment string
	Start   int
	End     int
	Tail    int
	Fields  []Field
	Items   []Value

	// TrailingComma is set on a non-empty list whose last item is followed by ','
	TrailingComma bool
}

// Field is one key = value pair of a dictionary
type Field struct {
	Key   string
	Value Value
}

// Field returns the value stored under key in a dictionary value
func (v Value) Field(key string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Object is an entry of an objects section: `ID /* annotation */ = { ... };`
type Object struct {
	ID      string
	Comment string

	// Start is the offset of the ID, End the offset just past the trailing ';'
	Start int
	End   int

	Body Value
}

// Field returns the value stored under key in the object body
func (o Object) Field(key string) (Value, bool) {
	return o.Body.Field(key)
}

// ISA returns the object's isa class name
func (o Object) ISA() string {
	v, ok := o.Field("isa")
	if !ok {
		return ""
	}
	return v.Text
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) eof() bool {
	p.skipComments()
	return p.pos >= len(p.toks)
}

func (p *parser) skipComments() {
	for p.pos < len(p.toks) && p.toks[p.pos].kind == tokComment {
		p.pos++
	}
}

// annotation consumes the comment directly at the cursor, if any, and
// returns its text and end offset
func (p *parser) annotation() (string, int, bool) {
	if p.pos < len(p.toks) && p.toks[p.pos].kind == tokComment {
		t := p.toks[p.pos]
		p.pos++
		return commentText(t.text), t.end, true
	}
	return "", 0, false
}

func (p *parser) peek() (token, bool) {
	p.skipComments()
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token, error) {
	t, ok := p.peek()
	if !ok {
		return token{}, parseError(p.src, len(p.src), "unexpected end of input")
	}
	p.pos++
	return t, nil
}

func (p *parser) expect(punct string) (token, error) {
	t, err := p.next()
	if err != nil {
		return token{}, err
	}
	if t.kind != tokPunct || t.text != punct {
		return token{}, parseError(p.src, t.start, "expected %q, found %q", punct, t.text)
	}
	return t, nil
}

func (p *parser) isPunct(punct string) bool {
	t, ok := p.peek()
	return ok && t.kind == tokPunct && t.text == punct
}

// objects parses a run of `ID = { ... };` entries until the tokens run out
func (p *parser) objects() ([]Object, error) {
	var objs []Object
	for !p.eof() {
		obj, err := p.object()
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func (p *parser) object() (Object, error) {
	id, err := p.next()
	if err != nil {
		return Object{}, err
	}
	if id.kind != tokWord && id.kind != tokString {
		return Object{}, parseError(p.src, id.start, "expected object identifier, found %q", id.text)
	}
	comment, _, _ := p.annotation()
	if _, err := p.expect("="); err != nil {
		return Object{}, err
	}
	body, err := p.value()
	if err != nil {
		return Object{}, err
	}
	if body.Kind != ValueDict {
		return Object{}, parseError(p.src, body.Start, "object %s is not a dictionary", id.text)
	}
	semi, err := p.expect(";")
	if err != nil {
		return Object{}, err
	}
	return Object{
		ID:      unquote(id),
		Comment: comment,
		Start:   id.start,
		End:     semi.end,
		Body:    body,
	}, nil
}

func (p *parser) value() (Value, error) {
	t, err := p.next()
	if err != nil {
		return Value{}, err
	}

	switch {
	case t.kind == tokWord || t.kind == tokString:
		v := Value{Kind: ValueScalar, Text: unquote(t), Start: t.start, End: t.end, Tail: t.end}
		if comment, end, ok := p.annotation(); ok {
			v.Comment = comment
			v.Tail = end
		}
		return v, nil

	case t.kind == tokPunct && t.text == "{":
		v := Value{Kind: ValueDict, Start: t.start}
		for !p.isPunct("}") {
			key, err := p.next()
			if err != nil {
				return Value{}, err
			}
			if key.kind != tokWord && key.kind != tokString {
				return Value{}, parseError(p.src, key.start, "expected key, found %q", key.text)
			}
			p.annotation()
			if _, err := p.expect("="); err != nil {
				return Value{}, err
			}
			fv, err := p.value()
			if err != nil {
				return Value{}, err
			}
			if _, err := p.expect(";"); err != nil {
				return Value{}, err
			}
			v.Fields = append(v.Fields, Field{Key: unquote(key), Value: fv})
		}
		closing, _ := p.next()
		v.End = closing.start
		v.Tail = closing.end
		return v, nil

	case t.kind == tokPunct && t.text == "(":
		v := Value{Kind: ValueList, Start: t.start}
		for !p.isPunct(")") {
			item, err := p.value()
			if err != nil {
				return Value{}, err
			}
			v.Items = append(v.Items, item)
			v.TrailingComma = false
			if p.isPunct(",") {
				p.pos++
				v.TrailingComma = true
				continue
			}
			if !p.isPunct(")") {
				nt, _ := p.peek()
				return Value{}, parseError(p.src, nt.start, "expected \",\" or \")\", found %q", nt.text)
			}
		}
		closing, _ := p.next()
		v.End = closing.start
		v.Tail = closing.end
		return v, nil
	}

	return Value{}, parseError(p.src, t.start, "unexpected %q", t.text)
}

// unquote returns the textual value of a word or string token
func unquote(t token) string {
	if t.kind != tokString {
		return t.text
	}
	raw := t.text[1 : len(t.text)-1]
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}
