package step

import (
	"strings"

	ifcerrors "github.com/ifcinspect/ifcinspect/internal/errors"
)

// parser consumes the token stream produced by Lexer and builds a
// Document, enforcing the ISO-10303-21 document shape described in
// spec 4.2.
type parser struct {
	lex  *Lexer
	tok  Token
	prev Token
}

// Parse turns raw STEP source bytes into a Document. Syntax errors are
// fatal: on error the returned Document is nil and no partial entity
// table is retained.
func Parse(src []byte) (*Document, error) {
	p := &parser{lex: NewLexer(src)}
	if err := p.next(); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("ISO-10303-21"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("HEADER"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	header := map[string][]Value{}
	for !p.atKeyword("ENDSEC") && p.tok.Kind != TokEOF {
		name, fields, err := p.parseNamedStatement()
		if err != nil {
			return nil, err
		}
		if _, exists := header[name]; !exists {
			header[name] = fields
		}
	}
	if err := p.expectKeyword("ENDSEC"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("DATA"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	entities := Table{}
	for !p.atKeyword("ENDSEC") && p.tok.Kind != TokEOF {
		if p.tok.Kind != TokHash {
			// Permissive: skip stray tokens between entity statements.
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		id := uint64(p.tok.Int)
		offset := p.tok.Offset
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectPunct("="); err != nil {
			return nil, err
		}
		typeName, fields, err := p.parseNamedStatement()
		if err != nil {
			return nil, err
		}
		if _, dup := entities[id]; dup {
			return nil, ifcerrors.InvalidStep(offset, "duplicate entity id")
		}
		entities[id] = &Entity{ID: id, Type: typeName, Fields: fields}
	}
	if err := p.expectKeyword("ENDSEC"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("END-ISO-10303-21"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return &Document{
		Schema:   extractSchema(header),
		Entities: entities,
	}, nil
}

// extractSchema pulls the first FILE_SCHEMA string, uppercased, or
// "UNKNOWN" if the header entity is absent or empty.
func extractSchema(header map[string][]Value) string {
	fields, ok := header["FILE_SCHEMA"]
	if !ok || len(fields) == 0 {
		return "UNKNOWN"
	}
	names, ok := fields[0].AsList()
	if !ok || len(names) == 0 {
		return "UNKNOWN"
	}
	s, ok := names[0].AsString()
	if !ok || s == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(s)
}

// parseNamedStatement parses `IDENT ( field_list ) ;`, used both for
// header entities and data-section entities (the latter called after
// the leading `#N =` has already been consumed).
func (p *parser) parseNamedStatement() (string, []Value, error) {
	if p.tok.Kind != TokIdent {
		return "", nil, ifcerrors.InvalidStep(p.tok.Offset, "expected a type name")
	}
	name := p.tok.Text
	if err := p.next(); err != nil {
		return "", nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return "", nil, err
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return "", nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return "", nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return "", nil, err
	}
	return name, fields, nil
}

// parseFieldList parses a comma-separated list of values up to (but not
// consuming) the closing ')'. An immediately-closing paren yields an
// empty list.
func (p *parser) parseFieldList() ([]Value, error) {
	var values []Value
	if p.atPunct(")") {
		return values, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.atPunct(",") {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return values, nil
}

// parseValue parses a single STEP field value: one of the nine
// StepValue variants, recursing into nested lists and typed wrappers.
func (p *parser) parseValue() (Value, error) {
	tok := p.tok
	switch {
	case tok.Kind == TokPunct && tok.Text == "$":
		if err := p.next(); err != nil {
			return Value{}, err
		}
		return Null, nil
	case tok.Kind == TokPunct && tok.Text == "*":
		if err := p.next(); err != nil {
			return Value{}, err
		}
		return Derived, nil
	case tok.Kind == TokHash:
		if err := p.next(); err != nil {
			return Value{}, err
		}
		return refVal(uint64(tok.Int)), nil
	case tok.Kind == TokPunct && tok.Text == "(":
		if err := p.next(); err != nil {
			return Value{}, err
		}
		inner, err := p.parseFieldList()
		if err != nil {
			return Value{}, err
		}
		if err := p.expectPunct(")"); err != nil {
			return Value{}, err
		}
		return listVal(inner), nil
	case tok.Kind == TokInteger:
		if err := p.next(); err != nil {
			return Value{}, err
		}
		return intVal(tok.Int), nil
	case tok.Kind == TokReal:
		if err := p.next(); err != nil {
			return Value{}, err
		}
		return realVal(tok.Real), nil
	case tok.Kind == TokString:
		if err := p.next(); err != nil {
			return Value{}, err
		}
		return stringVal(tok.Text), nil
	case tok.Kind == TokIdent && tok.EnumLiteral:
		if err := p.next(); err != nil {
			return Value{}, err
		}
		switch tok.Text {
		case "T", "TRUE":
			return boolVal(true), nil
		case "F", "FALSE":
			return boolVal(false), nil
		default:
			return enumVal(tok.Text), nil
		}
	case tok.Kind == TokIdent:
		// Either a typed-value wrapper, e.g. IFCLENGTHMEASURE(200.0), or
		// a bare identifier used where an enumeration would normally
		// appear; be permissive about the latter.
		if err := p.next(); err != nil {
			return Value{}, err
		}
		if !p.atPunct("(") {
			return enumVal(tok.Text), nil
		}
		if err := p.next(); err != nil {
			return Value{}, err
		}
		inner, err := p.parseValueOrNull()
		if err != nil {
			return Value{}, err
		}
		if err := p.expectPunct(")"); err != nil {
			return Value{}, err
		}
		inner.Wrapper = tok.Text
		return inner, nil
	default:
		return Value{}, ifcerrors.InvalidStep(tok.Offset, "unexpected token in field value: "+tok.String())
	}
}

// parseValueOrNull handles the edge case of an empty typed wrapper,
// e.g. IFCLABEL($), by treating an immediately-closing paren as Null.
func (p *parser) parseValueOrNull() (Value, error) {
	if p.atPunct(")") {
		return Null, nil
	}
	return p.parseValue()
}

func (p *parser) next() error {
	p.prev = p.tok
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) atKeyword(kw string) bool {
	return p.tok.Kind == TokKeyword && p.tok.Text == kw
}

func (p *parser) atPunct(s string) bool {
	return p.tok.Kind == TokPunct && p.tok.Text == s
}

func (p *parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		return ifcerrors.InvalidStep(p.tok.Offset, "expected "+kw)
	}
	return p.next()
}

func (p *parser) expectPunct(s string) error {
	if !p.atPunct(s) {
		return ifcerrors.InvalidStep(p.tok.Offset, "expected '"+s+"'")
	}
	return p.next()
}
