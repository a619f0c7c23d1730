package witx

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// ParseText reads a small, line-oriented interface-description text and
// builds a Module from it. It is not a general schema parser — no
// imports, no generics, no documentation comments — only enough syntax
// to exercise the generator end to end without an external schema
// compiler. A real embedder's schema would arrive from that external
// compiler already as a *Module.
//
// Grammar (informal):
//
//	module <name>
//	enum <Name> : <repr> { Variant ... }
//	flags <Name> : <repr> { Member ... }
//	int <Name> : <repr> { Name = value ... }
//	handle <Name>
//	record <Name> { field: Type ... }
//	union <Name> { arm: Type ... }
//	func <name>(param: Type, ...) -> (result: Type, ...)
//
// Type references are one of the builtin names (s8, s16, ..., string),
// a previously declared name, *Type, const*Type, or []Type.
func ParseText(src string) (*Module, error) {
	p := &parser{mod: &Module{}}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts
	p.next()
	for p.tok != scanner.EOF {
		if err := p.topLevel(); err != nil {
			return nil, err
		}
	}
	return p.mod, nil
}

type parser struct {
	s    scanner.Scanner
	mod  *Module
	tok  rune
	text string
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
}

func (p *parser) expectText(want string) error {
	if p.text != want {
		return fmt.Errorf("witx: line %d: expected %q, got %q", p.s.Line, want, p.text)
	}
	p.next()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	if p.tok != scanner.Ident {
		return "", fmt.Errorf("witx: line %d: expected identifier, got %q", p.s.Line, p.text)
	}
	name := p.text
	p.next()
	return name, nil
}

func (p *parser) topLevel() error {
	switch p.text {
	case "module":
		p.next()
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		p.mod.Name = name
		return nil
	case "enum":
		return p.parseEnum()
	case "flags":
		return p.parseFlags()
	case "int":
		return p.parseTaggedInt()
	case "handle":
		return p.parseHandle()
	case "type":
		return p.parseAlias()
	case "record":
		return p.parseRecord()
	case "union":
		return p.parseUnion()
	case "func":
		return p.parseFunc()
	default:
		return fmt.Errorf("witx: line %d: unexpected top-level token %q", p.s.Line, p.text)
	}
}

func (p *parser) parseRepr() (Repr, error) {
	if err := p.expectText(":"); err != nil {
		return 0, err
	}
	repr, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	switch repr {
	case "u8":
		return Repr8, nil
	case "u16":
		return Repr16, nil
	case "u32":
		return Repr32, nil
	case "u64":
		return Repr64, nil
	default:
		return 0, fmt.Errorf("witx: line %d: unknown repr %q", p.s.Line, repr)
	}
}

func (p *parser) parseEnum() error {
	p.next() // 'enum'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	repr, err := p.parseRepr()
	if err != nil {
		return err
	}
	if err := p.expectText("{"); err != nil {
		return err
	}
	var variants []string
	for p.text != "}" {
		v, err := p.expectIdent()
		if err != nil {
			return err
		}
		variants = append(variants, v)
	}
	if err := p.expectText("}"); err != nil {
		return err
	}
	p.mod.Types = append(p.mod.Types, &Enum{Name: name, Repr: repr, Variants: variants})
	return nil
}

func (p *parser) parseFlags() error {
	p.next() // 'flags'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	repr, err := p.parseRepr()
	if err != nil {
		return err
	}
	if err := p.expectText("{"); err != nil {
		return err
	}
	var members []string
	for p.text != "}" {
		m, err := p.expectIdent()
		if err != nil {
			return err
		}
		members = append(members, m)
	}
	if err := p.expectText("}"); err != nil {
		return err
	}
	if len(members) > 64 {
		return fmt.Errorf("witx: flags type %s declares %d members, more than the 64-bit limit", name, len(members))
	}
	p.mod.Types = append(p.mod.Types, &Flags{Name: name, Repr: repr, Members: members})
	return nil
}

func (p *parser) parseTaggedInt() error {
	p.next() // 'int'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	repr, err := p.parseRepr()
	if err != nil {
		return err
	}
	if err := p.expectText("{"); err != nil {
		return err
	}
	var consts []IntConst
	for p.text != "}" {
		cname, err := p.expectIdent()
		if err != nil {
			return err
		}
		if err := p.expectText("="); err != nil {
			return err
		}
		if p.tok != scanner.Int {
			return fmt.Errorf("witx: line %d: expected integer constant, got %q", p.s.Line, p.text)
		}
		val, err := strconv.ParseUint(p.text, 0, 64)
		if err != nil {
			return fmt.Errorf("witx: line %d: bad integer constant %q: %w", p.s.Line, p.text, err)
		}
		p.next()
		consts = append(consts, IntConst{Name: cname, Value: val})
	}
	if err := p.expectText("}"); err != nil {
		return err
	}
	p.mod.Types = append(p.mod.Types, &TaggedInt{Name: name, Repr: repr, Consts: consts})
	return nil
}

func (p *parser) parseHandle() error {
	p.next() // 'handle'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	p.mod.Types = append(p.mod.Types, &Handle{Name: name})
	return nil
}

// parseAlias parses `type <Name> = <TypeRef>` into an *Alias.
func (p *parser) parseAlias() error {
	p.next() // 'type'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectText("="); err != nil {
		return err
	}
	to, err := p.parseTypeRef()
	if err != nil {
		return err
	}
	p.mod.Types = append(p.mod.Types, &Alias{Name: name, To: to})
	return nil
}

// parseTypeRef parses a type reference: a builtin name, a previously
// (or not-yet) declared type name, *Type, const*Type, or []Type.
// A reference by name becomes a namedRef placeholder, which
// Module.Resolve replaces with the named declaration once the whole
// Module is built.
func (p *parser) parseTypeRef() (Definition, error) {
	switch p.text {
	case "*":
		p.next()
		elem, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		return &PointerType{Elem: elem}, nil
	case "[":
		p.next()
		if err := p.expectText("]"); err != nil {
			return nil, err
		}
		elem, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		return &ArrayType{Elem: elem}, nil
	}
	if p.text == "const" {
		p.next()
		if err := p.expectText("*"); err != nil {
			return nil, err
		}
		elem, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		return &ConstPointerType{Elem: elem}, nil
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if b, ok := builtinByName(name); ok {
		return &BuiltinType{Kind: b}, nil
	}
	// Named reference to a type declared elsewhere in the module.
	// Module.Resolve looks it up with Module.Lookup once the full tree
	// is parsed, so a forward reference (record field naming a type
	// declared further down the file) is legal.
	return &namedRef{name: name}, nil
}

// namedRef is a placeholder Definition produced while parsing a
// reference to a type by name; Module.Resolve replaces it with the
// real Definition once the whole Module is available.
type namedRef struct{ name string }

func (n *namedRef) definitionName() string { return n.name }

func builtinByName(name string) (Builtin, bool) {
	switch name {
	case "s8":
		return BuiltinS8, true
	case "s16":
		return BuiltinS16, true
	case "s32":
		return BuiltinS32, true
	case "s64":
		return BuiltinS64, true
	case "u8":
		return BuiltinU8, true
	case "u16":
		return BuiltinU16, true
	case "u32":
		return BuiltinU32, true
	case "u64":
		return BuiltinU64, true
	case "f32":
		return BuiltinF32, true
	case "f64":
		return BuiltinF64, true
	case "char":
		return BuiltinChar, true
	case "size":
		return BuiltinSize, true
	case "string":
		return BuiltinString, true
	default:
		return 0, false
	}
}

func (p *parser) parseFieldList() ([]Field, error) {
	if err := p.expectText("{"); err != nil {
		return nil, err
	}
	var fields []Field
	for p.text != "}" {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectText(":"); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name, Type: typ})
	}
	if err := p.expectText("}"); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *parser) parseRecord() error {
	p.next() // 'record'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return err
	}
	p.mod.Types = append(p.mod.Types, &Record{Name: name, Fields: fields})
	return nil
}

func (p *parser) parseUnion() error {
	p.next() // 'union'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	arms, err := p.parseFieldList()
	if err != nil {
		return err
	}
	p.mod.Types = append(p.mod.Types, &Union{Name: name, Arms: arms})
	return nil
}

func (p *parser) parseParamList() ([]Param, error) {
	if err := p.expectText("("); err != nil {
		return nil, err
	}
	var params []Param
	for p.text != ")" {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectText(":"); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: name, Type: typ})
		if p.text == "," {
			p.next()
		}
	}
	if err := p.expectText(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseFunc() error {
	p.next() // 'func'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	params, err := p.parseParamList()
	if err != nil {
		return err
	}
	var results []Param
	if p.text == "-" {
		p.next()
		if err := p.expectText(">"); err != nil {
			return err
		}
		results, err = p.parseParamList()
		if err != nil {
			return err
		}
	}
	p.mod.Funcs = append(p.mod.Funcs, Function{Name: name, Params: params, Results: results})
	return nil
}
