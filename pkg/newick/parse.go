package newick

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/mtree"
)

// delimiters end a bare label or a branch length.
const delimiters = "(),:;[]'"

// Parse reads a single Newick tree. The text must end with ';', optionally
// followed by whitespace.
func Parse(s string) (*mtree.Tree, error) {
	p := &parser{s: s}
	p.skip()
	if p.eof() {
		return nil, p.fail("empty input")
	}
	root, err := p.subtree()
	if err != nil {
		return nil, err
	}
	p.skip()
	if p.eof() || p.peek() != ';' {
		return nil, p.fail("expected ';' at end of tree")
	}
	p.pos++
	p.skip()
	if !p.eof() {
		return nil, p.fail("unexpected text after ';'")
	}
	return mtree.New(root), nil
}

// ParseAll reads every ';'-terminated tree in s, as found in files with one
// tree per line.
func ParseAll(s string) ([]*mtree.Tree, error) {
	var trees []*mtree.Tree
	for _, part := range split(s) {
		t, err := Parse(part)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	if len(trees) == 0 {
		return nil, wrap(&errors.ParseError{Msg: "no tree found"})
	}
	return trees, nil
}

// split cuts s after every ';' that is not inside quotes or comments.
func split(s string) []string {
	var parts []string
	start, quoted, comment := 0, false, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case comment:
			comment = c != ']'
		case c == '\'':
			quoted = !quoted
		case quoted:
		case c == '[':
			comment = true
		case c == ';':
			parts = append(parts, s[start:i+1])
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

type parser struct {
	s   string
	pos int
}

func (p *parser) eof() bool  { return p.pos >= len(p.s) }
func (p *parser) peek() byte { return p.s[p.pos] }

func (p *parser) fail(format string, args ...any) error {
	return wrap(&errors.ParseError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)})
}

func wrap(pe *errors.ParseError) error {
	return errors.Wrap(errors.ErrCodeParse, pe, "invalid newick")
}

// skip advances over whitespace and [comments].
func (p *parser) skip() {
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '[':
			end := strings.IndexByte(p.s[p.pos:], ']')
			if end < 0 {
				return
			}
			p.pos += end + 1
		case unicode.IsSpace(rune(c)):
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) subtree() (*mtree.Node, error) {
	p.skip()
	if p.eof() {
		return nil, p.fail("unexpected end of input")
	}

	n := &mtree.Node{}
	internal := false
	if p.peek() == '(' {
		internal = true
		p.pos++
		for {
			child, err := p.subtree()
			if err != nil {
				return nil, err
			}
			n.AddChild(child)
			p.skip()
			if p.eof() {
				return nil, p.fail("unbalanced parentheses")
			}
			c := p.peek()
			p.pos++
			if c == ')' {
				break
			}
			if c != ',' {
				p.pos--
				return nil, p.fail("expected ',' or ')', found %q", c)
			}
		}
	}

	p.skip()
	label, err := p.label()
	if err != nil {
		return nil, err
	}
	n.Label = label
	if !internal && label == "" {
		return nil, p.fail("leaf without label")
	}

	if err := p.lengths(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) label() (string, error) {
	if p.eof() {
		return "", nil
	}
	if p.peek() == '\'' {
		return p.quoted()
	}
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if strings.IndexByte(delimiters, c) >= 0 || unicode.IsSpace(rune(c)) {
			break
		}
		p.pos++
	}
	return p.s[start:p.pos], nil
}

func (p *parser) quoted() (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.peek()
		p.pos++
		if c != '\'' {
			b.WriteByte(c)
			continue
		}
		if !p.eof() && p.peek() == '\'' {
			b.WriteByte('\'')
			p.pos++
			continue
		}
		return b.String(), nil
	}
	p.pos = start
	return "", p.fail("unterminated quoted label")
}

// lengths reads ":length" and any further colon fields. Only the first field
// is stored.
func (p *parser) lengths(n *mtree.Node) error {
	for field := 0; ; field++ {
		p.skip()
		if p.eof() || p.peek() != ':' {
			return nil
		}
		p.pos++
		p.skip()
		start := p.pos
		for !p.eof() {
			c := p.peek()
			if strings.IndexByte(delimiters, c) >= 0 || unicode.IsSpace(rune(c)) {
				break
			}
			p.pos++
		}
		tok := p.s[start:p.pos]
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			p.pos = start
			return p.fail("invalid branch length %q", tok)
		}
		if field == 0 {
			n.SetLength(v)
		}
	}
}
