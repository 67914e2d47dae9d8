// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package licenses

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

type ExpressionError struct {
	Expression string
	Position   int
	Reason     string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("invalid license expression %q at position %d: %s", e.Expression, e.Position, e.Reason)
}

type tokenKind int

const (
	tokenKey tokenKind = iota
	tokenAnd
	tokenOr
	tokenWith
	tokenOpen
	tokenClose
)

type token struct {
	kind  tokenKind
	value string
	pos   int
}

func isKeyRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(".-+_:", r)
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenOpen, value: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenClose, value: ")", pos: i})
			i++
		case isKeyRune(r):
			start := i
			for i < len(runes) && isKeyRune(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			t := token{kind: tokenKey, value: word, pos: start}
			switch strings.ToUpper(word) {
			case "AND":
				t.kind = tokenAnd
			case "OR":
				t.kind = tokenOr
			case "WITH":
				t.kind = tokenWith
			}
			tokens = append(tokens, t)
		default:
			return nil, &ExpressionError{Expression: expr, Position: i, Reason: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	return tokens, nil
}

// Node is a parsed license expression. Leaves carry a Key, operators carry Op and Args.
type Node struct {
	Key  string
	Op   string
	Args []*Node
}

func (n *Node) String() string {
	if n.Op == "" {
		return n.Key
	}
	parts := make([]string, len(n.Args))
	for i, arg := range n.Args {
		s := arg.String()
		if arg.Op != "" && arg.Op != "WITH" && arg.Op != n.Op {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, " "+n.Op+" ")
}

type parser struct {
	expr   string
	tokens []token
	pos    int
}

func (p *parser) peek() *token {
	if p.pos < len(p.tokens) {
		return &p.tokens[p.pos]
	}
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	position := len([]rune(p.expr))
	if t := p.peek(); t != nil {
		position = t.pos
	}
	return &ExpressionError{Expression: p.expr, Position: position, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) parseBinary(op tokenKind, name string, next func() (*Node, error)) (*Node, error) {
	node, err := next()
	if err != nil {
		return nil, err
	}
	var group *Node
	for t := p.peek(); t != nil && t.kind == op; t = p.peek() {
		p.pos++
		right, err := next()
		if err != nil {
			return nil, err
		}
		if group == nil {
			group = &Node{Op: name, Args: []*Node{node}}
			node = group
		}
		group.Args = append(group.Args, right)
	}
	return node, nil
}

func (p *parser) parseOr() (*Node, error) {
	return p.parseBinary(tokenOr, "OR", p.parseAnd)
}

func (p *parser) parseAnd() (*Node, error) {
	return p.parseBinary(tokenAnd, "AND", p.parseWith)
}

func (p *parser) parseWith() (*Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil && t.kind == tokenWith {
		if left.Op != "" {
			return nil, p.errorf("WITH must follow a license key")
		}
		p.pos++
		exception := p.peek()
		if exception == nil || exception.kind != tokenKey {
			return nil, p.errorf("WITH must be followed by an exception key")
		}
		p.pos++
		return &Node{Op: "WITH", Args: []*Node{left, {Key: exception.value}}}, nil
	}
	return left, nil
}

func (p *parser) parseAtom() (*Node, error) {
	t := p.peek()
	if t == nil {
		return nil, p.errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokenKey:
		p.pos++
		return &Node{Key: t.value}, nil
	case tokenOpen:
		p.pos++
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing := p.peek()
		if closing == nil || closing.kind != tokenClose {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return node, nil
	}
	return nil, p.errorf("unexpected %q", t.value)
}

// Parse parses an expression made of license keys combined with AND, OR, WITH
// and parentheses. Operators are case-insensitive.
func Parse(expr string) (*Node, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &ExpressionError{Expression: expr, Reason: "empty expression"}
	}
	p := &parser{expr: expr, tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(tokens) {
		return nil, p.errorf("unexpected %q", tokens[p.pos].value)
	}
	return node, nil
}

func collectKeys(n *Node, seen map[string]bool, keys *[]string) {
	if n.Op == "" {
		if !seen[n.Key] {
			seen[n.Key] = true
			*keys = append(*keys, n.Key)
		}
		return
	}
	for _, arg := range n.Args {
		collectKeys(arg, seen, keys)
	}
}

// Keys returns the distinct license keys of the expression in order of appearance.
func Keys(expr string) ([]string, error) {
	if strings.TrimSpace(expr) == "" {
		return []string{}, nil
	}
	node, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	collectKeys(node, map[string]bool{}, &keys)
	return keys, nil
}

// Normalize renders the expression with upper-case operators and minimal parentheses.
func Normalize(expr string) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", nil
	}
	node, err := Parse(expr)
	if err != nil {
		return "", err
	}
	return node.String(), nil
}

type UnknownKeysError struct {
	Keys []string
}

func (e *UnknownKeysError) Error() string {
	return fmt.Sprintf("unknown license keys: %s", strings.Join(e.Keys, ", "))
}

// Validate parses the expression and reports the keys for which known returns false.
func Validate(expr string, known func(key string) bool) ([]string, error) {
	keys, err := Keys(expr)
	if err != nil {
		return nil, err
	}
	var unknown []string
	for _, key := range keys {
		if !known(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return keys, &UnknownKeysError{Keys: unknown}
	}
	return keys, nil
}

// IsValidKey reports whether key can be referenced from a license expression.
func IsValidKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if !isKeyRune(r) {
			return false
		}
	}
	switch strings.ToUpper(key) {
	case "AND", "OR", "WITH":
		return false
	}
	return true
}
