// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sunyihoo/abicodec/crypto"
)

// SelectorMarshaling is the parsed form of a text signature such as
// "foo(uint256,(address,bytes)[])".
// SelectorMarshaling 是文本签名的解析结果。
type SelectorMarshaling struct {
	Name   string     `json:"name"`
	Type   string     `json:"type"`
	Inputs []Argument `json:"inputs"`
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

// parseToken parses a token from the unescapedSelector string based on whether it's an identifier.
// parseToken 从 unescapedSelector 字符串中解析一个标记，基于它是否是标识符。
func parseToken(unescapedSelector string, isIdent bool) (string, string, error) {
	if len(unescapedSelector) == 0 {
		return "", "", errors.New("empty token")
	}
	firstChar := unescapedSelector[0]
	position := 1
	if !(isAlpha(firstChar) || (isIdent && isIdentifierSymbol(firstChar))) {
		return "", "", fmt.Errorf("invalid token start: %c", firstChar)
	}
	for position < len(unescapedSelector) {
		char := unescapedSelector[position]
		if !(isAlpha(char) || isDigit(char) || (isIdent && isIdentifierSymbol(char))) {
			break
		}
		position++
	}
	return unescapedSelector[:position], unescapedSelector[position:], nil
}

func parseIdentifier(unescapedSelector string) (string, string, error) {
	return parseToken(unescapedSelector, true)
}

// parseDimensions consumes any number of [] or [N] groups.
func parseDimensions(rest string) (string, string, error) {
	var dims strings.Builder
	for len(rest) > 0 && rest[0] == '[' {
		dims.WriteByte('[')
		rest = rest[1:]
		for len(rest) > 0 && isDigit(rest[0]) {
			dims.WriteByte(rest[0])
			rest = rest[1:]
		}
		if len(rest) == 0 || rest[0] != ']' {
			return "", "", fmt.Errorf("failed to parse array: expected ']', got %q", rest)
		}
		dims.WriteByte(']')
		rest = rest[1:]
	}
	return dims.String(), rest, nil
}

// parseElementaryType parses an elementary type (e.g., uint256, address[2]) from the unescapedSelector string.
// parseElementaryType 从 unescapedSelector 字符串中解析一个基本类型（例如 uint256、address）。
func parseElementaryType(unescapedSelector string) (string, string, error) {
	parsedType, rest, err := parseToken(unescapedSelector, false)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse elementary type: %v", err)
	}
	if strings.HasPrefix(parsedType, "tuple") {
		return "", "", fmt.Errorf("%w: %s", ErrTupleSignature, parsedType)
	}
	dims, rest, err := parseDimensions(rest)
	if err != nil {
		return "", "", err
	}
	return parsedType + dims, rest, nil
}

// compositeType is a parenthesised component list with its array suffix.
type compositeType struct {
	components []interface{}
	dims       string
}

// parseCompositeType parses a parenthesised type list, e.g. (uint256,bytes)[2].
// parseCompositeType 从 unescapedSelector 字符串中解析一个复合类型。
func parseCompositeType(unescapedSelector string) (compositeType, string, error) {
	if len(unescapedSelector) == 0 || unescapedSelector[0] != '(' {
		return compositeType{}, "", fmt.Errorf("expected '(', got %q", unescapedSelector)
	}
	var (
		result []interface{}
		rest   = unescapedSelector[1:]
	)
	if len(rest) > 0 && rest[0] == ')' {
		rest = rest[1:]
	} else {
		for {
			parsedType, next, err := parseType(rest)
			if err != nil {
				return compositeType{}, "", fmt.Errorf("failed to parse type: %w", err)
			}
			result = append(result, parsedType)
			if len(next) == 0 {
				return compositeType{}, "", errors.New("expected ')', got end of input")
			}
			if next[0] == ')' {
				rest = next[1:]
				break
			}
			if next[0] != ',' {
				return compositeType{}, "", fmt.Errorf("expected ',' or ')', got %q", next)
			}
			rest = next[1:]
		}
	}
	dims, rest, err := parseDimensions(rest)
	if err != nil {
		return compositeType{}, "", err
	}
	return compositeType{components: result, dims: dims}, rest, nil
}

// parseType determines whether the type is elementary or composite and delegates parsing accordingly.
func parseType(unescapedSelector string) (interface{}, string, error) {
	if len(unescapedSelector) == 0 {
		return nil, "", errors.New("empty type")
	}
	if unescapedSelector[0] == '(' {
		return parseCompositeType(unescapedSelector)
	}
	return parseElementaryType(unescapedSelector)
}

// assembleArgs turns the parsed types into named arguments.
// assembleArgs 将解析的参数组装成参数列表。
func assembleArgs(args []interface{}) ([]Argument, error) {
	arguments := make([]Argument, 0, len(args))
	for i, arg := range args {
		// generate dummy name to avoid unmarshal issues
		name := fmt.Sprintf("name%d", i)
		switch arg := arg.(type) {
		case string:
			arguments = append(arguments, Argument{Name: name, Type: arg, InternalType: arg})
		case compositeType:
			subArgs, err := assembleArgs(arg.components)
			if err != nil {
				return nil, fmt.Errorf("failed to assemble components: %w", err)
			}
			tupleType := "tuple" + arg.dims
			arguments = append(arguments, Argument{Name: name, Type: tupleType, InternalType: tupleType, Components: subArgs})
		default:
			return nil, fmt.Errorf("failed to assemble args: unexpected type %T", arg)
		}
	}
	return arguments, nil
}

// ParseSelector converts a text signature into its parsed form. Parameter
// types spelled "tuple..." are rejected since their components are unknown;
// parenthesised component lists are accepted.
// Note, although uppercase letters are not part of the ABI spec, this function
// still accepts it as the general format is valid.
// ParseSelector 将文本签名转换为结构化形式。
func ParseSelector(unescapedSelector string) (SelectorMarshaling, error) {
	name, rest, err := parseIdentifier(unescapedSelector)
	if err != nil {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': %w", unescapedSelector, err)
	}
	composite, rest, err := parseCompositeType(rest)
	if err != nil {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': %w", unescapedSelector, err)
	}
	if len(rest) > 0 || composite.dims != "" {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': unexpected string '%s'", unescapedSelector, composite.dims+rest)
	}
	fakeArgs, err := assembleArgs(composite.components)
	if err != nil {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector: %w", err)
	}
	return SelectorMarshaling{name, "function", fakeArgs}, nil
}

// NewDefinitionFromSignature creates a function definition from a text
// signature such as "transfer(address,uint256)". Parameters are named
// name0, name1, ... and the function has no outputs.
// NewDefinitionFromSignature 根据文本签名创建函数定义。
func NewDefinitionFromSignature(sig string, hasher crypto.Hasher) (*Definition, error) {
	sel, err := ParseSelector(strings.TrimSpace(sig))
	if err != nil {
		return nil, err
	}
	return NewDefinition(sel.Name, Function, "", false, false, false, sel.Inputs, nil, hasher)
}
