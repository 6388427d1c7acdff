package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightdesk/internal/apperr"
)

var (
	errPathNotFound = errors.New("target location not found")
	errTestFailed   = errors.New("test operation failed")
)

// Apply runs doc against entity in order. entity is only overwritten when every
// operation succeeded and the result decodes back into T.
func Apply[T any](entity *T, doc Document) error {
	tree, err := toTree(entity)
	if err != nil {
		return fmt.Errorf("encode entity: %w", err)
	}

	for i, op := range doc {
		tree, err = applyOperation(tree, op)
		if err != nil {
			detail := fmt.Sprintf("operation %d (%s %s): %v", i, op.Op, op.Path, err)
			if errors.Is(err, errTestFailed) {
				return apperr.InvalidOperation("%s", detail)
			}
			return apperr.BadArgument("%s", detail)
		}
	}

	encoded, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode patched entity: %w", err)
	}
	var next T
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&next); err != nil {
		return apperr.BadArgument("patched entity is invalid: %v", err)
	}
	*entity = next
	return nil
}

func applyOperation(tree any, op Operation) (any, error) {
	path, err := parsePointer(op.Path)
	if err != nil {
		return nil, err
	}

	switch op.Op {
	case Add:
		value, err := decodeValue(op.Value)
		if err != nil {
			return nil, err
		}
		return add(tree, path, value)
	case Remove:
		next, _, err := remove(tree, path)
		return next, err
	case Replace:
		value, err := decodeValue(op.Value)
		if err != nil {
			return nil, err
		}
		return replace(tree, path, value)
	case Move:
		from, err := parsePointer(op.From)
		if err != nil {
			return nil, err
		}
		if isProperPrefix(from, path) {
			return nil, errors.New("cannot move a value into one of its children")
		}
		next, value, err := remove(tree, from)
		if err != nil {
			return nil, err
		}
		return add(next, path, value)
	case Copy:
		from, err := parsePointer(op.From)
		if err != nil {
			return nil, err
		}
		value, err := get(tree, from)
		if err != nil {
			return nil, err
		}
		clone, err := deepCopy(value)
		if err != nil {
			return nil, err
		}
		return add(tree, path, clone)
	case Test:
		expected, err := decodeValue(op.Value)
		if err != nil {
			return nil, err
		}
		actual, err := get(tree, path)
		if err != nil {
			return nil, err
		}
		if !equal(actual, expected) {
			return nil, errTestFailed
		}
		return tree, nil
	default:
		return nil, fmt.Errorf("unsupported operation %q", op.Op)
	}
}

// equal compares decoded JSON values; numbers match by value, so 1200 equals 1200.0.
func equal(a, b any) bool {
	switch x := a.(type) {
	case json.Number:
		y, ok := b.(json.Number)
		if !ok {
			return false
		}
		rx, okx := new(big.Rat).SetString(x.String())
		ry, oky := new(big.Rat).SetString(y.String())
		return okx && oky && rx.Cmp(ry) == 0
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, ok := y[k]
			if !ok || !equal(v, w) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equal(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func add(tree any, path []string, value any) (any, error) {
	if len(path) == 0 {
		return value, nil
	}
	return update(tree, path, func(parent any, last string) (any, error) {
		switch p := parent.(type) {
		case map[string]any:
			key, _ := lookupKey(p, last)
			p[key] = value
			return p, nil
		case []any:
			if last == "-" {
				return append(p, value), nil
			}
			i, err := arrayIndex(last, len(p)+1)
			if err != nil {
				return nil, err
			}
			p = append(p, nil)
			copy(p[i+1:], p[i:])
			p[i] = value
			return p, nil
		default:
			return nil, errPathNotFound
		}
	})
}

func remove(tree any, path []string) (any, any, error) {
	if len(path) == 0 {
		return nil, nil, errors.New("cannot remove the document root")
	}
	var removed any
	next, err := update(tree, path, func(parent any, last string) (any, error) {
		switch p := parent.(type) {
		case map[string]any:
			key, ok := lookupKey(p, last)
			if !ok {
				return nil, errPathNotFound
			}
			removed = p[key]
			delete(p, key)
			return p, nil
		case []any:
			i, err := arrayIndex(last, len(p))
			if err != nil {
				return nil, err
			}
			removed = p[i]
			return append(p[:i:i], p[i+1:]...), nil
		default:
			return nil, errPathNotFound
		}
	})
	return next, removed, err
}

func replace(tree any, path []string, value any) (any, error) {
	if len(path) == 0 {
		return value, nil
	}
	return update(tree, path, func(parent any, last string) (any, error) {
		switch p := parent.(type) {
		case map[string]any:
			key, ok := lookupKey(p, last)
			if !ok {
				return nil, errPathNotFound
			}
			p[key] = value
			return p, nil
		case []any:
			i, err := arrayIndex(last, len(p))
			if err != nil {
				return nil, err
			}
			p[i] = value
			return p, nil
		default:
			return nil, errPathNotFound
		}
	})
}

func get(tree any, path []string) (any, error) {
	node := tree
	for _, token := range path {
		switch n := node.(type) {
		case map[string]any:
			key, ok := lookupKey(n, token)
			if !ok {
				return nil, errPathNotFound
			}
			node = n[key]
		case []any:
			i, err := arrayIndex(token, len(n))
			if err != nil {
				return nil, err
			}
			node = n[i]
		default:
			return nil, errPathNotFound
		}
	}
	return node, nil
}

// update walks to the parent of the last path token and lets fn rewrite it.
// Slices may be reallocated, so every level stores the returned child.
func update(node any, path []string, fn func(parent any, last string) (any, error)) (any, error) {
	if len(path) == 1 {
		return fn(node, path[0])
	}
	switch n := node.(type) {
	case map[string]any:
		key, ok := lookupKey(n, path[0])
		if !ok {
			return nil, errPathNotFound
		}
		child, err := update(n[key], path[1:], fn)
		if err != nil {
			return nil, err
		}
		n[key] = child
		return n, nil
	case []any:
		i, err := arrayIndex(path[0], len(n))
		if err != nil {
			return nil, err
		}
		child, err := update(n[i], path[1:], fn)
		if err != nil {
			return nil, err
		}
		n[i] = child
		return n, nil
	default:
		return nil, errPathNotFound
	}
}

// lookupKey prefers an exact match and falls back to a case-insensitive one,
// so /DepartureDate addresses the departureDate member.
func lookupKey(m map[string]any, token string) (string, bool) {
	if _, ok := m[token]; ok {
		return token, true
	}
	for k := range m {
		if strings.EqualFold(k, token) {
			return k, true
		}
	}
	return token, false
}

func arrayIndex(token string, limit int) (int, error) {
	i, err := strconv.Atoi(token)
	if err != nil || i < 0 || (len(token) > 1 && token[0] == '0') {
		return 0, fmt.Errorf("invalid array index %q", token)
	}
	if i >= limit {
		return 0, errPathNotFound
	}
	return i, nil
}

func parsePointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, fmt.Errorf("invalid pointer %q", pointer)
	}
	tokens := strings.Split(pointer[1:], "/")
	for i, t := range tokens {
		tokens[i] = strings.ReplaceAll(strings.ReplaceAll(t, "~1", "/"), "~0", "~")
	}
	return tokens, nil
}

func isProperPrefix(prefix, path []string) bool {
	if len(prefix) >= len(path) {
		return false
	}
	for i := range prefix {
		if prefix[i] != path[i] {
			return false
		}
	}
	return true
}

func toTree(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return decodeValue(raw)
}

func decodeValue(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, errors.New("missing value")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return v, nil
}

func deepCopy(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return decodeValue(raw)
}
