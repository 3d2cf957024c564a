package validate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/mvc/pkg/sanitizer"
)

// Data holds submitted values by table and field, the same shape as db.Row.
type Data map[string]map[string]any

// Rule is one validation step. Message overrides the default error text.
type Rule struct {
	Name    string
	Value   any
	Message string
}

// Rules lists the ordered rules of every field, by table and field.
type Rules map[string]map[string][]Rule

// Errors holds the first error message of each failed field, by table and field.
type Errors map[string]map[string]string

// Get returns the message recorded for table.field.
func (e Errors) Get(table, field string) string {
	return e[table][field]
}

// Has reports whether table.field failed.
func (e Errors) Has(table, field string) bool {
	_, ok := e[table][field]
	return ok
}

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) set(table, field, msg string) {
	if e[table] == nil {
		e[table] = make(map[string]string)
	}
	e[table][field] = msg
}

// Func is a custom rule. It returns an error message, or "" when the value is valid.
type Func func(ctx context.Context, data Data, table, field string) string

// Finder runs lookups for the unique and exists rules. *db.DB implements it.
type Finder interface {
	FindValue(ctx context.Context, query string, args ...any) (any, error)
}

// Validator applies Rules to Data.
type Validator struct {
	finder Finder
	funcs  map[string]Func
}

// Option configures a Validator.
type Option func(*Validator)

// WithFinder sets the lookup used by unique and exists.
func WithFinder(f Finder) Option {
	return func(v *Validator) { v.finder = f }
}

// WithFunc registers a custom rule referenced by {Name: "function", Value: name}.
func WithFunc(name string, fn Func) Option {
	return func(v *Validator) { v.funcs[name] = fn }
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{funcs: make(map[string]Func)}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the rules of every field in declared order. Mutating rules
// (trim, striphtml, stripUnprintableChars, normalizeWhitespaces) rewrite data
// in place. The first failing rule of a field records its message and skips
// the remaining rules of that field. The returned error reports broken rule
// sets and failed lookups, not invalid input.
func (v *Validator) Validate(ctx context.Context, data Data, rules Rules) (Errors, error) {
	errs := make(Errors)

	for _, table := range slices.Sorted(maps.Keys(rules)) {
		fields := rules[table]
		for _, field := range slices.Sorted(maps.Keys(fields)) {
			for _, rule := range fields[field] {
				msg, err := v.apply(ctx, data, table, field, rule)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", table, field, err)
				}
				if msg != "" {
					errs.set(table, field, cmp.Or(rule.Message, msg))
					break
				}
			}
		}
	}

	return errs, nil
}

func (v *Validator) apply(ctx context.Context, data Data, table, field string, rule Rule) (string, error) {
	value, present := lookup(data, table, field)
	s := toString(value)

	switch rule.Name {
	case "trim":
		if present {
			data[table][field] = strings.TrimSpace(s)
		}
	case "striphtml":
		if present {
			data[table][field] = sanitizer.StripTags(s, allowedTags(rule.Value)...)
		}
	case "stripUnprintableChars":
		if present {
			data[table][field] = sanitizer.StripUnprintable(s)
		}
	case "normalizeWhitespaces":
		if present {
			data[table][field] = sanitizer.NormalizeWhitespace(s, truthy(rule.Value))
		}

	case "required":
		if truthy(rule.Value) && (!present || s == "") {
			return "must not be empty", nil
		}
	case "required_if_empty":
		other, _ := lookup(data, table, toString(rule.Value))
		if isEmpty(value) && isEmpty(other) {
			return "must not be empty", nil
		}
	case "required_if_not_empty":
		other, _ := lookup(data, table, toString(rule.Value))
		if isEmpty(value) && !isEmpty(other) {
			return "must not be empty", nil
		}

	case "minlength":
		n, err := ruleInt(rule)
		if err != nil {
			return "", err
		}
		if utf8.RuneCountInString(s) < n {
			return fmt.Sprintf("too short (at least %d characters)", n), nil
		}
	case "maxlength":
		n, err := ruleInt(rule)
		if err != nil {
			return "", err
		}
		if utf8.RuneCountInString(s) > n {
			return fmt.Sprintf("too long (at most %d characters)", n), nil
		}
	case "minvalue":
		limit, err := ruleFloat(rule)
		if err != nil {
			return "", err
		}
		if n, ok := toFloat(value); !ok || n < limit {
			return fmt.Sprintf("too low (at least %v)", rule.Value), nil
		}
	case "maxvalue":
		limit, err := ruleFloat(rule)
		if err != nil {
			return "", err
		}
		if n, ok := toFloat(value); !ok || n > limit {
			return fmt.Sprintf("too high (at most %v)", rule.Value), nil
		}

	case "regexp":
		pattern := toString(rule.Value)
		re, err := regexp.Compile(pattern)
		if err != nil {
			return "", errors.Join(ErrInvalidRuleValue, err)
		}
		if s != "" && !re.MatchString(s) {
			return fmt.Sprintf("invalid format (%s)", pattern), nil
		}

	case "unique":
		if !truthy(rule.Value) {
			return "", nil
		}
		query := fmt.Sprintf("SELECT id FROM %s WHERE %s = ?", table, field)
		args := []any{value}
		if id, _ := lookup(data, table, "id"); !isEmpty(id) {
			query += " AND id != ?"
			args = append(args, id)
		}
		found, err := v.find(ctx, query+" LIMIT 1", []string{table, field}, args...)
		if err != nil {
			return "", err
		}
		if found != nil {
			return "already exists", nil
		}
	case "exists":
		target := toString(rule.Value)
		found, err := v.find(ctx, fmt.Sprintf("SELECT id FROM %s WHERE id = ? LIMIT 1", target), []string{target}, value)
		if err != nil {
			return "", err
		}
		if found == nil {
			return "does not exist", nil
		}

	case "function":
		name := toString(rule.Value)
		fn, ok := v.funcs[name]
		if !ok {
			return "", errors.Join(ErrUnknownFunc, errors.New(name))
		}
		return fn(ctx, data, table, field), nil

	case "datetime":
		layout := datetimeLayout(toString(rule.Value))
		t, err := time.Parse(layout, s)
		if err != nil || t.Format(layout) != s {
			return fmt.Sprintf("invalid date/time, expected %s", layout), nil
		}

	default:
		return "", errors.Join(ErrUnknownRule, errors.New(rule.Name))
	}

	return "", nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (v *Validator) find(ctx context.Context, query string, idents []string, args ...any) (any, error) {
	if v.finder == nil {
		return nil, ErrNoFinder
	}
	for _, id := range idents {
		if !identifier.MatchString(id) {
			return nil, errors.Join(ErrInvalidIdentifier, errors.New(id))
		}
	}
	found, err := v.finder.FindValue(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrLookup, err)
	}
	return found, nil
}

func datetimeLayout(kind string) string {
	switch kind {
	case "time":
		return "15:04"
	case "date":
		return time.DateOnly
	}
	return "2006-01-02 15:04"
}

func lookup(data Data, table, field string) (any, bool) {
	fields, ok := data[table]
	if !ok {
		return nil, false
	}
	v, ok := fields[field]
	return v, ok
}

func allowedTags(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case string:
		// "<b><i>" or "b,i"
		return strings.FieldsFunc(t, func(r rune) bool {
			return r == '<' || r == '>' || r == ',' || r == ' '
		})
	}
	return nil
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(toString(v)), 64)
	return f, err == nil
}

func ruleFloat(r Rule) (float64, error) {
	f, ok := toFloat(r.Value)
	if !ok {
		return 0, fmt.Errorf("%w: %s needs a number, got %v", ErrInvalidRuleValue, r.Name, r.Value)
	}
	return f, nil
}

func ruleInt(r Rule) (int, error) {
	f, err := ruleFloat(r)
	return int(f), err
}

func truthy(v any) bool {
	return !isEmpty(v)
}

// isEmpty treats nil, false, zero numbers, "" and "0" as empty.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == "" || t == "0"
	}
	if f, ok := toFloat(v); ok {
		return f == 0
	}
	return false
}
