package validate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/db"
	"github.com/dmitrymomot/mvc/pkg/validate"
)

func TestValidate_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		rules []validate.Rule
		want  string
	}{
		{"required missing", nil, []validate.Rule{{Name: "required", Value: true}}, "must not be empty"},
		{"required custom message", "", []validate.Rule{{Name: "required", Value: true, Message: "fill it"}}, "fill it"},
		{"required off", "", []validate.Rule{{Name: "required", Value: false}}, ""},
		{"trim then required", "   ", []validate.Rule{{Name: "trim"}, {Name: "required", Value: true}}, "must not be empty"},
		{"minlength counts runes", "äöü", []validate.Rule{{Name: "minlength", Value: 3}}, ""},
		{"minlength", "ab", []validate.Rule{{Name: "minlength", Value: 3}}, "too short (at least 3 characters)"},
		{"maxlength", "abcd", []validate.Rule{{Name: "maxlength", Value: "3"}}, "too long (at most 3 characters)"},
		{"minvalue", "17", []validate.Rule{{Name: "minvalue", Value: 18}}, "too low (at least 18)"},
		{"minvalue not a number", "abc", []validate.Rule{{Name: "minvalue", Value: 1}}, "too low (at least 1)"},
		{"maxvalue ok", 2.5, []validate.Rule{{Name: "maxvalue", Value: 3}}, ""},
		{"maxvalue", 4, []validate.Rule{{Name: "maxvalue", Value: 3}}, "too high (at most 3)"},
		{"regexp skips empty", "", []validate.Rule{{Name: "regexp", Value: `^\d+$`}}, ""},
		{"regexp", "12a", []validate.Rule{{Name: "regexp", Value: `^\d+$`}}, `invalid format (^\d+$)`},
		{"date", "2024-02-30", []validate.Rule{{Name: "datetime", Value: "date"}}, "invalid date/time, expected 2006-01-02"},
		{"date ok", "2024-02-29", []validate.Rule{{Name: "datetime", Value: "date"}}, ""},
		{"time", "25:00", []validate.Rule{{Name: "datetime", Value: "time"}}, "invalid date/time, expected 15:04"},
		{"datetime ok", "2024-01-02 15:04", []validate.Rule{{Name: "datetime"}}, ""},
		{
			"first failure wins",
			"x",
			[]validate.Rule{{Name: "minlength", Value: 2, Message: "first"}, {Name: "regexp", Value: `^\d$`, Message: "second"}},
			"first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := validate.Data{"t": {}}
			if tt.value != nil {
				data["t"]["f"] = tt.value
			}
			errs, err := validate.New().Validate(context.Background(), data, validate.Rules{"t": {"f": tt.rules}})
			require.NoError(t, err)
			require.Equal(t, tt.want, errs.Get("t", "f"))
			require.Equal(t, tt.want == "", errs.Empty())
		})
	}
}

func TestValidate_Mutations(t *testing.T) {
	t.Parallel()

	data := validate.Data{"post": {
		"title": "  Hello  ",
		"body":  "<p>Hi <b>there</b></p><script>x()</script>",
		"note":  "a\x00b\r\n\r\nc   d",
	}}
	rules := validate.Rules{"post": {
		"title": {{Name: "trim"}},
		"body":  {{Name: "striphtml", Value: "<b>"}},
		"note":  {{Name: "stripUnprintableChars"}, {Name: "normalizeWhitespaces"}},
	}}

	errs, err := validate.New().Validate(context.Background(), data, rules)
	require.NoError(t, err)
	require.True(t, errs.Empty())
	require.Equal(t, "Hello", data["post"]["title"])
	require.Equal(t, "Hi <b>there</b>", data["post"]["body"])
	require.Equal(t, "ab\nc d", data["post"]["note"])
}

func TestValidate_Conditional(t *testing.T) {
	t.Parallel()

	rules := validate.Rules{"c": {
		"phone": {{Name: "required_if_empty", Value: "email"}},
		"city":  {{Name: "required_if_not_empty", Value: "zip"}},
	}}

	errs, err := validate.New().Validate(context.Background(), validate.Data{"c": {"zip": "10115"}}, rules)
	require.NoError(t, err)
	require.True(t, errs.Has("c", "phone"))
	require.True(t, errs.Has("c", "city"))

	errs, err = validate.New().Validate(context.Background(), validate.Data{"c": {"email": "a@b.c", "city": "Berlin", "zip": "10115"}}, rules)
	require.NoError(t, err)
	require.True(t, errs.Empty())
}

func TestValidate_Function(t *testing.T) {
	t.Parallel()

	v := validate.New(validate.WithFunc("even", func(_ context.Context, data validate.Data, table, field string) string {
		if n, _ := data[table][field].(int); n%2 != 0 {
			return "must be even"
		}
		return ""
	}))

	rules := validate.Rules{"t": {"n": {{Name: "function", Value: "even"}}}}
	errs, err := v.Validate(context.Background(), validate.Data{"t": {"n": 3}}, rules)
	require.NoError(t, err)
	require.Equal(t, "must be even", errs.Get("t", "n"))

	_, err = v.Validate(context.Background(), validate.Data{}, validate.Rules{"t": {"n": {{Name: "function", Value: "odd"}}}})
	require.ErrorIs(t, err, validate.ErrUnknownFunc)

	_, err = v.Validate(context.Background(), validate.Data{}, validate.Rules{"t": {"n": {{Name: "bogus"}}}})
	require.ErrorIs(t, err, validate.ErrUnknownRule)

	_, err = v.Validate(context.Background(), validate.Data{}, validate.Rules{"t": {"n": {{Name: "unique", Value: true}}}})
	require.ErrorIs(t, err, validate.ErrNoFinder)
}

func TestValidate_Lookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.Config{Driver: db.DriverSQLite, DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT)")
	require.NoError(t, err)
	_, err = conn.Exec(ctx, "INSERT INTO users (id, email) VALUES (1, 'ann@example.com'), (2, 'bob@example.com')")
	require.NoError(t, err)

	v := validate.New(validate.WithFinder(conn))
	unique := validate.Rules{"users": {"email": {{Name: "unique", Value: true}}}}
	exists := validate.Rules{"posts": {"user_id": {{Name: "exists", Value: "users"}}}}

	errs, err := v.Validate(ctx, validate.Data{"users": {"email": "ann@example.com"}}, unique)
	require.NoError(t, err)
	require.Equal(t, "already exists", errs.Get("users", "email"))

	// Updating row 1 with its own email is fine.
	errs, err = v.Validate(ctx, validate.Data{"users": {"id": 1, "email": "ann@example.com"}}, unique)
	require.NoError(t, err)
	require.True(t, errs.Empty())

	errs, err = v.Validate(ctx, validate.Data{"posts": {"user_id": 9}}, exists)
	require.NoError(t, err)
	require.Equal(t, "does not exist", errs.Get("posts", "user_id"))

	errs, err = v.Validate(ctx, validate.Data{"posts": {"user_id": 2}}, exists)
	require.NoError(t, err)
	require.True(t, errs.Empty())

	_, err = v.Validate(ctx, validate.Data{}, validate.Rules{"posts": {"user_id": {{Name: "exists", Value: "users; DROP TABLE users"}}}})
	require.ErrorIs(t, err, validate.ErrInvalidIdentifier)
}
