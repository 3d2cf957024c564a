// Package validate checks and cleans submitted form data with declarative,
// per-field rule lists.
//
//	rules := validate.Rules{
//		"users": {
//			"email": {
//				{Name: "trim"},
//				{Name: "required", Value: true},
//				{Name: "regexp", Value: `^[^@\s]+@[^@\s]+$`, Message: "invalid email"},
//				{Name: "unique", Value: true},
//			},
//			"age": {{Name: "minvalue", Value: 18}},
//		},
//	}
//
//	v := validate.New(validate.WithFinder(conn))
//	errs, err := v.Validate(ctx, data, rules)
//
// Rules run in declared order and the first failing rule of a field wins.
// Supported rules: trim, striphtml, stripUnprintableChars,
// normalizeWhitespaces, required, required_if_empty, required_if_not_empty,
// minlength, maxlength, minvalue, maxvalue, regexp, unique, exists, function
// and datetime.
package validate
