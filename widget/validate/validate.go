// Package validate evaluates declarative form rules against submitted values.
//
// Rules are checked in declaration order and every rule runs, so a Result
// carries all the problems with a submission at once:
//
//	res := validate.Validate([]validate.Rule{
//	    validate.Required("name", "Please enter your name."),
//	    validate.Email("email", "Please enter a valid email address."),
//	}, values)
//	if !res.Valid() {
//	    showError(res.Joined())
//	}
//
// Validation failures are data, not errors.
package validate

import (
	"regexp"
	"strings"
)

// EmailPattern accepts "something@something.something" with no whitespace.
var EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Values maps field names to submitted values. A value is either a string
// (text inputs, selects) or a bool (checkboxes). Missing fields read as empty.
type Values map[string]any

// String returns the string value of field, or "" when absent or not a string.
func (v Values) String(field string) string {
	s, _ := v[field].(string)
	return s
}

// Bool returns the bool value of field. Posted checkbox strings count as
// checked unless they read "false", "off" or "0".
func (v Values) Bool(field string) bool {
	switch x := v[field].(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "false", "off", "0":
			return false
		}
		return true
	}
	return false
}

// Check reports whether values satisfy a rule.
type Check func(values Values) bool

// Rule binds a field to a check and the message shown when the check fails.
type Rule struct {
	Field   string
	Check   Check
	Message string
}

// Required fails when the field is a blank string or an unchecked box.
func Required(field, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(v Values) bool {
			return present(v, field)
		},
	}
}

// Pattern fails when the field is blank or does not match re.
func Pattern(field string, re *regexp.Regexp, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(v Values) bool {
			s := v.String(field)
			if strings.TrimSpace(s) == "" {
				return false
			}
			return re.MatchString(s)
		},
	}
}

// Email is Pattern with EmailPattern.
func Email(field, message string) Rule {
	return Pattern(field, EmailPattern, message)
}

// OneOfChecked fails when fewer than minCount of the listed checkbox fields are
// checked. group names the rule in Failures.
func OneOfChecked(group string, minCount int, fields []string, message string) Rule {
	return Rule{
		Field:   group,
		Message: message,
		Check: func(v Values) bool {
			n := 0
			for _, f := range fields {
				if v.Bool(f) {
					n++
				}
			}
			return n >= minCount
		},
	}
}

// RequiredIf makes field required only while sibling holds want.
func RequiredIf(field, sibling, want, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(v Values) bool {
			if v.String(sibling) != want {
				return true
			}
			return present(v, field)
		},
	}
}

// Custom wraps an arbitrary check.
func Custom(field string, check Check, message string) Rule {
	return Rule{Field: field, Check: check, Message: message}
}

func present(v Values, field string) bool {
	switch x := v[field].(type) {
	case string:
		return strings.TrimSpace(x) != ""
	case bool:
		return x
	}
	return false
}

// Failure is one failed rule.
type Failure struct {
	Field   string
	Message string
}

// Result is the outcome of one Validate call. It is immutable.
type Result struct {
	failures []Failure
}

// Validate runs every rule in order and collects the failures.
func Validate(rules []Rule, values Values) Result {
	var failures []Failure
	for _, r := range rules {
		if r.Check == nil || r.Check(values) {
			continue
		}
		failures = append(failures, Failure{Field: r.Field, Message: r.Message})
	}
	return Result{failures: failures}
}

// Valid reports whether no rule failed.
func (r Result) Valid() bool {
	return len(r.failures) == 0
}

// Messages returns the failure messages in rule order.
func (r Result) Messages() []string {
	msgs := make([]string, len(r.failures))
	for i, f := range r.failures {
		msgs[i] = f.Message
	}
	return msgs
}

// Failures returns a copy of the failed rules in order.
func (r Result) Failures() []Failure {
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Joined returns the messages separated by single spaces.
func (r Result) Joined() string {
	return strings.Join(r.Messages(), " ")
}

// Failed reports whether any rule on field failed.
func (r Result) Failed(field string) bool {
	for _, f := range r.failures {
		if f.Field == field {
			return true
		}
	}
	return false
}
