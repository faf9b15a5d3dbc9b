package validate

import (
	"reflect"
	"testing"
)

func contactRules() []Rule {
	return []Rule{
		Required("name", "Please enter your name."),
		Email("email", "Please enter a valid email address."),
	}
}

func TestValidate_EmptyNameOnly(t *testing.T) {
	res := Validate(contactRules(), Values{"name": "", "email": "a@b.co"})

	if res.Valid() {
		t.Fatal("Valid() = true, want false")
	}
	want := []string{"Please enter your name."}
	if got := res.Messages(); !reflect.DeepEqual(got, want) {
		t.Errorf("Messages() = %v, want %v", got, want)
	}
}

func TestValidate_CollectsAllInRuleOrder(t *testing.T) {
	res := Validate(contactRules(), Values{"name": "   ", "email": "nope"})

	want := []string{"Please enter your name.", "Please enter a valid email address."}
	if got := res.Messages(); !reflect.DeepEqual(got, want) {
		t.Errorf("Messages() = %v, want %v", got, want)
	}
	if got := res.Joined(); got != "Please enter your name. Please enter a valid email address." {
		t.Errorf("Joined() = %q", got)
	}
	if !res.Failed("name") || !res.Failed("email") || res.Failed("subject") {
		t.Error("Failed() does not match the failing fields")
	}
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(contactRules(), Values{"name": "Ada", "email": "ada@example.org"})
	if !res.Valid() {
		t.Errorf("Valid() = false, messages %v", res.Messages())
	}
	if res.Joined() != "" || len(res.Failures()) != 0 {
		t.Error("valid result carries failures")
	}
}

func TestRequiredIf_CustomAmount(t *testing.T) {
	rules := []Rule{
		Required("first_name", "Please enter your first name."),
		Required("last_name", "Please enter your last name."),
		Email("email", "Please enter a valid email address."),
		Required("amount", "Please select a donation amount."),
		RequiredIf("custom_amount", "amount", "other", "Please enter a custom donation amount."),
	}
	base := Values{"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.org"}

	tests := []struct {
		name   string
		amount string
		custom string
		want   []string
	}{
		{"other without custom", "other", "", []string{"Please enter a custom donation amount."}},
		{"other with custom", "other", "75", nil},
		{"fixed amount", "50", "", nil},
		{"no amount", "", "", []string{"Please select a donation amount."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Values{"amount": tt.amount, "custom_amount": tt.custom}
			for k, x := range base {
				v[k] = x
			}
			got := Validate(rules, v).Messages()
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Messages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOneOfChecked(t *testing.T) {
	fields := []string{"interest_events", "interest_outreach", "interest_admin"}
	rule := OneOfChecked("interests", 1, fields, "Please select at least one area of interest.")

	tests := []struct {
		name   string
		values Values
		valid  bool
	}{
		{"none", Values{}, false},
		{"all false", Values{"interest_events": false, "interest_admin": false}, false},
		{"one bool", Values{"interest_outreach": true}, true},
		{"posted checkbox", Values{"interest_admin": "on"}, true},
		{"posted off", Values{"interest_admin": "off"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate([]Rule{rule}, tt.values)
			if res.Valid() != tt.valid {
				t.Errorf("Valid() = %v, want %v", res.Valid(), tt.valid)
			}
			if !tt.valid && !res.Failed("interests") {
				t.Error("failure not reported under the group name")
			}
		})
	}

	two := OneOfChecked("interests", 2, fields, "pick two")
	if Validate([]Rule{two}, Values{"interest_events": true}).Valid() {
		t.Error("min=2 satisfied by a single box")
	}
}

func TestRequired_Bool(t *testing.T) {
	rule := Required("terms", "Please accept the terms.")
	if Validate([]Rule{rule}, Values{"terms": false}).Valid() {
		t.Error("unchecked box passed Required")
	}
	if !Validate([]Rule{rule}, Values{"terms": true}).Valid() {
		t.Error("checked box failed Required")
	}
}

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"first.last@sub.example.org", true},
		{"", false},
		{"   ", false},
		{"no-at.example.org", false},
		{"a@b", false},
		{"a b@c.d", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res := Validate([]Rule{Email("email", "bad")}, Values{"email": tt.in})
			if res.Valid() != tt.want {
				t.Errorf("Email(%q) valid = %v, want %v", tt.in, res.Valid(), tt.want)
			}
		})
	}
}

func TestResult_FailuresIsCopy(t *testing.T) {
	res := Validate(contactRules(), Values{})
	f := res.Failures()
	f[0].Message = "mutated"
	if res.Messages()[0] == "mutated" {
		t.Error("Failures() exposed internal state")
	}
}

func TestCustom(t *testing.T) {
	rule := Custom("age", func(v Values) bool { return v.String("age") != "0" }, "Age must be positive.")
	res := Validate([]Rule{rule}, Values{"age": "0"})
	if res.Valid() || res.Joined() != "Age must be positive." {
		t.Errorf("Custom rule result = %v", res.Messages())
	}
}
