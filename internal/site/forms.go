package site

import (
	"context"
	"net/http"
	"slices"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/pthm/hxpanel"
	"github.com/pthm/hxpanel/internal/content"
	"github.com/pthm/hxpanel/widget/validate"
)

const msgEmail = "Please enter a valid email address."

// FormProps carries what a failed submission must redisplay. A fresh form has
// zero props.
type FormProps struct {
	Values map[string]string `msgpack:"v,omitempty"`
	Failed []string          `msgpack:"f,omitempty"`
	Ref    string            `msgpack:"r,omitempty"`
}

type fieldKind int

const (
	textField fieldKind = iota
	emailField
	numberField
	selectField
	textareaField
	checkboxGroup
)

// Field is one input. A checkboxGroup field names the group; its boxes are
// the Choices, each posted under its own field name.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Kind        fieldKind
	Options     []string
	Choices     []content.Interest
}

// names returns the posted field names.
func (f Field) names() []string {
	if f.Kind != checkboxGroup {
		return []string{f.Name}
	}
	names := make([]string, len(f.Choices))
	for i, ch := range f.Choices {
		names[i] = ch.Field
	}
	return names
}

type formDef struct {
	name    string
	title   string
	submit  string
	fields  []Field
	rules   []validate.Rule
	success string
	// after runs on success, against the reset props. It returns toasts
	// shown after the success message.
	after func(props *FormProps) []hxpanel.Flash
}

// Form is a validated form. Failures come back as one error toast with every
// message, the failed fields highlighted and the entered values kept. Success
// shows the confirmation toast and resets the form. Nothing is stored.
type Form struct {
	*hxpanel.Component[FormProps]
	def formDef
}

func newForm(def formDef) *Form {
	c := &Form{
		Component: hxpanel.New[FormProps](def.name),
		def:       def,
	}
	c.Action("submit", c.handleSubmit)
	return c
}

// NewDonationForm creates the donation form. Choosing "other" as the amount
// makes the custom amount required.
func NewDonationForm(amounts []string) *Form {
	return newForm(formDef{
		name:   "donation-form",
		title:  "Make a donation",
		submit: "Donate",
		fields: []Field{
			{Name: "first_name", Label: "First name", Placeholder: "Enter your first name"},
			{Name: "last_name", Label: "Last name", Placeholder: "Enter your last name"},
			{Name: "email", Label: "Email", Placeholder: "Enter your email", Kind: emailField},
			{Name: "amount", Label: "Amount", Kind: selectField, Options: amounts},
			{Name: "custom_amount", Label: "Custom amount", Placeholder: "Enter amount", Kind: numberField},
		},
		rules: []validate.Rule{
			validate.Required("first_name", "Please enter your first name."),
			validate.Required("last_name", "Please enter your last name."),
			validate.Email("email", msgEmail),
			validate.Required("amount", "Please select a donation amount."),
			validate.RequiredIf("custom_amount", "amount", "other", "Please enter a custom donation amount."),
		},
		success: "Thank you for your donation! You will be redirected to payment processing.",
		after: func(props *FormProps) []hxpanel.Flash {
			props.Ref = uuid.NewString()
			return []hxpanel.Flash{{Level: hxpanel.FlashInfo, Message: "Redirecting to secure payment gateway..."}}
		},
	})
}

// NewVolunteerForm creates the volunteer sign-up form.
func NewVolunteerForm(states []string, interests []content.Interest) *Form {
	return newForm(formDef{
		name:   "volunteer-form",
		title:  "Volunteer with us",
		submit: "Sign up",
		fields: []Field{
			{Name: "name", Label: "Full name", Placeholder: "Enter your full name"},
			{Name: "email", Label: "Email", Placeholder: "Enter your email", Kind: emailField},
			{Name: "state", Label: "State", Kind: selectField, Options: states},
			{Name: "interests", Label: "Areas of interest", Kind: checkboxGroup, Choices: interests},
		},
		rules: []validate.Rule{
			validate.Required("name", "Please enter your full name."),
			validate.Email("email", msgEmail),
			validate.Required("state", "Please select your state."),
			validate.OneOfChecked("interests", 1, fieldsOf(interests), "Please select at least one area of interest."),
		},
		success: "Thank you for volunteering! We will contact you soon with opportunities.",
	})
}

// NewContactForm creates the contact form.
func NewContactForm() *Form {
	return newForm(formDef{
		name:   "contact-form",
		title:  "Contact us",
		submit: "Send message",
		fields: []Field{
			{Name: "name", Label: "Name", Placeholder: "Your name"},
			{Name: "email", Label: "Email", Placeholder: "Your email", Kind: emailField},
			{Name: "subject", Label: "Subject", Placeholder: "Subject"},
			{Name: "message", Label: "Message", Placeholder: "Your message", Kind: textareaField},
		},
		rules: []validate.Rule{
			validate.Required("name", "Please enter your name."),
			validate.Email("email", msgEmail),
			validate.Required("subject", "Please enter a subject."),
			validate.Required("message", "Please enter your message."),
		},
		success: "Thank you for your message! We will get back to you soon.",
	})
}

// NewNewsletter creates the one-field newsletter sign-up.
func NewNewsletter() *Form {
	return newForm(formDef{
		name:   "newsletter-form",
		submit: "Subscribe",
		fields: []Field{
			{Name: "email", Placeholder: "Enter your email", Kind: emailField},
		},
		rules: []validate.Rule{
			validate.Email("email", msgEmail),
		},
		success: "Successfully subscribed to our newsletter!",
	})
}

func fieldsOf(interests []content.Interest) []string {
	out := make([]string, len(interests))
	for i, in := range interests {
		out[i] = in.Field
	}
	return out
}

// Hydrate is a no-op: forms hold no server state.
func (c *Form) Hydrate(ctx context.Context, props *FormProps) error {
	return nil
}

// Rules returns the form's validation rules in evaluation order.
func (c *Form) Rules() []validate.Rule {
	return slices.Clone(c.def.rules)
}

func (c *Form) handleSubmit(ctx context.Context, props FormProps, r *http.Request) hxpanel.Result[FormProps] {
	if err := r.ParseForm(); err != nil {
		return hxpanel.Err(props, hxpanel.ErrBadRequest)
	}

	posted := make(map[string]string)
	values := validate.Values{}
	for _, f := range c.def.fields {
		for _, name := range f.names() {
			v := r.PostForm.Get(name)
			values[name] = v
			if v != "" {
				posted[name] = v
			}
		}
	}

	res := validate.Validate(c.def.rules, values)
	if !res.Valid() {
		failed := make([]string, 0, len(res.Failures()))
		for _, f := range res.Failures() {
			failed = append(failed, f.Field)
		}
		return hxpanel.OK(FormProps{Values: posted, Failed: failed}).
			Flash(hxpanel.FlashError, res.Joined())
	}

	var next FormProps
	var extra []hxpanel.Flash
	if c.def.after != nil {
		extra = c.def.after(&next)
	}
	ok := hxpanel.OK(next).Flash(hxpanel.FlashSuccess, c.def.success)
	for _, f := range extra {
		ok = ok.Flash(f.Level, f.Message)
	}
	return ok.Trigger("form:submitted", map[string]any{"form": c.def.name})
}

// Render draws the form. The submit request never carries entered values in
// its URL; they are posted as form fields.
func (c *Form) Render(ctx context.Context, props FormProps) templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		failed := make(map[string]bool, len(props.Failed))
		for _, f := range props.Failed {
			failed[f] = true
		}

		m.open("form", attrs(
			templ.Attributes{"id": c.def.name, "class": "panel-form", "novalidate": true},
			c.Call("submit", FormProps{}).TargetThis().Attrs(),
		))
		if c.def.title != "" {
			m.open("h3").text(c.def.title).close("h3")
		}
		for _, f := range c.def.fields {
			c.renderField(m, f, props.Values, failed[f.Name])
		}
		m.open("button", templ.Attributes{"type": "submit", "class": "btn"}).text(c.def.submit).close("button")
		if props.Ref != "" {
			m.open("p", templ.Attributes{"class": "form-reference"}).
				text("Confirmation reference: " + props.Ref).close("p")
		}
		m.close("form")
		return nil
	})
}

func (c *Form) renderField(m *markup, f Field, values map[string]string, failed bool) {
	id := c.def.name + "-" + f.Name
	cls := classes("form-group", map[string]bool{"error": failed})

	if f.Kind == checkboxGroup {
		m.open("fieldset", templ.Attributes{"class": cls, "aria-invalid": boolString(failed)})
		m.open("legend").text(f.Label).close("legend")
		for _, ch := range f.Choices {
			m.open("label").open("input", templ.Attributes{
				"type":    "checkbox",
				"name":    ch.Field,
				"checked": values[ch.Field] != "",
			}).text(" " + ch.Label).close("label")
		}
		m.close("fieldset")
		return
	}

	m.open("div", templ.Attributes{"class": cls})
	if f.Label != "" {
		m.open("label", templ.Attributes{"for": id}).text(f.Label).close("label")
	}
	common := templ.Attributes{
		"id":           id,
		"name":         f.Name,
		"aria-invalid": boolString(failed),
	}
	if failed {
		common["class"] = "error"
	}

	switch f.Kind {
	case selectField:
		m.open("select", common)
		m.open("option", templ.Attributes{"value": ""}).text("Select...").close("option")
		for _, o := range f.Options {
			m.open("option", templ.Attributes{"value": o, "selected": values[f.Name] == o}).text(o).close("option")
		}
		m.close("select")
	case textareaField:
		m.open("textarea", attrs(common, templ.Attributes{"placeholder": f.Placeholder})).
			text(values[f.Name]).close("textarea")
	default:
		m.open("input", attrs(common, templ.Attributes{
			"type":        inputType(f.Kind),
			"placeholder": f.Placeholder,
			"value":       values[f.Name],
		}))
	}
	m.close("div")
}

func inputType(k fieldKind) string {
	switch k {
	case emailField:
		return "email"
	case numberField:
		return "number"
	}
	return "text"
}
