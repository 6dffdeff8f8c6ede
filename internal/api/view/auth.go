package view

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foodshare/platform/internal/core/domain"
)

// LoginForm is the sticky state of the sign-in form.
type LoginForm struct {
	Email string
	Role  string
	Error string
}

// RegisterForm is the sticky state of the sign-up form.
type RegisterForm struct {
	Name         string
	Email        string
	Role         string
	Phone        string
	Location     string
	Organization string
	Error        string
}

func roleSelect(selected string) Node {
	if selected == "" {
		selected = domain.RoleDonor.String()
	}
	return Select(ID("role"), Name("role"), Required(),
		Map(domain.Roles, func(r domain.Role) Node {
			return Option(Value(r.String()), If(r.String() == selected, Selected()), Text(roleOptionLabel(r)))
		}),
	)
}

func roleOptionLabel(r domain.Role) string {
	switch r {
	case domain.RoleDonor:
		return "Food Donor"
	case domain.RoleNGO:
		return "NGO / Volunteer"
	case domain.RoleAdmin:
		return "Administrator"
	default:
		return r.Title()
	}
}

func LoginPage(ch Chrome, form LoginForm) Node {
	return Page("Sign In", ch,
		Section(Class("auth"),
			H1(Text("Welcome Back")),
			P(Text("Sign in to your FoodShare account")),
			formError(form.Error),
			Form(Method("post"), Action("/login"),
				field("Email Address", "email", Input(Type("email"), ID("email"), Name("email"), Value(form.Email), Required())),
				field("Password", "password", Input(Type("password"), ID("password"), Name("password"), Required())),
				field("I am a", "role", roleSelect(form.Role)),
				Button(Type("submit"), Class("btn btn-primary"), Text("Sign In")),
			),
			P(Text("Don't have an account? "), A(Href("/register"), Text("Sign up here"))),
		),
	)
}

func RegisterPage(ch Chrome, form RegisterForm) Node {
	return Page("Sign Up", ch,
		Section(Class("auth"),
			H1(Text("Join FoodShare")),
			P(Text("Create your account to start making a difference")),
			formError(form.Error),
			Form(Method("post"), Action("/register"),
				field("Full Name", "name", Input(Type("text"), ID("name"), Name("name"), Value(form.Name), Required())),
				field("Email Address", "email", Input(Type("email"), ID("email"), Name("email"), Value(form.Email), Required())),
				field("Password", "password", Input(Type("password"), ID("password"), Name("password"), Required())),
				field("I am a", "role", roleSelect(form.Role)),
				field("Phone Number", "phone", Input(Type("tel"), ID("phone"), Name("phone"), Value(form.Phone))),
				field("Location", "location", Input(Type("text"), ID("location"), Name("location"), Value(form.Location))),
				field("Organization Name (Optional)", "organization", Input(Type("text"), ID("organization"), Name("organization"), Value(form.Organization))),
				Button(Type("submit"), Class("btn btn-primary"), Text("Create Account")),
			),
			P(Text("Already have an account? "), A(Href("/login"), Text("Sign in here"))),
		),
	)
}
