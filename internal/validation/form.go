package validation

// Field names understood by Form.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldName            = "name"
	FieldPhone           = "phone"
	FieldCPF             = "cpf"
	FieldConfirmPassword = "confirmPassword"
)

// FormResult aggregates the per-field results of a form.
type FormResult struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]Result `json:"errors"`
}

// Failed returns the result of field when it did not pass.
func (f FormResult) Failed(field string) (Result, bool) {
	r, ok := f.Errors[field]
	if !ok || r.IsValid {
		return Result{}, false
	}
	return r, true
}

var fieldValidators = map[string]func(string) Result{
	FieldEmail:    Email,
	FieldPassword: Password,
	FieldName:     Name,
	FieldPhone:    Phone,
	FieldCPF:      CPF,
}

// Form validates every known field present in fields and ignores the rest.
// Errors holds the result of every validated field, passing ones included.
// confirmPassword is checked against the password entry when both exist.
func Form(fields map[string]string) FormResult {
	res := FormResult{IsValid: true, Errors: make(map[string]Result)}
	for name, value := range fields {
		check, known := fieldValidators[name]
		if !known {
			continue
		}
		res.add(name, check(value))
	}
	if confirm, ok := fields[FieldConfirmPassword]; ok {
		if password, ok := fields[FieldPassword]; ok {
			res.add(FieldConfirmPassword, ConfirmPassword(password, confirm))
		}
	}
	return res
}

func (f *FormResult) add(field string, r Result) {
	f.Errors[field] = r
	if !r.IsValid {
		f.IsValid = false
	}
}

// RegisterForm is the content of the sign-up screen.
type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	CPF             string
}

// Registration validates the whole sign-up form. Unlike Form, Errors only
// lists the failing fields, which is what the screen highlights.
func Registration(f RegisterForm) FormResult {
	res := FormResult{IsValid: true, Errors: make(map[string]Result)}
	for field, r := range map[string]Result{
		FieldName:            Name(f.Name),
		FieldEmail:           Email(f.Email),
		FieldPassword:        Password(f.Password),
		FieldConfirmPassword: ConfirmPassword(f.Password, f.ConfirmPassword),
		FieldPhone:           Phone(f.Phone),
		FieldCPF:             CPF(f.CPF),
	} {
		if !r.IsValid {
			res.add(field, r)
		}
	}
	return res
}

// Login validates the sign-in form.
func Login(email, password string) FormResult {
	return Form(map[string]string{FieldEmail: email, FieldPassword: password})
}
