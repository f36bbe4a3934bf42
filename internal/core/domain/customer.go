package domain

// Customer carries every field of the signup form. All of them but the
// profile image must be filled before the form is submitted.
type Customer struct {
	ID           int64
	Name         string `validate:"required"`
	LastName     string `validate:"required"`
	CPF          int64  `validate:"required"`
	Telephone    int64  `validate:"required"`
	Address      string `validate:"required"`
	City         string `validate:"required"`
	State        string `validate:"required"`
	ZipCode      string `validate:"required"`
	ProfileImage string

	Email    string `validate:"required,email"`
	Password string `validate:"required"`

	CardNumber         string `validate:"required"`
	CardCVC            string `validate:"required"`
	CardName           string `validate:"required"`
	CardExpirationDate string `validate:"required"`
}
