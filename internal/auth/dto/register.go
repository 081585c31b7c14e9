package dto

type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}
