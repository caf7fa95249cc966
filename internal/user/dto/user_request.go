package dto

type RegisterRequest struct {
	Username string   `json:"username" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Name     string   `json:"name"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     string   `json:"role"`
	Projects []string `json:"projects"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Project    string `json:"project"`
}

type UpdateNameRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Name       string `json:"name" validate:"required"`
}

type UpdatePasswordRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}
