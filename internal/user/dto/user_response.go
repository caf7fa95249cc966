package dto

type UserResponse struct {
	ExternalID string   `json:"externalId"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Projects   []string `json:"projects"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
	ExternalID  string `json:"externalId"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}
