package domain

// Account is one credential record in the persisted collection.
// Email is the unique key and is always stored lowercased.
// PasswordDigest is the lowercase hex SHA-256 of the password; the raw
// password is never persisted.
type Account struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	PasswordDigest string `json:"password_digest"`
}

// Profile is the public view of an account, safe to return to clients.
type Profile struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type CreateAccountRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type ResetCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetConfirmRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
