package contract

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=32,nospaces"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64,nospaces,hasupper,haslower,hasdigit,hasspecial"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ConfirmSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,min=4,max=10,nospaces"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UserResponse struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     string `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int32  `json:"expiresIn"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}
