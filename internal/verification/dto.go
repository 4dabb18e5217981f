package verification

// SendOTPRequest asks for a verification code to be (re)sent.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// VerifyOTPRequest submits the code the user received.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=8"`
}
