package email

import "fmt"

// VerificationMessage renders the OTP email sent during address verification.
func VerificationMessage(to, otp string) Message {
	body := fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:480px;margin:0 auto">
  <h2>Verify your email</h2>
  <p>Use the code below to verify your email address.</p>
  <p style="font-size:28px;letter-spacing:6px;font-weight:bold">%s</p>
  <p>This code expires in 5 minutes.</p>
  <p>If you did not request this, you can ignore this email.</p>
</div>`, otp)

	return Message{
		To:       to,
		Subject:  "Your verification code",
		HTMLBody: body,
	}
}
