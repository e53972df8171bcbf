package models

// Request модели

// LoginRequest запрос на вход администратора
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VerifyCodeRequest запрос на проверку 2FA-кода
type VerifyCodeRequest struct {
	AdminID int64  `json:"adminId"`
	Code    string `json:"code"`
}

// Response модели

// LoginResponse ответ на вход администратора.
// Если включена двухфакторная аутентификация, токен не выдается:
// клиент должен подтвердить вход кодом через VerifyCode.
type LoginResponse struct {
	Token             string `json:"token,omitempty"`
	TwoFactorRequired bool   `json:"twoFactorRequired"`
	AdminID           int64  `json:"adminId,omitempty"`
}
