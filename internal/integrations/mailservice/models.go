package mailservice

// SendRequest запрос на отправку письма через почтовый шлюз
type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ErrorResponse модель ошибки от почтового шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
