package paymentprovider

// createIntentRequest тело запроса создания платежной сессии
type createIntentRequest struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

// createIntentResponse ответ провайдера с ссылкой на оплату
type createIntentResponse struct {
	SessionID string `json:"session_id"`
	Link      string `json:"link"`
}

// sessionResponse состояние платежной сессии
type sessionResponse struct {
	SessionID     string `json:"session_id"`
	Status        string `json:"status"` // pending, paid, failed
	TransactionID string `json:"transaction_id"`
}

const statusPaid = "paid"
