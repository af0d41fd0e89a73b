package assign_payment

// AssignPaymentRequest HTTP request model
type AssignPaymentRequest struct {
	PaymentType string `json:"paymentType"` // cash или card
}
