package apply_promotion

// ApplyPromotionRequest HTTP request model
type ApplyPromotionRequest struct {
	Code string `json:"code"`
}
