package razorpay

type customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type paymentLinkRequest struct {
	Amount      int64             `json:"amount"` // em paise
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Customer    customer          `json:"customer"`
	Notes       map[string]string `json:"notes"`
}

type paymentLinkResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}
