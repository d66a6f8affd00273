package stripe

// Respostas da API do Stripe, só os campos usados. As requests vão
// form-encoded, como a API exige.

type productResponse struct {
	ID string `json:"id"`
}

type priceResponse struct {
	ID string `json:"id"`
}

type paymentLinkResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
