package apollo

// Formato do mixed_people/search do Apollo.io, só os campos que a
// gente mapeia pro Lead.

type searchRequest struct {
	APIKey     string   `json:"api_key"`
	Page       int      `json:"page"`
	PerPage    int      `json:"per_page"`
	Country    string   `json:"q_organization_country"`
	Industry   string   `json:"q_organization_industry_tag,omitempty"`
	RevenueMin int64    `json:"q_organization_estimated_annual_revenue_min,omitempty"`
	RevenueMax int64    `json:"q_organization_estimated_annual_revenue_max,omitempty"`
	Titles     []string `json:"q_person_title_levels"`
}

type organization struct {
	Name          string `json:"name"`
	WebsiteURL    string `json:"website_url"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employee_count"`
}

type person struct {
	ID           string       `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone_number"`
	Title        string       `json:"title"`
	Organization organization `json:"organization"`
}

type searchResponse struct {
	People []person `json:"people"`
}
