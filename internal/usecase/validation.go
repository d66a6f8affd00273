package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func joinValidationErrors(errs []ValidationError) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "validation failed: " + strings.Join(msgs, ", "),
	}
}

func ValidateSearchInput(input SearchLeadsInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(string(input.Country)) == "" {
		errs = append(errs, ValidationError{"country", "is required"})
	} else if !input.Country.Valid() {
		errs = append(errs, ValidationError{"country", "must be US or IN"})
	}

	if input.Revenue != "" {
		if _, ok := revenueRanges[input.Revenue]; !ok {
			errs = append(errs, ValidationError{"revenue", "must be one of 0-1M, 1M-10M, 10M-50M, 50M+"})
		}
	}

	return errs
}

func ValidateUpdateInput(input UpdateLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}
	if strings.TrimSpace(string(input.Status)) == "" {
		errs = append(errs, ValidationError{"status", "is required"})
	} else if !input.Status.Valid() {
		errs = append(errs, ValidationError{"status", "is not a known status"})
	}

	return errs
}

func ValidatePaymentInput(input CreatePaymentInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}
	if input.Amount <= 0 {
		errs = append(errs, ValidationError{"amount", "must be positive"})
	}

	return errs
}

// revenueRanges traduz o filtro do dashboard pro formato do Apollo.
var revenueRanges = map[string]struct {
	Min int64
	Max int64 // 0 = sem teto
}{
	"0-1M":    {Min: 0, Max: 1_000_000},
	"1M-10M":  {Min: 1_000_000, Max: 10_000_000},
	"10M-50M": {Min: 10_000_000, Max: 50_000_000},
	"50M+":    {Min: 50_000_000, Max: 0},
}
