package services

import (
	"fmt"
	"regexp"
	"strings"

	"yamu-backend/internal/domain/models"
	"yamu-backend/internal/utils"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

var genders = map[string]bool{"male": true, "female": true, "other": true}

// ValidatePassengers checks every record independently and returns a map of
// "<field>-<index>" to message. Empty map means the whole form is valid.
// Email is mandatory only for the primary passenger (index 0) but is
// format-checked on any record that filled it in.
func ValidatePassengers(passengers []models.Passenger) map[string]string {
	errs := map[string]string{}

	for i, p := range passengers {
		if strings.TrimSpace(p.Name) == "" {
			errs[fmt.Sprintf("name-%d", i)] = "Name is required"
		}
		if strings.TrimSpace(p.Phone) == "" {
			errs[fmt.Sprintf("phone-%d", i)] = "Phone is required"
		} else if len(utils.DigitsOnly(p.Phone)) != 10 {
			errs[fmt.Sprintf("phone-%d", i)] = "Invalid phone number"
		}
		if !genders[strings.TrimSpace(p.Gender)] {
			errs[fmt.Sprintf("gender-%d", i)] = "Gender is required"
		}
		if i == 0 && strings.TrimSpace(p.Email) == "" {
			errs[fmt.Sprintf("email-%d", i)] = "Email is required for primary passenger"
		} else if p.Email != "" && !emailPattern.MatchString(p.Email) {
			errs[fmt.Sprintf("email-%d", i)] = "Invalid email format"
		}
	}

	return errs
}

// ValidateCard checks the card form fields. Expiry is a literal MM/YY shape
// check only; month range and card-not-expired are intentionally not
// enforced, matching the long-standing form behavior.
func ValidateCard(card models.CardDetails) map[string]string {
	errs := map[string]string{}

	number := strings.ReplaceAll(card.Number, " ", "")
	if strings.TrimSpace(card.Number) == "" || len(number) != 16 || utils.DigitsOnly(number) != number {
		errs["cardNumber"] = "Valid card number is required"
	}
	if strings.TrimSpace(card.Name) == "" {
		errs["cardName"] = "Cardholder name is required"
	}
	if !expiryPattern.MatchString(strings.TrimSpace(card.Expiry)) {
		errs["cardExpiry"] = "Valid expiry date is required (MM/YY)"
	}
	if !cvvPattern.MatchString(strings.TrimSpace(card.CVV)) {
		errs["cardCvv"] = "Valid CVV is required"
	}

	return errs
}
