package domain

// TaxStatus tells the caller how the tax amount of a cart was obtained
type TaxStatus string

const (
	// TaxStatusCalculated means a rate was fetched and applied.
	TaxStatusCalculated TaxStatus = "CALCULATED"
	// TaxStatusNotApplicable means no state could be resolved for the cart (empty cart or no profile state).
	TaxStatusNotApplicable TaxStatus = "NOT_APPLICABLE"
	// TaxStatusUnavailable means the tax service failed; the amount is 0.00 and should not be trusted.
	TaxStatusUnavailable TaxStatus = "UNAVAILABLE"
)

// IsValid checks if the tax status is valid
func (s TaxStatus) IsValid() bool {
	switch s {
	case TaxStatusCalculated,
		TaxStatusNotApplicable,
		TaxStatusUnavailable:
		return true
	default:
		return false
	}
}

// IsDegraded reports whether the amount is a fallback rather than a real figure.
func (s TaxStatus) IsDegraded() bool {
	return s == TaxStatusUnavailable
}
