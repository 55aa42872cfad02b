// Package rank assigns lead-quality scores.
package rank

import "github.com/prospectkit/prospect/models"

// Field weights. No partial credit: a field either contributes its full
// weight or nothing.
const (
	weightEmails   = 40
	weightPhones   = 20
	weightSocial   = 20
	weightRevenue  = 10
	weightFounders = 10
)

// Score computes the 0-100 contact-data completeness score from which
// optional fields are non-empty. Pure function, no side effects.
func Score(lead *models.Lead) int {
	score := 0
	if len(lead.Emails) > 0 {
		score += weightEmails
	}
	if len(lead.Phones) > 0 {
		score += weightPhones
	}
	if len(lead.SocialLinks) > 0 {
		score += weightSocial
	}
	if lead.Revenue != "" {
		score += weightRevenue
	}
	if lead.Founders != "" {
		score += weightFounders
	}
	return score
}
