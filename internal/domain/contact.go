package domain

// ContactTier is the personalization level of an outreach draft.
type ContactTier int

// Contact tiers, from a named contact down to a generic greeting.
const (
	TierNamed   ContactTier = 1
	TierCompany ContactTier = 2
	TierGeneric ContactTier = 3
)

// ContactInfo is what the contact extractor could learn about a site.
type ContactInfo struct {
	Domain           string `json:"domain"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	CompanyName      string `json:"company_name"`
	ContactPageFound bool   `json:"contact_page_found"`
	Notes            string `json:"extraction_notes"`
}

// Tier derives the personalization tier from the name fields.
func (c ContactInfo) Tier() ContactTier {
	switch {
	case c.FirstName != "" && c.CompanyName != "":
		return TierNamed
	case c.CompanyName != "":
		return TierCompany
	default:
		return TierGeneric
	}
}
