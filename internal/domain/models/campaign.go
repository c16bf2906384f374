package models

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus represents the lifecycle status of a campaign
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusDeclining CampaignStatus = "declining"
	CampaignStatusDormant   CampaignStatus = "dormant"
)

// ScamCategory classifies the kind of fraud scheme a campaign runs
type ScamCategory string

const (
	CategoryGovernmentImpersonation ScamCategory = "government-impersonation"
	CategoryBanking                 ScamCategory = "banking"
	CategoryRomance                 ScamCategory = "romance"
	CategoryDelivery                ScamCategory = "delivery"
	CategoryTechSupport             ScamCategory = "tech-support"
	CategoryInvestment              ScamCategory = "investment"
	CategoryEmployment              ScamCategory = "employment"
	CategoryMarketplace             ScamCategory = "marketplace"
	CategoryGiftCard                ScamCategory = "gift-card"
	CategoryEmergency               ScamCategory = "emergency"
	CategoryIdentity                ScamCategory = "identity"
	CategoryRental                  ScamCategory = "rental"
	CategorySyntheticMedia          ScamCategory = "synthetic-media"
	CategoryOther                   ScamCategory = "other"
)

// Campaign represents a named, recurring fraud scheme grouping observed
// wordings (variants) and known contact artifacts (indicators).
type Campaign struct {
	ID       uuid.UUID      `json:"id" db:"id"`
	Slug     string         `json:"slug" db:"slug"`
	Name     string         `json:"name" db:"name"`
	Category ScamCategory   `json:"category" db:"category"`
	Status   CampaignStatus `json:"status" db:"status"`

	// Geography
	Regions []string `json:"regions,omitempty" db:"regions"`

	// Temporal. Report counts and last_seen only move forward.
	FirstSeen   time.Time `json:"first_seen" db:"first_seen"`
	LastSeen    time.Time `json:"last_seen" db:"last_seen"`
	ReportCount int       `json:"report_count" db:"report_count"`

	// Owned records (populated from joins or the in-memory store)
	Variants   []Variant   `json:"variants,omitempty" db:"-"`
	Indicators []Indicator `json:"indicators,omitempty" db:"-"`

	// Audit
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the campaign is currently circulating
func (c *Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}

// AmountRange is a currency-tagged demanded-amount range seen in a variant
type AmountRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Variant is one concrete observed wording/template of a campaign.
// A campaign normally holds 1-5 variants tracking wording drift.
type Variant struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CampaignID uuid.UUID `json:"campaign_id" db:"campaign_id"`
	Template   string    `json:"template" db:"template"`

	// Artifacts embedded in the template text
	Phones  []string `json:"phones,omitempty" db:"phones"`
	URLs    []string `json:"urls,omitempty" db:"urls"`
	Emails  []string `json:"emails,omitempty" db:"emails"`
	Wallets []string `json:"wallets,omitempty" db:"wallets"`

	PaymentMethods []string     `json:"payment_methods,omitempty" db:"payment_methods"`
	Amounts        *AmountRange `json:"amounts,omitempty" db:"-"`

	FirstSeen   time.Time `json:"first_seen" db:"first_seen"`
	ReportCount int       `json:"report_count" db:"report_count"`
}

// String returns the string representation of ScamCategory
func (c ScamCategory) String() string {
	return string(c)
}

// ParseScamCategory parses a string into ScamCategory
func ParseScamCategory(s string) ScamCategory {
	switch s {
	case "government-impersonation", "banking", "romance", "delivery",
		"tech-support", "investment", "employment", "marketplace",
		"gift-card", "emergency", "identity", "rental", "synthetic-media":
		return ScamCategory(s)
	default:
		return CategoryOther
	}
}

// String returns the string representation of CampaignStatus
func (s CampaignStatus) String() string {
	return string(s)
}

// DefaultCampaigns returns well-known campaigns for initial seeding
func DefaultCampaigns() []Campaign {
	now := time.Now()

	cra := Campaign{
		ID:          uuid.New(),
		Slug:        "cra-gift-card",
		Name:        "CRA Gift Card Demand",
		Category:    CategoryGovernmentImpersonation,
		Status:      CampaignStatusActive,
		Regions:     []string{"ON", "BC", "AB"},
		FirstSeen:   time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		LastSeen:    now,
		ReportCount: 1240,
	}
	cra.Variants = []Variant{
		{
			ID:         uuid.New(),
			CampaignID: cra.ID,
			Template: "URGENT notice from the CRA. Our records show you owe back taxes. " +
				"Pay immediately via gift card or a warrant will be issued for your arrest. " +
				"Call 1-888-555-0147 now.",
			Phones:         []string{"8885550147"},
			PaymentMethods: []string{"gift_card"},
			Amounts:        &AmountRange{Min: 500, Max: 5000, Currency: "CAD"},
			FirstSeen:      time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			ReportCount:    820,
		},
		{
			ID:         uuid.New(),
			CampaignID: cra.ID,
			Template: "Final warning: Canada Revenue Agency has flagged your SIN for " +
				"suspicious activity. To avoid legal action purchase Google Play cards " +
				"and call 1-888-555-0147.",
			Phones:         []string{"8885550147"},
			PaymentMethods: []string{"gift_card"},
			Amounts:        &AmountRange{Min: 300, Max: 3000, Currency: "CAD"},
			FirstSeen:      time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC),
			ReportCount:    420,
		},
	}
	cra.Indicators = []Indicator{
		newSeedIndicator(cra.ID, IndicatorTypePhone, "8885550147", 1240, now),
	}

	interac := Campaign{
		ID:          uuid.New(),
		Slug:        "interac-refund",
		Name:        "Interac e-Transfer Refund Phish",
		Category:    CategoryBanking,
		Status:      CampaignStatusActive,
		Regions:     []string{"ON", "QC"},
		FirstSeen:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		LastSeen:    now,
		ReportCount: 560,
	}
	interac.Variants = []Variant{
		{
			ID:         uuid.New(),
			CampaignID: interac.ID,
			Template: "INTERAC e-Transfer: You have received a refund of $208.50 from " +
				"your mobile provider. Deposit now: http://interac-refund-ca.top/claim",
			URLs:           []string{"http://interac-refund-ca.top/claim"},
			PaymentMethods: []string{"e_transfer"},
			Amounts:        &AmountRange{Min: 100, Max: 400, Currency: "CAD"},
			FirstSeen:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ReportCount:    560,
		},
	}
	interac.Indicators = []Indicator{
		newSeedIndicator(interac.ID, IndicatorTypeURL, "http://interac-refund-ca.top/claim", 560, now),
		newSeedIndicator(interac.ID, IndicatorTypeDomain, "interac-refund-ca.top", 560, now),
	}

	romance := Campaign{
		ID:          uuid.New(),
		Slug:        "pig-butchering-crypto",
		Name:        "Long-Con Crypto Investment Romance",
		Category:    CategoryRomance,
		Status:      CampaignStatusActive,
		Regions:     []string{"ON", "BC"},
		FirstSeen:   time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		LastSeen:    now,
		ReportCount: 85,
	}
	romance.Variants = []Variant{
		{
			ID:         uuid.New(),
			CampaignID: romance.ID,
			Template: "My uncle works at a trading firm and taught me how to earn 20% " +
				"weekly on USDT. I can show you, just open an account and transfer to " +
				"0x8f3cf7ad23cd3cadbd9735aff958023239c6a063 to start.",
			Wallets:        []string{"0x8f3cf7ad23cd3cadbd9735aff958023239c6a063"},
			PaymentMethods: []string{"crypto"},
			Amounts:        &AmountRange{Min: 1000, Max: 250000, Currency: "USD"},
			FirstSeen:      time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			ReportCount:    85,
		},
	}
	romance.Indicators = []Indicator{
		newSeedIndicator(romance.ID, IndicatorTypeCryptoWallet, "0x8f3cf7ad23cd3cadbd9735aff958023239c6a063", 85, now),
	}

	delivery := Campaign{
		ID:          uuid.New(),
		Slug:        "postal-fee-smish",
		Name:        "Postal Redelivery Fee Smishing",
		Category:    CategoryDelivery,
		Status:      CampaignStatusDeclining,
		Regions:     []string{"ON", "MB", "NS"},
		FirstSeen:   time.Date(2022, 11, 20, 0, 0, 0, 0, time.UTC),
		LastSeen:    now.AddDate(0, -2, 0),
		ReportCount: 2100,
	}
	delivery.Variants = []Variant{
		{
			ID:         uuid.New(),
			CampaignID: delivery.ID,
			Template: "Your package could not be delivered due to an unpaid customs fee " +
				"of $1.02. Schedule redelivery: https://canadapost-track.info/redelivery",
			URLs:           []string{"https://canadapost-track.info/redelivery"},
			PaymentMethods: []string{"credit_card"},
			Amounts:        &AmountRange{Min: 1, Max: 3, Currency: "CAD"},
			FirstSeen:      time.Date(2022, 11, 20, 0, 0, 0, 0, time.UTC),
			ReportCount:    2100,
		},
	}
	delivery.Indicators = []Indicator{
		newSeedIndicator(delivery.ID, IndicatorTypeURL, "https://canadapost-track.info/redelivery", 2100, now.AddDate(0, -2, 0)),
		newSeedIndicator(delivery.ID, IndicatorTypeDomain, "canadapost-track.info", 2100, now.AddDate(0, -2, 0)),
	}

	techsupport := Campaign{
		ID:          uuid.New(),
		Slug:        "msp-refund-remote",
		Name:        "Tech Support Refund Remote Access",
		Category:    CategoryTechSupport,
		Status:      CampaignStatusActive,
		Regions:     []string{"ON", "AB", "SK"},
		FirstSeen:   time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC),
		LastSeen:    now,
		ReportCount: 340,
	}
	techsupport.Variants = []Variant{
		{
			ID:         uuid.New(),
			CampaignID: techsupport.ID,
			Template: "Your antivirus subscription was renewed for $399.99. If you did " +
				"not authorize this charge call our refund department at 1-877-555-0102 " +
				"or email billing@secure-refund-desk.com",
			Phones:         []string{"8775550102"},
			Emails:         []string{"billing@secure-refund-desk.com"},
			PaymentMethods: []string{"bank_transfer"},
			Amounts:        &AmountRange{Min: 200, Max: 400, Currency: "USD"},
			FirstSeen:      time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC),
			ReportCount:    340,
		},
	}
	techsupport.Indicators = []Indicator{
		newSeedIndicator(techsupport.ID, IndicatorTypePhone, "8775550102", 340, now),
		newSeedIndicator(techsupport.ID, IndicatorTypeEmail, "billing@secure-refund-desk.com", 340, now),
	}

	return []Campaign{cra, interac, romance, delivery, techsupport}
}

func newSeedIndicator(campaignID uuid.UUID, typ IndicatorType, value string, reports int, lastSeen time.Time) Indicator {
	return Indicator{
		ID:          uuid.New(),
		CampaignID:  campaignID,
		Type:        typ,
		Value:       value,
		FirstSeen:   lastSeen.AddDate(0, -6, 0),
		LastSeen:    lastSeen,
		ReportCount: reports,
	}
}
