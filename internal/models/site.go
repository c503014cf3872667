package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSiteTitle is used until SiteSettings exists.
const DefaultSiteTitle = "দুর্গা মন্দির"

// SiteSettings is the singleton holding site-wide presentation values.
type SiteSettings struct {
	ID              uuid.UUID `json:"id"`
	SiteTitle       string    `json:"site_title"`
	Tagline         string    `json:"site_tagline"`
	Description     string    `json:"site_description"`
	Logo            string    `json:"logo"`
	Favicon         string    `json:"favicon"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone"`
	Address         string    `json:"address"`
	FacebookURL     string    `json:"facebook_url"`
	YoutubeURL      string    `json:"youtube_url"`
	GoogleMapURL    string    `json:"google_map_url"`
	FooterText      string    `json:"footer_text"`
	PrasadHallImage string    `json:"prasad_hall_image"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Title returns the configured site title, or the default when s is nil
// or the title is blank.
func (s *SiteSettings) Title() string {
	if s == nil || s.SiteTitle == "" {
		return DefaultSiteTitle
	}
	return s.SiteTitle
}

// DonationInfo is the singleton holding bank and mobile-wallet details.
type DonationInfo struct {
	ID                uuid.UUID `json:"id"`
	BankName          string    `json:"bank_name"`
	BankAccountName   string    `json:"bank_account_name"`
	BankAccountNumber string    `json:"bank_account_number"`
	BankBranch        string    `json:"bank_branch"`
	BankRoutingNumber string    `json:"bank_routing_number"`
	BkashNumber       string    `json:"bkash_number"`
	NagadNumber       string    `json:"nagad_number"`
	RocketNumber      string    `json:"rocket_number"`
	OtherPaymentInfo  string    `json:"other_payment_info"`
	DonationNote      string    `json:"donation_note"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasBank reports whether any bank transfer details are filled in.
func (d *DonationInfo) HasBank() bool {
	return d.BankName != "" || d.BankAccountNumber != ""
}

// HasMobile reports whether any mobile wallet number is filled in.
func (d *DonationInfo) HasMobile() bool {
	return d.BkashNumber != "" || d.NagadNumber != "" || d.RocketNumber != ""
}
