package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"durgamondir/internal/models"
)

// SiteSettingsStore manages the single site settings row. There is no
// Delete: the row may be created once and then only edited.
type SiteSettingsStore struct {
	db *sql.DB
}

func NewSiteSettingsStore(db *sql.DB) *SiteSettingsStore {
	return &SiteSettingsStore{db: db}
}

const siteColumns = `id, site_title, site_tagline, site_description, logo, favicon,
	contact_email, contact_phone, address, facebook_url, youtube_url, google_map_url,
	footer_text, prasad_hall_image, updated_at`

func scanSiteSettings(row scanner) (*models.SiteSettings, error) {
	var s models.SiteSettings
	err := row.Scan(
		&s.ID, &s.SiteTitle, &s.Tagline, &s.Description, &s.Logo, &s.Favicon,
		&s.ContactEmail, &s.ContactPhone, &s.Address, &s.FacebookURL, &s.YoutubeURL, &s.GoogleMapURL,
		&s.FooterText, &s.PrasadHallImage, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *SiteSettingsStore) Get(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := scanSiteSettings(s.db.QueryRowContext(ctx,
		`SELECT `+siteColumns+` FROM site_settings LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	return settings, nil
}

// Create inserts the settings row, or fails with ErrSingletonExists when
// one is already present.
func (s *SiteSettingsStore) Create(ctx context.Context, in *models.SiteSettings) (*models.SiteSettings, error) {
	if err := ensureNoRow(ctx, s.db, "site_settings"); err != nil {
		return nil, err
	}
	created, err := scanSiteSettings(s.db.QueryRowContext(ctx, `
		INSERT INTO site_settings (site_title, site_tagline, site_description, logo, favicon,
			contact_email, contact_phone, address, facebook_url, youtube_url, google_map_url,
			footer_text, prasad_hall_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+siteColumns,
		in.SiteTitle, in.Tagline, in.Description, in.Logo, in.Favicon,
		in.ContactEmail, in.ContactPhone, in.Address, in.FacebookURL, in.YoutubeURL, in.GoogleMapURL,
		in.FooterText, in.PrasadHallImage,
	))
	if isUniqueViolation(err, "site_settings_singleton_key") {
		return nil, ErrSingletonExists
	}
	if err != nil {
		return nil, fmt.Errorf("create site settings: %w", err)
	}
	return created, nil
}

func (s *SiteSettingsStore) Update(ctx context.Context, in *models.SiteSettings) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE site_settings SET site_title = $1, site_tagline = $2, site_description = $3,
			logo = $4, favicon = $5, contact_email = $6, contact_phone = $7, address = $8,
			facebook_url = $9, youtube_url = $10, google_map_url = $11, footer_text = $12,
			prasad_hall_image = $13, updated_at = NOW()
		WHERE id = $14`,
		in.SiteTitle, in.Tagline, in.Description, in.Logo, in.Favicon,
		in.ContactEmail, in.ContactPhone, in.Address, in.FacebookURL, in.YoutubeURL, in.GoogleMapURL,
		in.FooterText, in.PrasadHallImage, in.ID,
	)
	if err != nil {
		return fmt.Errorf("update site settings: %w", err)
	}
	return rowsAffected(res)
}

// DonationStore manages the single donation info row.
type DonationStore struct {
	db *sql.DB
}

func NewDonationStore(db *sql.DB) *DonationStore {
	return &DonationStore{db: db}
}

const donationColumns = `id, bank_name, bank_account_name, bank_account_number, bank_branch,
	bank_routing_number, bkash_number, nagad_number, rocket_number, other_payment_info,
	donation_note, is_active, created_at, updated_at`

func scanDonation(row scanner) (*models.DonationInfo, error) {
	var d models.DonationInfo
	err := row.Scan(
		&d.ID, &d.BankName, &d.BankAccountName, &d.BankAccountNumber, &d.BankBranch,
		&d.BankRoutingNumber, &d.BkashNumber, &d.NagadNumber, &d.RocketNumber, &d.OtherPaymentInfo,
		&d.DonationNote, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Get returns the donation info if it exists and is active.
func (s *DonationStore) Get(ctx context.Context) (*models.DonationInfo, error) {
	return s.get(ctx, ` WHERE is_active`)
}

// Load returns the row regardless of its active flag, for editing.
func (s *DonationStore) Load(ctx context.Context) (*models.DonationInfo, error) {
	return s.get(ctx, "")
}

func (s *DonationStore) get(ctx context.Context, where string) (*models.DonationInfo, error) {
	d, err := scanDonation(s.db.QueryRowContext(ctx,
		`SELECT `+donationColumns+` FROM donation_info`+where+` LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get donation info: %w", err)
	}
	return d, nil
}

func (s *DonationStore) Create(ctx context.Context, in *models.DonationInfo) (*models.DonationInfo, error) {
	if err := ensureNoRow(ctx, s.db, "donation_info"); err != nil {
		return nil, err
	}
	created, err := scanDonation(s.db.QueryRowContext(ctx, `
		INSERT INTO donation_info (bank_name, bank_account_name, bank_account_number, bank_branch,
			bank_routing_number, bkash_number, nagad_number, rocket_number, other_payment_info,
			donation_note, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+donationColumns,
		in.BankName, in.BankAccountName, in.BankAccountNumber, in.BankBranch,
		in.BankRoutingNumber, in.BkashNumber, in.NagadNumber, in.RocketNumber, in.OtherPaymentInfo,
		in.DonationNote, in.IsActive,
	))
	if isUniqueViolation(err, "donation_info_singleton_key") {
		return nil, ErrSingletonExists
	}
	if err != nil {
		return nil, fmt.Errorf("create donation info: %w", err)
	}
	return created, nil
}

func (s *DonationStore) Update(ctx context.Context, in *models.DonationInfo) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE donation_info SET bank_name = $1, bank_account_name = $2, bank_account_number = $3,
			bank_branch = $4, bank_routing_number = $5, bkash_number = $6, nagad_number = $7,
			rocket_number = $8, other_payment_info = $9, donation_note = $10, is_active = $11,
			updated_at = NOW()
		WHERE id = $12`,
		in.BankName, in.BankAccountName, in.BankAccountNumber, in.BankBranch,
		in.BankRoutingNumber, in.BkashNumber, in.NagadNumber, in.RocketNumber, in.OtherPaymentInfo,
		in.DonationNote, in.IsActive, in.ID,
	)
	if err != nil {
		return fmt.Errorf("update donation info: %w", err)
	}
	return rowsAffected(res)
}

// ensureNoRow is the existence check for singleton tables. The unique
// singleton column catches the race between two concurrent creates.
func ensureNoRow(ctx context.Context, db *sql.DB, table string) error {
	var exists bool
	if err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+`)`).Scan(&exists); err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if exists {
		return ErrSingletonExists
	}
	return nil
}
