// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"durgamondir/internal/models"
	"durgamondir/internal/render"
	"durgamondir/internal/store"
)

func (in *settingsInput) readForm(f *formReader) {
	in.SiteTitle = f.text("site_title")
	in.Tagline = f.text("site_tagline")
	in.Description = f.text("site_description")
	in.Logo = f.text("logo")
	in.Favicon = f.text("favicon")
	in.ContactEmail = f.text("contact_email")
	in.ContactPhone = f.text("contact_phone")
	in.Address = f.text("address")
	in.FacebookURL = f.text("facebook_url")
	in.YoutubeURL = f.text("youtube_url")
	in.GoogleMapURL = f.text("google_map_url")
	in.FooterText = f.text("footer_text")
	in.PrasadHallImage = f.text("prasad_hall_image")
}

func (in *donationInput) readForm(f *formReader) {
	in.BankName = f.text("bank_name")
	in.BankAccountName = f.text("bank_account_name")
	in.BankAccountNumber = f.text("bank_account_number")
	in.BankBranch = f.text("bank_branch")
	in.BankRoutingNumber = f.text("bank_routing_number")
	in.BkashNumber = f.text("bkash_number")
	in.NagadNumber = f.text("nagad_number")
	in.RocketNumber = f.text("rocket_number")
	in.OtherPaymentInfo = f.text("other_payment_info")
	in.DonationNote = f.text("donation_note")
	in.IsActive = f.checkbox("is_active")
}

// currentSettings returns the stored settings as form values, or the
// defaults while the table is empty.
func (a *Admin) currentSettings(ctx context.Context) *settingsInput {
	s, err := a.stores.Settings.Get(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("load site settings failed", "error", err)
		}
		return &settingsInput{SiteTitle: models.DefaultSiteTitle}
	}
	return newSettingsInput(s)
}

func (a *Admin) currentDonation(ctx context.Context) *donationInput {
	d, err := a.stores.Donation.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("load donation info failed", "error", err)
		}
		return &donationInput{IsActive: true}
	}
	return newDonationInput(d)
}

// settingsForm renders both singleton forms on one page.
func (a *Admin) settingsForm(w http.ResponseWriter, r *http.Request, settings *settingsInput, donation *donationInput, err error) {
	var flashes []render.Flash
	if err == nil && r.URL.Query().Get("saved") != "" {
		flashes = append(flashes, render.Flash{Type: "success", Message: "পরিবর্তন সংরক্ষিত হয়েছে।"})
	}

	showForm(w, r, a.renderer, "settings", &render.PageData{
		Title:   "Settings",
		Section: "settings",
		Flashes: flashes,
		Data: map[string]any{
			"Settings": settings,
			"Donation": donation,
		},
	}, err)
}

// SettingsPage renders the site settings and donation forms.
func (a *Admin) SettingsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a.settingsForm(w, r, a.currentSettings(ctx), a.currentDonation(ctx), nil)
}

// SettingsSave handles the site settings form submission.
func (a *Admin) SettingsSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in settingsInput
	if err := bindForm(r, a.renderer.Location(), &in); err != nil {
		a.settingsForm(w, r, &in, a.currentDonation(ctx), err)
		return
	}
	if _, _, err := a.saveSettings(ctx, &in); err != nil {
		a.settingsForm(w, r, &in, a.currentDonation(ctx), err)
		return
	}
	http.Redirect(w, r, "/admin/settings?saved=1", http.StatusSeeOther)
}

// DonationSave handles the donation details form submission.
func (a *Admin) DonationSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in donationInput
	if err := bindForm(r, a.renderer.Location(), &in); err != nil {
		a.settingsForm(w, r, a.currentSettings(ctx), &in, err)
		return
	}
	if _, _, err := a.saveDonation(ctx, &in); err != nil {
		a.settingsForm(w, r, a.currentSettings(ctx), &in, err)
		return
	}
	http.Redirect(w, r, "/admin/settings?saved=1", http.StatusSeeOther)
}
