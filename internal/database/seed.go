package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type seedPage struct {
	title, slug, content string
	menuOrder            int
}

var seedPages = []seedPage{
	{
		title: "শ্রীশ্রী গুরুদেব",
		slug:  "sri-sri-gurudev",
		content: "শ্রীশ্রীঠাকুর রামচন্দ্রদেব হইলেন এই আশ্রমের অভিভাবক।\n\n" +
			"অনিত্য সংসারের ভ্রান্ত আসক্তি হইতে উদ্ধারের পথে টানিয়া লইয়াছেন।",
		menuOrder: 1,
	},
	{
		title: "মন্দিরের ইতিহাস",
		slug:  "temple-history",
		content: "আমাদের মন্দিরের একটি সমৃদ্ধ ইতিহাস রয়েছে যা শতাব্দীর পর শতাব্দী ধরে বিস্তৃত।\n\n" +
			"মন্দিরটি স্থানীয় সম্প্রদায়ের দ্বারা প্রতিষ্ঠিত হয়েছিল।",
		menuOrder: 2,
	},
	{
		title: "সেবা কার্যক্রম",
		slug:  "seva-programs",
		content: "আমাদের মন্দিরে বিভিন্ন ধরনের সেবা কার্যক্রম পরিচালিত হয়:\n\n" +
			"১. দৈনিক পূজা ও আরতি\n২. ধর্মীয় শিক্ষা কার্যক্রম\n৩. দাতব্য কার্যক্রম\n",
		menuOrder: 3,
	},
}

type seedEvent struct {
	title, description, location string
	in                           time.Duration
	featured                     bool
}

var seedEvents = []seedEvent{
	{"দুর্গা পূজা", "আমাদের মন্দিরে পালিত হবে পবিত্র দুর্গা পূজা। পাঁচদিনব্যাপী এই উৎসবে সকলকে স্বাগত জানানো হচ্ছে।", "মূল মন্দির প্রাঙ্গণ", 30 * 24 * time.Hour, true},
	{"সাপ্তাহিক সৎসঙ্গ", "প্রতি শুক্রবার সন্ধ্যায় অনুষ্ঠিত হয় আধ্যাত্মিক আলোচনা ও হরিনাম সংকীর্তন।", "সৎসঙ্গ হল", 5 * 24 * time.Hour, false},
	{"গীতা পাঠ অনুষ্ঠান", "ভগবদ্গীতার নিয়মিত পাঠ ও আলোচনা। সবার জন্য উন্মুক্ত।", "পাঠাগার", 7 * 24 * time.Hour, false},
}

type seedMember struct {
	name, position, phone string
}

var seedCommittee = []seedMember{
	{"শ্রী রামেশ চন্দ্র শর্মা", "সভাপতি", "০১৭১১-২৩৪৫৬১"},
	{"শ্রী সুরেশ কুমার দাস", "সহ-সভাপতি", "০১৮১২-৩৪৫৬৭২"},
	{"শ্রী অমিত কুমার রায়", "সাধারণ সম্পাদক", "০১৯১৩-৪৫৬৭৮৩"},
	{"শ্রী বিমল চন্দ্র ঘোষ", "কোষাধ্যক্ষ", "০১৬১৪-৫৬৭৮৯৪"},
}

var seedSangha = []seedMember{
	{"শ্রী কৃষ্ণচন্দ্র ভট্টাচার্য", "মুখ্য পুরোহিত", "০১৯২১-১২৩৪৫৬"},
	{"শ্রী গোপাল কৃষ্ণ গোস্বামী", "সহকারী পুরোহিত", "০১৮২২-২৩৪৫৬৭"},
	{"শ্রী রাধিকাপ্রসাদ দাস", "কীর্তনীয়া", "০১৭২৩-৩৪৫৬৭৮"},
}

// Seed populates the database with the initial staff account and sample
// temple content. Each section only inserts when its table is empty, so
// Seed is safe to call on every startup.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	adminID, err := seedAdmin(db, adminEmail, adminPassword)
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func(*sql.Tx) error
	}{
		{"site settings", seedSiteSettings},
		{"pages", func(tx *sql.Tx) error { return seedMenuPages(tx, adminID) }},
		{"events", seedSampleEvents},
		{"committee", func(tx *sql.Tx) error { return seedMembers(tx, "committee_members", seedCommittee) }},
		{"durga sangha", func(tx *sql.Tx) error { return seedMembers(tx, "durga_sangha_members", seedSangha) }},
		{"countdown", seedCountdown},
		{"donation info", seedDonationInfo},
	}

	for _, step := range steps {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("seed begin %s: %w", step.name, err)
		}
		if err := step.fn(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("seed commit %s: %w", step.name, err)
		}
	}

	return nil
}

// EnsureAdmin creates the initial staff account when no staff user exists.
// Production startups call it instead of Seed.
func EnsureAdmin(db *sql.DB, email, password string) error {
	_, err := seedAdmin(db, email, password)
	return err
}

// seedAdmin returns the ID of the first staff user, creating one from the
// configured credentials when the users table is empty. 2FA is left
// disabled so the admin is prompted to enrol on first login.
func seedAdmin(db *sql.DB, email, password string) (string, error) {
	var id string
	err := db.QueryRow("SELECT id FROM users WHERE is_staff ORDER BY created_at LIMIT 1").Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("seed check users: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("seed bcrypt: %w", err)
	}

	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, is_staff, totp_enabled)
		VALUES ($1, $2, $3, TRUE, FALSE)
		RETURNING id
	`, email, string(hash), "Admin").Scan(&id)
	if err != nil {
		return "", fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user", "email", email)
	return id, nil
}

func isEmpty(tx *sql.Tx, table string) (bool, error) {
	var exists bool
	if err := tx.QueryRow("SELECT EXISTS (SELECT 1 FROM " + table + ")").Scan(&exists); err != nil {
		return false, err
	}
	return !exists, nil
}

func seedSiteSettings(tx *sql.Tx) error {
	if empty, err := isEmpty(tx, "site_settings"); err != nil || !empty {
		return err
	}
	_, err := tx.Exec(`
		INSERT INTO site_settings (site_title, site_tagline, contact_email, contact_phone, address, footer_text)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		"শ্রীশ্রী দুর্গা মন্দির",
		"হরে কৃষ্ণ হরে কৃষ্ণ কৃষ্ণ কৃষ্ণ হরে হরে। হরে রাম হরে রাম রাম রাম হরে হরে।।",
		"contact@durgamondir.com",
		"+88012345678",
		"দুর্গা মন্দির, ঢাকা, বাংলাদেশ",
		"সর্ব্বপ্রথমে সেই শ্রীগুরুর শ্রীপাদপদ্মে সাষ্টাঙ্গে প্রণিপাত করিতেছি।",
	)
	return err
}

func seedMenuPages(tx *sql.Tx, authorID string) error {
	if empty, err := isEmpty(tx, "pages"); err != nil || !empty {
		return err
	}
	for _, p := range seedPages {
		_, err := tx.Exec(`
			INSERT INTO pages (title, slug, content, is_published, show_in_menu, menu_order, author_id)
			VALUES ($1, $2, $3, TRUE, TRUE, $4, $5)
		`, p.title, p.slug, p.content, p.menuOrder, authorID)
		if err != nil {
			return fmt.Errorf("insert page %s: %w", p.slug, err)
		}
	}
	return nil
}

func seedSampleEvents(tx *sql.Tx) error {
	if empty, err := isEmpty(tx, "events"); err != nil || !empty {
		return err
	}
	now := time.Now()
	for _, e := range seedEvents {
		_, err := tx.Exec(`
			INSERT INTO events (title, description, date_time, location, is_featured, is_active)
			VALUES ($1, $2, $3, $4, $5, TRUE)
		`, e.title, e.description, now.Add(e.in), e.location, e.featured)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return nil
}

func seedMembers(tx *sql.Tx, table string, members []seedMember) error {
	if empty, err := isEmpty(tx, table); err != nil || !empty {
		return err
	}
	for i, m := range members {
		_, err := tx.Exec(
			"INSERT INTO "+table+" (name, position, phone, sort_order) VALUES ($1, $2, $3, $4)",
			m.name, m.position, m.phone, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert member: %w", err)
		}
	}
	return nil
}

func seedCountdown(tx *sql.Tx) error {
	if empty, err := isEmpty(tx, "countdowns"); err != nil || !empty {
		return err
	}
	_, err := tx.Exec(
		"INSERT INTO countdowns (target_date) VALUES ($1)",
		time.Now().Add(30*24*time.Hour),
	)
	return err
}

func seedDonationInfo(tx *sql.Tx) error {
	if empty, err := isEmpty(tx, "donation_info"); err != nil || !empty {
		return err
	}
	_, err := tx.Exec(`
		INSERT INTO donation_info (bkash_number, donation_note)
		VALUES ($1, $2)
	`, "01711-000000", "আপনার দান মন্দিরের সেবা কার্যক্রমে ব্যয় করা হবে।")
	return err
}
