package store

import (
	"database/sql"

	"durgamondir/internal/models"
)

// Stores bundles one repository per entity over a shared connection pool.
type Stores struct {
	Users      *UserStore
	Pages      *PageStore
	Events     *EventStore
	Albums     *AlbumStore
	Photos     *PhotoStore
	Gallery    *GalleryStore
	Committee  *MemberStore
	Sangha     *MemberStore
	Countdowns *CountdownStore
	PujaDays   *PujaDayStore
	Slides     *SlideStore
	Settings   *SiteSettingsStore
	Donation   *DonationStore
	Contacts   *ContactStore
	Media      *MediaStore
}

func New(db *sql.DB) *Stores {
	return &Stores{
		Users:      NewUserStore(db),
		Pages:      NewPageStore(db),
		Events:     NewEventStore(db),
		Albums:     NewAlbumStore(db),
		Photos:     NewPhotoStore(db),
		Gallery:    NewGalleryStore(db),
		Committee:  NewMemberStore(db, models.DirectoryCommittee),
		Sangha:     NewMemberStore(db, models.DirectorySangha),
		Countdowns: NewCountdownStore(db),
		PujaDays:   NewPujaDayStore(db),
		Slides:     NewSlideStore(db),
		Settings:   NewSiteSettingsStore(db),
		Donation:   NewDonationStore(db),
		Contacts:   NewContactStore(db),
		Media:      NewMediaStore(db),
	}
}

// Members returns the store for a directory.
func (s *Stores) Members(dir models.Directory) *MemberStore {
	if dir == models.DirectorySangha {
		return s.Sangha
	}
	return s.Committee
}
