package models

import "testing"

func TestMediaIsImage(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/webp", true},
		{"IMAGE/PNG", true},
		{"image/svg+xml; charset=utf-8", true},
		{"application/pdf", false},
		{"video/mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			m := &Media{ContentType: tt.contentType}
			if got := m.IsImage(); got != tt.want {
				t.Errorf("IsImage(%q): got %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestMediaPreviewKeyAndFolder(t *testing.T) {
	thumb := "gallery/photos/thumbs/a1.jpg"
	empty := ""

	tests := []struct {
		name        string
		media       Media
		wantPreview string
		wantFolder  string
	}{
		{"photo with thumbnail", Media{Key: "gallery/photos/a1.jpg", ThumbKey: &thumb}, thumb, "gallery/photos"},
		{"slide", Media{Key: "slides/b2.jpg"}, "slides/b2.jpg", "slides"},
		{"empty thumbnail", Media{Key: "c3.png", ThumbKey: &empty}, "c3.png", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.media.PreviewKey(); got != tt.wantPreview {
				t.Errorf("PreviewKey: got %q, want %q", got, tt.wantPreview)
			}
			if got := tt.media.Folder(); got != tt.wantFolder {
				t.Errorf("Folder: got %q, want %q", got, tt.wantFolder)
			}
		})
	}
}

func TestMediaHumanSize(t *testing.T) {
	tests := []struct {
		sizeBytes int64
		want      string
	}{
		{0, "০ B"},
		{1023, "১০২৩ B"},
		{1024, "১ KB"},
		{1536, "২ KB"},
		{1048576, "১.০ MB"},
		{2411724, "২.৩ MB"},
	}

	for _, tt := range tests {
		m := &Media{SizeBytes: tt.sizeBytes}
		if got := m.HumanSize(); got != tt.want {
			t.Errorf("HumanSize(%d): got %q, want %q", tt.sizeBytes, got, tt.want)
		}
	}
}
