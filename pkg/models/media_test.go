package models

import "testing"

func TestMediaTypeForPath(t *testing.T) {
	tests := []struct {
		path     string
		wantType MediaType
		wantOK   bool
	}{
		{"/camera/clip.mp4", MediaVideo, true},
		{"/camera/clip.mov", MediaVideo, true},
		{"/camera/clip.mkv", MediaVideo, true},
		{"/camera/clip.3gp", MediaVideo, true},
		{"/camera/photo.jpg", MediaPhoto, true},
		{"/camera/photo.jpeg", MediaPhoto, true},
		{"/camera/photo.heic", MediaPhoto, true},
		{"/camera/photo.tiff", MediaPhoto, true},
		// Classification is case-insensitive
		{"/camera/CLIP.MOV", MediaVideo, true},
		{"/camera/IMG_0001.JPG", MediaPhoto, true},
		{"/camera/Photo.HeIc", MediaPhoto, true},
		// Unknown extensions are not media
		{"/camera/notes.txt", "", false},
		{"/camera/thumbs.db", "", false},
		{"/camera/noextension", "", false},
		{"/camera/archive.mp4.bak", "", false},
	}

	for _, tt := range tests {
		gotType, gotOK := MediaTypeForPath(tt.path)
		if gotType != tt.wantType || gotOK != tt.wantOK {
			t.Errorf("MediaTypeForPath(%q) = (%q, %t), want (%q, %t)",
				tt.path, gotType, gotOK, tt.wantType, tt.wantOK)
		}
	}
}

func TestMediaFileExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/camera/clip.mp4", ".mp4"},
		{"/camera/IMG_0001.JPG", ".JPG"},
		{"/camera/Photo.HeIc", ".HeIc"},
	}

	for _, tt := range tests {
		f := MediaFile{SourcePath: tt.path}
		if got := f.Ext(); got != tt.want {
			t.Errorf("Ext() for %q = %q, want %q", tt.path, got, tt.want)
		}
	}
}
