package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	tests := []struct {
		in        string
		class     string
		plural    string
		field     string
		file      string
		title     string
		constName string
	}{
		{"users", "User", "Users", "users", "users", "Users", "USERS"},
		{"album_tracks", "AlbumTrack", "AlbumTracks", "albumTracks", "album-tracks", "Album Tracks", "ALBUM_TRACKS"},
		{"AlbumTracks", "AlbumTrack", "AlbumTracks", "albumTracks", "album-tracks", "Album Tracks", "ALBUM_TRACKS"},
		{"categories", "Category", "Categories", "categories", "categories", "Categories", "CATEGORIES"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.class, ClassName(tt.in))
			assert.Equal(t, tt.plural, PluralClassName(tt.in))
			assert.Equal(t, tt.field, FieldName(tt.in))
			assert.Equal(t, tt.file, FileName(tt.in))
			assert.Equal(t, tt.title, Title(tt.in))
			assert.Equal(t, tt.constName, ConstName(tt.in))
		})
	}
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "album", Singular("albums"))
	assert.Equal(t, "person", Singular("people"))
}
