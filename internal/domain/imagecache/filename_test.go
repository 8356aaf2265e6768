package imagecache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

func TestFileNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"head", imagecache.HeadFileName("James T. Kirk"), "James_T._Kirk_Head.png"},
		{"body", imagecache.BodyFileName("James T. Kirk"), "James_T._Kirk.png"},
		{"ship", imagecache.ShipFileName("U.S.S. Enterprise-D"), "U.S.S._Enterprise-D.png"},
		{"item", imagecache.ItemFileName("Quark's Tricorder", "Super Rare"), "QuarksTricorderSuperRare.png"},
		{"item basic", imagecache.ItemFileName("Phaser", "Basic"), "PhaserBasic.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
