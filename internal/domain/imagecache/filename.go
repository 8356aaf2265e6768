package imagecache

import "strings"

// underscored replaces spaces with underscores, matching wiki page titles
func underscored(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// HeadFileName is the wiki file holding a crew member's portrait
func HeadFileName(name string) string {
	return underscored(name) + "_Head.png"
}

// BodyFileName is the wiki file holding a crew member's full-body image
func BodyFileName(name string) string {
	return underscored(name) + ".png"
}

// ShipFileName is the wiki file holding a ship image. Ship names are
// catalog-unique so no id suffix is needed.
func ShipFileName(name string) string {
	return underscored(name) + ".png"
}

// ItemFileName is the wiki file holding an item icon: name and rarity
// name concatenated, with spaces and apostrophes stripped.
func ItemFileName(name, rarityName string) string {
	fileName := name + rarityName + ".png"
	fileName = strings.ReplaceAll(fileName, " ", "")
	return strings.ReplaceAll(fileName, "'", "")
}
