package entity

// Sprite names one image of the fixed sprite set. Sprites are cosmetic; they
// never affect physics or hit radius.
type Sprite int

const (
	SpriteNone Sprite = iota
	SpriteCheese
	SpriteEarth
	SpriteLuna
	SpriteMagma
	SpriteSaturn
	SpriteVenus
	SpriteSun
)

// PlanetSprites is the palette assigned at random to non-sun planets
var PlanetSprites = []Sprite{
	SpriteCheese,
	SpriteEarth,
	SpriteLuna,
	SpriteMagma,
	SpriteSaturn,
	SpriteVenus,
}

var spriteNames = map[Sprite]string{
	SpriteNone:   "none",
	SpriteCheese: "cheese",
	SpriteEarth:  "earth",
	SpriteLuna:   "luna",
	SpriteMagma:  "magma",
	SpriteSaturn: "saturn",
	SpriteVenus:  "venus",
	SpriteSun:    "sun",
}

func (s Sprite) String() string {
	if name, ok := spriteNames[s]; ok {
		return name
	}
	return "unknown"
}
