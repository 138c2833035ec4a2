package models

// ArtistProfile carries the artist's public page and the cached review
// aggregate. Rating and ReviewCount are never patched incrementally; they are
// recomputed from the full review set on every review write.
type ArtistProfile struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null"`
	DisplayName string `gorm:"not null"`
	Bio         string
	City        string
	Specialty   string // e.g. "portrait", "character design"
	IsPublic    bool   `gorm:"default:true"`

	Rating      float64 `gorm:"default:0"`
	ReviewCount int64   `gorm:"default:0"`

	User User `gorm:"foreignKey:UserID"`
}
