package models

type Title struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:150;not null"`
	Year        int    `json:"year" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	CategoryID  int64  `json:"-" gorm:"not null;index"`

	// Computed per read as AVG of review scores; never stored.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// Associations. The category row is protected: it cannot be deleted
	// while titles reference it.
	Category Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT;"`
	Genres   []Genre  `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
