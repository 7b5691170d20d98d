package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;autoUpdateTime" json:"updated_at"`
}

// assignID gives a row an application-generated UUID so inserts do not
// depend on a database-side uuid extension.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(_ *gorm.DB) error             { assignID(&u.ID); return nil }
func (r *Recipe) BeforeCreate(_ *gorm.DB) error           { assignID(&r.ID); return nil }
func (t *RecipeDietaryTag) BeforeCreate(_ *gorm.DB) error { assignID(&t.ID); return nil }
func (i *Ingredient) BeforeCreate(_ *gorm.DB) error       { assignID(&i.ID); return nil }
func (i *Instruction) BeforeCreate(_ *gorm.DB) error      { assignID(&i.ID); return nil }
func (r *Review) BeforeCreate(_ *gorm.DB) error           { assignID(&r.ID); return nil }
func (l *RecipeLike) BeforeCreate(_ *gorm.DB) error       { assignID(&l.ID); return nil }
func (s *RecipeSave) BeforeCreate(_ *gorm.DB) error       { assignID(&s.ID); return nil }
func (f *UserFollow) BeforeCreate(_ *gorm.DB) error       { assignID(&f.ID); return nil }
