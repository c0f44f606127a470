package entities

import (
	"time"

	"github.com/google/uuid"
)

// ChannelCategory classifica a origem de marketing de um canal
type ChannelCategory string

const (
	ChannelCategoryOrganic  ChannelCategory = "organic"
	ChannelCategoryPaid     ChannelCategory = "paid"
	ChannelCategorySocial   ChannelCategory = "social"
	ChannelCategoryEmail    ChannelCategory = "email"
	ChannelCategoryDirect   ChannelCategory = "direct"
	ChannelCategoryReferral ChannelCategory = "referral"
	ChannelCategoryOther    ChannelCategory = "other"
)

// Channel representa uma combinação de source/medium/campaign de marketing.
// O par (project_id, name) é único - ver migrations.
type Channel struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;column:id"`
	ProjectID uuid.UUID       `json:"project_id" gorm:"type:uuid;column:project_id"`
	Name      string          `json:"name" gorm:"column:name"`
	Category  ChannelCategory `json:"category" gorm:"column:category"`
	Source    string          `json:"source" gorm:"column:source"`
	Medium    string          `json:"medium" gorm:"column:medium"`
	Campaign  *string         `json:"campaign,omitempty" gorm:"column:campaign"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Channel) TableName() string {
	return "channels"
}
