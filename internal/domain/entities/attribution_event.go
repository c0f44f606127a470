package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifica o tipo de ação registrada pelo pipeline de ingestão
type EventType string

const (
	EventTypePageView    EventType = "page_view"
	EventTypeProductView EventType = "product_view"
	EventTypeAddToCart   EventType = "add_to_cart"
	EventTypeConversion  EventType = "conversion"
	EventTypeCustom      EventType = "custom"
)

// AttributionEvent representa uma ação registrada de um usuário. Eventos são
// criados pelo pipeline de ingestão (fora deste serviço) e são imutáveis aqui.
// EventValue só carrega receita em eventos do tipo conversion.
type AttributionEvent struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;column:id"`
	ProjectID      uuid.UUID       `json:"project_id" gorm:"type:uuid;column:project_id"`
	UserIdentifier string          `json:"user_identifier" gorm:"column:user_identifier"`
	ChannelID      *uuid.UUID      `json:"channel_id,omitempty" gorm:"type:uuid;column:channel_id"`
	EventType      EventType       `json:"event_type" gorm:"column:event_type"`
	EventValue     *float64        `json:"event_value,omitempty" gorm:"column:event_value"`
	OccurredAt     time.Time       `json:"occurred_at" gorm:"column:occurred_at"`
	Metadata       json.RawMessage `json:"metadata,omitempty" gorm:"column:metadata;type:jsonb"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at"`

	Channel *Channel `json:"channel,omitempty" gorm:"foreignKey:ChannelID;references:ID"`
}

func (AttributionEvent) TableName() string {
	return "attribution_events"
}

// IsConversion indica se o evento é o evento terminal de uma jornada
func (e *AttributionEvent) IsConversion() bool {
	return e.EventType == EventTypeConversion
}

// Value retorna o valor monetário do evento (0 quando não informado)
func (e *AttributionEvent) Value() float64 {
	if e.EventValue == nil {
		return 0
	}
	return *e.EventValue
}
