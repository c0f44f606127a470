package entities

import (
	"github.com/google/uuid"
)

// Journey é a sequência cronológica de touchpoints de um usuário terminada
// pelo evento de conversão. Não é persistida - é montada sob demanda a partir
// dos eventos dentro da janela de lookback.
type Journey struct {
	UserIdentifier string             `json:"user_identifier"`
	Events         []AttributionEvent `json:"events"`
}

// Len retorna o número de eventos da jornada
func (j Journey) Len() int {
	return len(j.Events)
}

// IndexOf localiza um evento pelo id (-1 quando ausente)
func (j Journey) IndexOf(eventID uuid.UUID) int {
	for i := range j.Events {
		if j.Events[i].ID == eventID {
			return i
		}
	}
	return -1
}

// TouchpointResult é o resultado do cálculo de atribuição para um evento da
// jornada. Position é o rank cronológico começando em 1; a soma dos weights
// de uma jornada é sempre 1.0 e a soma dos attributed_values é o valor da
// conversão.
type TouchpointResult struct {
	EventID               uuid.UUID  `json:"event_id"`
	ChannelID             *uuid.UUID `json:"channel_id,omitempty"`
	Position              int        `json:"position"`
	Weight                float64    `json:"weight"`
	AttributedValue       float64    `json:"attributed_value"`
	HoursBeforeConversion float64    `json:"hours_before_conversion"`
}
