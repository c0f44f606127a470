package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/PavaniTiago/beta-attribution-api/internal/domain/repositories"
	"github.com/google/uuid"
)

// ErrEventNotFound indica que o evento de conversão referenciado não existe
var ErrEventNotFound = errors.New("event not found")

// DefaultLookbackDays é a janela de lookback padrão dos relatórios
const DefaultLookbackDays = 30

// JourneyUseCase monta a jornada de um usuário: os touchpoints dentro da
// janela de lookback, em ordem cronológica, terminados pelo evento de
// conversão.
type JourneyUseCase interface {
	AssembleJourney(ctx context.Context, conversion *entities.AttributionEvent, lookback time.Duration) (entities.Journey, error)
	GetConversionEvent(ctx context.Context, eventID uuid.UUID) (*entities.AttributionEvent, error)
}

type journeyUseCase struct {
	eventRepo repositories.EventRepository
}

func NewJourneyUseCase(eventRepo repositories.EventRepository) JourneyUseCase {
	return &journeyUseCase{eventRepo}
}

func (uc *journeyUseCase) GetConversionEvent(ctx context.Context, eventID uuid.UUID) (*entities.AttributionEvent, error) {
	event, err := uc.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	return event, nil
}

// AssembleJourney busca os eventos do usuário em
// [conversão - lookback, conversão], ordena por occurred_at ascendente e
// garante a conversão como último elemento (anexando se a consulta não a
// incluiu). A jornada retornada sempre tem pelo menos um elemento - a
// própria conversão.
func (uc *journeyUseCase) AssembleJourney(ctx context.Context, conversion *entities.AttributionEvent, lookback time.Duration) (entities.Journey, error) {
	if conversion == nil {
		return entities.Journey{}, fmt.Errorf("%w: nil conversion event", ErrEventNotFound)
	}
	if lookback <= 0 {
		lookback = DefaultLookbackDays * 24 * time.Hour
	}

	from := conversion.OccurredAt.Add(-lookback)
	events, err := uc.eventRepo.GetUserEvents(ctx, conversion.ProjectID, conversion.UserIdentifier, from, conversion.OccurredAt)
	if err != nil {
		return entities.Journey{}, err
	}

	// O repositório já ordena, mas a ordem cronológica é um invariante da
	// jornada - não confiamos no acaso
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})

	// Remove a conversão de onde quer que a ordenação a tenha deixado
	// (timestamps iguais) e recoloca como último elemento
	touchpoints := events[:0]
	for i := range events {
		if events[i].ID != conversion.ID {
			touchpoints = append(touchpoints, events[i])
		}
	}
	touchpoints = append(touchpoints, *conversion)

	return entities.Journey{
		UserIdentifier: conversion.UserIdentifier,
		Events:         touchpoints,
	}, nil
}
