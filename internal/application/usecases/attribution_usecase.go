package usecases

import (
	"errors"
	"fmt"
	"math"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/google/uuid"
)

var (
	// ErrInvalidJourney indica jornada vazia ou conversão ausente da jornada
	ErrInvalidJourney = errors.New("invalid journey")
	// ErrInvalidValue indica valor de conversão negativo
	ErrInvalidValue = errors.New("invalid conversion value")
	// ErrInvalidModel indica um modelo de atribuição desconhecido
	ErrInvalidModel = errors.New("invalid attribution model")
)

// TimeDecayHalfLifeHours é a meia-vida do modelo time_decay: o peso de um
// touchpoint cai pela metade a cada 7 dias antes da conversão
const TimeDecayHalfLifeHours = 168.0

// AttributionUseCase é o calculador de atribuição. Calculate é uma função
// pura: sem estado, sem relógio, sem aleatoriedade - entradas idênticas
// produzem saídas idênticas.
type AttributionUseCase interface {
	Calculate(journey entities.Journey, conversionEventID uuid.UUID, model entities.AttributionModel) ([]entities.TouchpointResult, error)
}

type attributionUseCase struct{}

func NewAttributionUseCase() AttributionUseCase {
	return &attributionUseCase{}
}

// Calculate distribui o crédito da conversão entre os eventos da jornada
// conforme o modelo. A soma dos weights é sempre 1.0 e a soma dos
// attributed_values é exatamente o valor da conversão (o resíduo de
// arredondamento em float é somado ao último touchpoint).
func (uc *attributionUseCase) Calculate(journey entities.Journey, conversionEventID uuid.UUID, model entities.AttributionModel) ([]entities.TouchpointResult, error) {
	n := journey.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: journey is empty", ErrInvalidJourney)
	}

	convIdx := journey.IndexOf(conversionEventID)
	if convIdx == -1 {
		return nil, fmt.Errorf("%w: conversion event %s not found in journey", ErrInvalidJourney, conversionEventID)
	}

	conversion := journey.Events[convIdx]
	value := conversion.Value()
	if value < 0 {
		return nil, fmt.Errorf("%w: conversion value %.2f is negative", ErrInvalidValue, value)
	}

	// Horas entre cada evento e a conversão (0 para a própria conversão)
	hoursBefore := make([]float64, n)
	for i := range journey.Events {
		dh := conversion.OccurredAt.Sub(journey.Events[i].OccurredAt).Hours()
		if dh < 0 {
			dh = 0
		}
		hoursBefore[i] = dh
	}

	var weights []float64
	switch model {
	case entities.ModelFirstTouch:
		weights = firstTouchWeights(n)
	case entities.ModelLastTouch:
		weights = lastTouchWeights(n)
	case entities.ModelLinear:
		weights = linearWeights(n)
	case entities.ModelTimeDecay:
		weights = timeDecayWeights(hoursBefore)
	case entities.ModelUShaped:
		weights = uShapedWeights(n)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidModel, model)
	}

	results := make([]entities.TouchpointResult, n)
	attributed := 0.0
	for i := range journey.Events {
		results[i] = entities.TouchpointResult{
			EventID:               journey.Events[i].ID,
			ChannelID:             journey.Events[i].ChannelID,
			Position:              i + 1,
			Weight:                weights[i],
			AttributedValue:       weights[i] * value,
			HoursBeforeConversion: hoursBefore[i],
		}
		attributed += results[i].AttributedValue
	}

	// Corrige o resíduo de arredondamento no último touchpoint para que a
	// soma dos valores atribuídos feche exatamente com o valor da conversão
	if residual := value - attributed; residual != 0 {
		results[n-1].AttributedValue += residual
	}

	return results, nil
}

// firstTouchWeights dá todo o crédito ao primeiro touchpoint
func firstTouchWeights(n int) []float64 {
	weights := make([]float64, n)
	weights[0] = 1.0
	return weights
}

// lastTouchWeights dá todo o crédito ao último touchpoint
func lastTouchWeights(n int) []float64 {
	weights := make([]float64, n)
	weights[n-1] = 1.0
	return weights
}

// linearWeights divide o crédito igualmente entre todos os touchpoints
func linearWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return weights
}

// timeDecayWeights aplica decaimento exponencial com meia-vida de 7 dias:
// raw[i] = 2^(-Δh[i]/168), normalizado para somar 1. Touchpoints mais
// antigos nunca pesam mais que os mais recentes.
func timeDecayWeights(hoursBefore []float64) []float64 {
	weights := make([]float64, len(hoursBefore))
	sum := 0.0
	for i, dh := range hoursBefore {
		weights[i] = math.Pow(2, -dh/TimeDecayHalfLifeHours)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// uShapedWeights dá 40% ao primeiro e ao último touchpoint e divide os 20%
// restantes entre os do meio. Degenera para 1.0 e 0.5/0.5 quando n < 3.
func uShapedWeights(n int) []float64 {
	weights := make([]float64, n)
	switch {
	case n == 1:
		weights[0] = 1.0
	case n == 2:
		weights[0] = 0.5
		weights[1] = 0.5
	default:
		weights[0] = 0.40
		weights[n-1] = 0.40
		middle := 0.20 / float64(n-2)
		for i := 1; i < n-1; i++ {
			weights[i] = middle
		}
	}
	return weights
}
