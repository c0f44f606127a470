package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepository implementa repositories.EventRepository em memória.
// Protegido por mutex porque o aggregator consulta de vários workers.
type fakeEventRepository struct {
	mu       sync.Mutex
	events   []entities.AttributionEvent
	lastFrom time.Time
	lastTo   time.Time
	err      error
}

func (f *fakeEventRepository) GetEventByID(ctx context.Context, eventID uuid.UUID) (*entities.AttributionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.events {
		if f.events[i].ID == eventID {
			return &f.events[i], nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepository) GetUserEvents(ctx context.Context, projectID uuid.UUID, userIdentifier string, from, to time.Time) ([]entities.AttributionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.lastFrom = from
	f.lastTo = to

	var result []entities.AttributionEvent
	for _, e := range f.events {
		if e.ProjectID == projectID && e.UserIdentifier == userIdentifier &&
			!e.OccurredAt.Before(from) && !e.OccurredAt.After(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeEventRepository) GetConversionEvents(ctx context.Context, projectID uuid.UUID, from, to time.Time) ([]entities.AttributionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var result []entities.AttributionEvent
	for _, e := range f.events {
		if e.ProjectID == projectID && e.IsConversion() &&
			!e.OccurredAt.Before(from) && !e.OccurredAt.After(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func makeEvent(projectID uuid.UUID, user string, eventType entities.EventType, occurredAt time.Time, value *float64) entities.AttributionEvent {
	channelID := uuid.New()
	return entities.AttributionEvent{
		ID:             uuid.New(),
		ProjectID:      projectID,
		UserIdentifier: user,
		ChannelID:      &channelID,
		EventType:      eventType,
		EventValue:     value,
		OccurredAt:     occurredAt,
	}
}

func TestAssembleJourneyOrdersAndTerminates(t *testing.T) {
	projectID := uuid.New()
	conversionAt := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	value := 150.0

	conversion := makeEvent(projectID, "user-1", entities.EventTypeConversion, conversionAt, &value)
	repo := &fakeEventRepository{events: []entities.AttributionEvent{
		// Fora de ordem de propósito - a montagem deve ordenar
		makeEvent(projectID, "user-1", entities.EventTypePageView, conversionAt.Add(-2*time.Hour), nil),
		conversion,
		makeEvent(projectID, "user-1", entities.EventTypePageView, conversionAt.Add(-48*time.Hour), nil),
		// De outro usuário - não entra
		makeEvent(projectID, "user-2", entities.EventTypePageView, conversionAt.Add(-time.Hour), nil),
	}}

	uc := NewJourneyUseCase(repo)
	journey, err := uc.AssembleJourney(context.Background(), &conversion, 30*24*time.Hour)
	require.NoError(t, err)

	require.Equal(t, 3, journey.Len())
	assert.Equal(t, "user-1", journey.UserIdentifier)
	for i := 1; i < journey.Len(); i++ {
		assert.False(t, journey.Events[i].OccurredAt.Before(journey.Events[i-1].OccurredAt))
	}
	// A conversão é sempre o último elemento
	assert.Equal(t, conversion.ID, journey.Events[journey.Len()-1].ID)
}

func TestAssembleJourneyAppendsMissingConversion(t *testing.T) {
	projectID := uuid.New()
	conversionAt := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	value := 80.0

	// A conversão não está na lista que a janela retorna
	conversion := makeEvent(projectID, "user-1", entities.EventTypeConversion, conversionAt, &value)
	repo := &fakeEventRepository{events: []entities.AttributionEvent{
		makeEvent(projectID, "user-1", entities.EventTypePageView, conversionAt.Add(-time.Hour), nil),
	}}

	uc := NewJourneyUseCase(repo)
	journey, err := uc.AssembleJourney(context.Background(), &conversion, 30*24*time.Hour)
	require.NoError(t, err)

	require.Equal(t, 2, journey.Len())
	assert.Equal(t, conversion.ID, journey.Events[1].ID)
}

func TestAssembleJourneyLonelyConversion(t *testing.T) {
	projectID := uuid.New()
	value := 10.0
	conversion := makeEvent(projectID, "user-1", entities.EventTypeConversion, time.Now().UTC(), &value)

	uc := NewJourneyUseCase(&fakeEventRepository{})
	journey, err := uc.AssembleJourney(context.Background(), &conversion, 30*24*time.Hour)
	require.NoError(t, err)

	// Sem touchpoints anteriores a jornada ainda tem a própria conversão
	require.Equal(t, 1, journey.Len())
	assert.Equal(t, conversion.ID, journey.Events[0].ID)
}

func TestAssembleJourneyLookbackWindow(t *testing.T) {
	projectID := uuid.New()
	conversionAt := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	value := 10.0
	conversion := makeEvent(projectID, "user-1", entities.EventTypeConversion, conversionAt, &value)

	repo := &fakeEventRepository{events: []entities.AttributionEvent{
		// 31 dias antes - fora da janela de 30 dias
		makeEvent(projectID, "user-1", entities.EventTypePageView, conversionAt.Add(-31*24*time.Hour), nil),
		makeEvent(projectID, "user-1", entities.EventTypePageView, conversionAt.Add(-10*24*time.Hour), nil),
	}}

	uc := NewJourneyUseCase(repo)
	journey, err := uc.AssembleJourney(context.Background(), &conversion, 30*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, conversionAt.Add(-30*24*time.Hour), repo.lastFrom)
	assert.Equal(t, conversionAt, repo.lastTo)
	assert.Equal(t, 2, journey.Len())
}

func TestAssembleJourneyNilConversion(t *testing.T) {
	uc := NewJourneyUseCase(&fakeEventRepository{})

	_, err := uc.AssembleJourney(context.Background(), nil, 30*24*time.Hour)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetConversionEventNotFound(t *testing.T) {
	uc := NewJourneyUseCase(&fakeEventRepository{})

	_, err := uc.GetConversionEvent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}
