package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/PavaniTiago/beta-attribution-api/internal/interfaces/http/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannelUseCase struct {
	channels      []entities.Channel
	lastProjectID uuid.UUID
}

func (f *fakeChannelUseCase) CreateDefaultChannels(ctx context.Context, projectID uuid.UUID) ([]entities.Channel, error) {
	f.lastProjectID = projectID
	return f.channels, nil
}

func (f *fakeChannelUseCase) GetChannels(ctx context.Context, projectID uuid.UUID) ([]entities.Channel, error) {
	f.lastProjectID = projectID
	return f.channels, nil
}

func setupAttributionApp(uc *fakeChannelUseCase) *fiber.App {
	app := fiber.New()
	h := handlers.NewAttributionHandler(uc)
	app.Post("/attribution/initialize", h.Initialize)
	app.Get("/attribution/channels", h.GetChannels)
	return app
}

func TestInitialize(t *testing.T) {
	projectID := uuid.New()
	uc := &fakeChannelUseCase{
		channels: []entities.Channel{
			{ID: uuid.New(), ProjectID: projectID, Name: "Direct"},
			{ID: uuid.New(), ProjectID: projectID, Name: "Email"},
		},
	}
	app := setupAttributionApp(uc)

	body := `{"project_id": "` + projectID.String() + `"}`
	resp, err := app.Test(httptestRequest("POST", "/attribution/initialize", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, projectID, uc.lastProjectID)

	var payload struct {
		Channels []entities.Channel `json:"channels"`
		Total    int                `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 2, payload.Total)
	assert.Len(t, payload.Channels, 2)
}

func TestInitializeInvalidProjectID(t *testing.T) {
	app := setupAttributionApp(&fakeChannelUseCase{})

	body := `{"project_id": "not-a-uuid"}`
	resp, err := app.Test(httptestRequest("POST", "/attribution/initialize", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetChannels(t *testing.T) {
	projectID := uuid.New()
	uc := &fakeChannelUseCase{
		channels: []entities.Channel{{ID: uuid.New(), ProjectID: projectID, Name: "Referral"}},
	}
	app := setupAttributionApp(uc)

	resp, err := app.Test(httptestRequest("GET", "/attribution/channels?project_id="+projectID.String(), ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, projectID, uc.lastProjectID)
}

func TestGetChannelsMissingProjectID(t *testing.T) {
	app := setupAttributionApp(&fakeChannelUseCase{})

	resp, err := app.Test(httptestRequest("GET", "/attribution/channels", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
