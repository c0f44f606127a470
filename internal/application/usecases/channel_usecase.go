package usecases

import (
	"context"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/PavaniTiago/beta-attribution-api/internal/domain/repositories"
	"github.com/google/uuid"
)

// DefaultChannelDefs é o conjunto fixo de canais criados na inicialização de
// um projeto. O pipeline de ingestão resolve UTM source/medium para esses
// nomes.
var DefaultChannelDefs = []entities.Channel{
	{Name: "Organic Search", Category: entities.ChannelCategoryOrganic, Source: "google", Medium: "organic"},
	{Name: "Paid Search", Category: entities.ChannelCategoryPaid, Source: "google", Medium: "cpc"},
	{Name: "Social Media", Category: entities.ChannelCategorySocial, Source: "facebook", Medium: "social"},
	{Name: "Paid Social", Category: entities.ChannelCategoryPaid, Source: "facebook", Medium: "paid_social"},
	{Name: "Email", Category: entities.ChannelCategoryEmail, Source: "newsletter", Medium: "email"},
	{Name: "Direct", Category: entities.ChannelCategoryDirect, Source: "direct", Medium: "none"},
	{Name: "Referral", Category: entities.ChannelCategoryReferral, Source: "partner", Medium: "referral"},
	{Name: "Display Ads", Category: entities.ChannelCategoryPaid, Source: "google", Medium: "display"},
}

type ChannelUseCase interface {
	CreateDefaultChannels(ctx context.Context, projectID uuid.UUID) ([]entities.Channel, error)
	GetChannels(ctx context.Context, projectID uuid.UUID) ([]entities.Channel, error)
}

type channelUseCase struct {
	channelRepo repositories.ChannelRepository
}

func NewChannelUseCase(channelRepo repositories.ChannelRepository) ChannelUseCase {
	return &channelUseCase{channelRepo}
}

// CreateDefaultChannels cria os canais padrão do projeto. Idempotente: se o
// projeto já tem canais, retorna o conjunto existente sem inserir nada.
func (uc *channelUseCase) CreateDefaultChannels(ctx context.Context, projectID uuid.UUID) ([]entities.Channel, error) {
	defs := make([]entities.Channel, len(DefaultChannelDefs))
	copy(defs, DefaultChannelDefs)

	return uc.channelRepo.BootstrapChannels(ctx, projectID, defs)
}

func (uc *channelUseCase) GetChannels(ctx context.Context, projectID uuid.UUID) ([]entities.Channel, error) {
	return uc.channelRepo.GetChannels(ctx, projectID)
}
