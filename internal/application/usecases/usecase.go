package usecases

// UseCases agrupa os casos de uso do serviço de atribuição para injeção nos
// handlers HTTP
type UseCases struct {
	Channel     ChannelUseCase
	Journey     JourneyUseCase
	Attribution AttributionUseCase
	Report      ReportUseCase
}
