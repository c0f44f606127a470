package usecases

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/PavaniTiago/beta-attribution-api/internal/domain/repositories"
	"github.com/google/uuid"
)

var (
	// ErrReportNotFound indica que o relatório pedido não existe
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidDateRange indica um intervalo de datas inconsistente
	ErrInvalidDateRange = errors.New("invalid date range")
)

// UnattributedChannelName é o bucket dos eventos sem canal resolvido
const UnattributedChannelName = "(unattributed)"

// TopPathsLimit é quantas assinaturas de caminho o relatório retém
const TopPathsLimit = 10

// asyncReportTimeout limita a geração assíncrona em background
const asyncReportTimeout = 10 * time.Minute

// ReportInput são os parâmetros de uma execução de relatório
type ReportInput struct {
	ProjectID        uuid.UUID
	ReportType       entities.ReportType
	AttributionModel entities.AttributionModel
	StartDate        time.Time
	EndDate          time.Time
	LookbackDays     int
}

type ReportUseCase interface {
	GenerateReport(ctx context.Context, input ReportInput) (*entities.AttributionReport, error)
	GenerateReportAsync(ctx context.Context, input ReportInput) (*entities.AttributionReport, error)
	GetReport(ctx context.Context, reportID uuid.UUID) (*entities.AttributionReport, error)
	GetReports(ctx context.Context, projectID uuid.UUID, page, limit int, orderBy string) ([]entities.AttributionReport, int64, error)
}

type reportUseCase struct {
	eventRepo   repositories.EventRepository
	channelRepo repositories.ChannelRepository
	reportRepo  repositories.ReportRepository
	journeys    JourneyUseCase
	attribution AttributionUseCase
	workers     int
}

func NewReportUseCase(
	eventRepo repositories.EventRepository,
	channelRepo repositories.ChannelRepository,
	reportRepo repositories.ReportRepository,
	journeys JourneyUseCase,
	attribution AttributionUseCase,
) ReportUseCase {
	return &reportUseCase{
		eventRepo:   eventRepo,
		channelRepo: channelRepo,
		reportRepo:  reportRepo,
		journeys:    journeys,
		attribution: attribution,
		workers:     runtime.NumCPU(),
	}
}

// reportAccumulator guarda as somas parciais de um worker. Cada worker
// acumula em mapas locais e o merge acontece em um único ponto depois do
// wait - nada de mapa compartilhado disputado por lock durante o cálculo.
type reportAccumulator struct {
	revenueByChannel map[uuid.UUID]float64
	creditByChannel  map[uuid.UUID]float64
	pathCounts       map[string]int64
	totalRevenue     float64
	totalTouchpoints int64
	totalHours       float64
	processed        int64
	skipped          int64
}

func newReportAccumulator() *reportAccumulator {
	return &reportAccumulator{
		revenueByChannel: make(map[uuid.UUID]float64),
		creditByChannel:  make(map[uuid.UUID]float64),
		pathCounts:       make(map[string]int64),
	}
}

func (a *reportAccumulator) merge(other *reportAccumulator) {
	for id, v := range other.revenueByChannel {
		a.revenueByChannel[id] += v
	}
	for id, v := range other.creditByChannel {
		a.creditByChannel[id] += v
	}
	for path, count := range other.pathCounts {
		a.pathCounts[path] += count
	}
	a.totalRevenue += other.totalRevenue
	a.totalTouchpoints += other.totalTouchpoints
	a.totalHours += other.totalHours
	a.processed += other.processed
	a.skipped += other.skipped
}

// GenerateReport executa o relatório de forma síncrona: calcula tudo e só
// então persiste. Nenhum relatório parcial é gravado - se o cálculo falha ou
// o contexto é cancelado, nada chega ao banco.
func (uc *reportUseCase) GenerateReport(ctx context.Context, input ReportInput) (*entities.AttributionReport, error) {
	report, err := uc.newReport(input)
	if err != nil {
		return nil, err
	}

	if err := uc.computeReport(ctx, report, input); err != nil {
		return nil, err
	}

	report.Status = entities.ReportStatusCompleted
	if err := uc.reportRepo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("erro ao persistir relatório: %w", err)
	}

	return report, nil
}

// GenerateReportAsync grava o relatório com status processing e calcula em
// background. O chamador consulta GET /attribution/reports/:id até o status
// virar completed ou failed.
func (uc *reportUseCase) GenerateReportAsync(ctx context.Context, input ReportInput) (*entities.AttributionReport, error) {
	report, err := uc.newReport(input)
	if err != nil {
		return nil, err
	}

	if err := uc.reportRepo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("erro ao persistir relatório: %w", err)
	}

	// Cópia para o chamador - a goroutine de background é dona do original
	pending := *report

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), asyncReportTimeout)
		defer cancel()

		if err := uc.computeReport(bgCtx, report, input); err != nil {
			report.Status = entities.ReportStatusFailed
			report.ErrorMessage = err.Error()
		} else {
			report.Status = entities.ReportStatusCompleted
		}
		_ = uc.reportRepo.UpdateReport(bgCtx, report)
	}()

	return &pending, nil
}

func (uc *reportUseCase) GetReport(ctx context.Context, reportID uuid.UUID) (*entities.AttributionReport, error) {
	report, err := uc.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	return report, nil
}

func (uc *reportUseCase) GetReports(ctx context.Context, projectID uuid.UUID, page, limit int, orderBy string) ([]entities.AttributionReport, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if orderBy == "" {
		orderBy = "generated_at desc"
	}

	return uc.reportRepo.GetReports(ctx, projectID, page, limit, orderBy)
}

func (uc *reportUseCase) newReport(input ReportInput) (*entities.AttributionReport, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("%w: end_date %s before start_date %s",
			ErrInvalidDateRange, input.EndDate.Format("2006-01-02"), input.StartDate.Format("2006-01-02"))
	}
	if input.LookbackDays <= 0 {
		input.LookbackDays = DefaultLookbackDays
	}

	return &entities.AttributionReport{
		ID:               uuid.New(),
		ProjectID:        input.ProjectID,
		ReportType:       input.ReportType,
		AttributionModel: input.AttributionModel,
		Status:           entities.ReportStatusProcessing,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		LookbackDays:     input.LookbackDays,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// computeReport roda a montagem de jornada + cálculo de atribuição para cada
// conversão do período e consolida os totais por canal. As conversões são
// independentes entre si, então o trabalho é distribuído por um pool de
// workers limitado ao número de CPUs, no estilo das consultas paralelas do
// dashboard: WaitGroup + mutex apenas para o erro fatal.
func (uc *reportUseCase) computeReport(ctx context.Context, report *entities.AttributionReport, input ReportInput) error {
	conversions, err := uc.eventRepo.GetConversionEvents(ctx, input.ProjectID, input.StartDate, input.EndDate)
	if err != nil {
		return fmt.Errorf("erro ao buscar conversões: %w", err)
	}

	channels, err := uc.channelRepo.GetChannels(ctx, input.ProjectID)
	if err != nil {
		return fmt.Errorf("erro ao buscar canais: %w", err)
	}
	channelNames := make(map[uuid.UUID]string, len(channels))
	for _, ch := range channels {
		channelNames[ch.ID] = ch.Name
	}

	lookback := time.Duration(report.LookbackDays) * 24 * time.Hour

	workers := uc.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(conversions) {
		workers = len(conversions)
	}

	total := newReportAccumulator()

	if len(conversions) > 0 {
		// Canal pré-preenchido e fechado antes dos workers: um worker que
		// aborta cedo (erro fatal ou cancelamento) nunca bloqueia o produtor
		jobs := make(chan entities.AttributionEvent, len(conversions))
		for _, conversion := range conversions {
			jobs <- conversion
		}
		close(jobs)

		partials := make([]*reportAccumulator, workers)

		var wg sync.WaitGroup
		var errMutex sync.Mutex
		var fatalErr error

		for w := 0; w < workers; w++ {
			wg.Add(1)
			local := newReportAccumulator()
			partials[w] = local

			go func() {
				defer wg.Done()
				for conversion := range jobs {
					if ctx.Err() != nil {
						return
					}
					if err := uc.processConversion(ctx, conversion, input.AttributionModel, lookback, channelNames, local); err != nil {
						errMutex.Lock()
						if fatalErr == nil {
							fatalErr = err
						}
						errMutex.Unlock()
						return
					}
				}
			}()
		}

		wg.Wait()

		if err := ctx.Err(); err != nil {
			return err
		}
		if fatalErr != nil {
			return fatalErr
		}

		// Merge das parciais em um único ponto de acumulação
		for _, partial := range partials {
			total.merge(partial)
		}
	}

	uc.fillReport(report, total, channelNames)
	return nil
}

// processConversion monta a jornada de uma conversão e acumula os resultados
// no acumulador local do worker. Erros de jornada (dados malformados) são
// contados como skip; erros de I/O são fatais para o relatório inteiro.
func (uc *reportUseCase) processConversion(
	ctx context.Context,
	conversion entities.AttributionEvent,
	model entities.AttributionModel,
	lookback time.Duration,
	channelNames map[uuid.UUID]string,
	acc *reportAccumulator,
) error {
	journey, err := uc.journeys.AssembleJourney(ctx, &conversion, lookback)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			acc.skipped++
			return nil
		}
		return fmt.Errorf("erro ao montar jornada da conversão %s: %w", conversion.ID, err)
	}

	results, err := uc.attribution.Calculate(journey, conversion.ID, model)
	if err != nil {
		if errors.Is(err, ErrInvalidJourney) || errors.Is(err, ErrInvalidValue) {
			acc.skipped++
			return nil
		}
		return err
	}

	for _, result := range results {
		key := uuid.Nil
		if result.ChannelID != nil {
			key = *result.ChannelID
		}
		acc.revenueByChannel[key] += result.AttributedValue
		acc.creditByChannel[key] += result.Weight
	}

	acc.pathCounts[pathSignature(journey, channelNames)]++
	acc.totalRevenue += conversion.Value()
	acc.totalTouchpoints += int64(journey.Len())
	acc.totalHours += results[0].HoursBeforeConversion
	acc.processed++

	return nil
}

// fillReport transforma as somas acumuladas nas métricas finais do relatório
func (uc *reportUseCase) fillReport(report *entities.AttributionReport, acc *reportAccumulator, channelNames map[uuid.UUID]string) {
	report.TotalConversions = acc.processed
	report.SkippedConversions = acc.skipped
	report.TotalRevenue = acc.totalRevenue
	if acc.processed > 0 {
		report.AvgTouchpoints = float64(acc.totalTouchpoints) / float64(acc.processed)
		report.AvgTimeToConvertHours = acc.totalHours / float64(acc.processed)
	}

	breakdown := make([]entities.ChannelPerformance, 0, len(acc.creditByChannel))
	for channelID, credit := range acc.creditByChannel {
		perf := entities.ChannelPerformance{
			ChannelID:   channelID,
			ChannelName: channelDisplayName(channelID, channelNames),
			Conversions: credit,
			Revenue:     acc.revenueByChannel[channelID],
		}
		if credit > 0 {
			perf.AvgValuePerConversion = perf.Revenue / credit
		}
		breakdown = append(breakdown, perf)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Revenue != breakdown[j].Revenue {
			return breakdown[i].Revenue > breakdown[j].Revenue
		}
		return breakdown[i].ChannelName < breakdown[j].ChannelName
	})
	report.ChannelBreakdown = breakdown

	paths := make([]entities.ConversionPath, 0, len(acc.pathCounts))
	for path, count := range acc.pathCounts {
		paths = append(paths, entities.ConversionPath{Path: path, Count: count})
	}
	// Desempate lexical para manter o ranking determinístico
	sort.Slice(paths, func(i, j int) bool {
		if paths[i].Count != paths[j].Count {
			return paths[i].Count > paths[j].Count
		}
		return paths[i].Path < paths[j].Path
	})
	if len(paths) > TopPathsLimit {
		paths = paths[:TopPathsLimit]
	}
	report.TopConversionPaths = paths
}

// pathSignature constrói a assinatura do caminho da jornada: nomes de canais
// em ordem cronológica, removendo repetições imediatamente adjacentes
func pathSignature(journey entities.Journey, channelNames map[uuid.UUID]string) string {
	signature := ""
	previous := ""
	for i := range journey.Events {
		key := uuid.Nil
		if journey.Events[i].ChannelID != nil {
			key = *journey.Events[i].ChannelID
		}
		name := channelDisplayName(key, channelNames)
		if name == previous {
			continue
		}
		if signature != "" {
			signature += " > "
		}
		signature += name
		previous = name
	}
	return signature
}

func channelDisplayName(channelID uuid.UUID, channelNames map[uuid.UUID]string) string {
	if channelID == uuid.Nil {
		return UnattributedChannelName
	}
	if name, ok := channelNames[channelID]; ok {
		return name
	}
	return channelID.String()
}
