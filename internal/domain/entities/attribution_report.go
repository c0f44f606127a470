package entities

import (
	"time"

	"github.com/google/uuid"
)

// AttributionModel define a regra de distribuição de crédito entre os
// touchpoints de uma jornada. O conjunto é fechado: o calculador faz switch
// exaustivo sobre essas cinco variantes.
type AttributionModel string

const (
	ModelFirstTouch AttributionModel = "first_touch"
	ModelLastTouch  AttributionModel = "last_touch"
	ModelLinear     AttributionModel = "linear"
	ModelTimeDecay  AttributionModel = "time_decay"
	ModelUShaped    AttributionModel = "u_shaped"
)

// AttributionModels lista os modelos suportados na ordem de apresentação
var AttributionModels = []AttributionModel{
	ModelFirstTouch,
	ModelLastTouch,
	ModelLinear,
	ModelTimeDecay,
	ModelUShaped,
}

// ParseAttributionModel valida a string recebida da API
func ParseAttributionModel(s string) (AttributionModel, bool) {
	switch AttributionModel(s) {
	case ModelFirstTouch, ModelLastTouch, ModelLinear, ModelTimeDecay, ModelUShaped:
		return AttributionModel(s), true
	}
	return "", false
}

type ReportType string

const (
	ReportTypeChannelPerformance ReportType = "channel_performance"
	ReportTypeROI                ReportType = "roi"
	ReportTypeJourneyMap         ReportType = "journey_map"
	ReportTypeFunnelAnalysis     ReportType = "funnel_analysis"
)

// ParseReportType valida a string recebida da API
func ParseReportType(s string) (ReportType, bool) {
	switch ReportType(s) {
	case ReportTypeChannelPerformance, ReportTypeROI, ReportTypeJourneyMap, ReportTypeFunnelAnalysis:
		return ReportType(s), true
	}
	return "", false
}

// ReportStatus acompanha a geração assíncrona de relatórios
type ReportStatus string

const (
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
)

// ChannelPerformance agrega o crédito atribuído a um canal dentro de um
// relatório. Conversions é fracionário: cada jornada distribui 1.0 de
// crédito entre os canais conforme os weights do modelo.
type ChannelPerformance struct {
	ChannelID             uuid.UUID `json:"channel_id"`
	ChannelName           string    `json:"channel_name"`
	Conversions           float64   `json:"conversions"`
	Revenue               float64   `json:"revenue"`
	AvgValuePerConversion float64   `json:"avg_value_per_conversion"`
}

// ConversionPath é uma assinatura de caminho (nomes de canais em ordem, com
// repetições adjacentes removidas) e sua frequência no período
type ConversionPath struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// AttributionReport é o snapshot persistido de uma execução de relatório.
// Imutável depois de gerado - uma nova execução cria um novo relatório.
type AttributionReport struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;column:id"`
	ProjectID        uuid.UUID        `json:"project_id" gorm:"type:uuid;column:project_id"`
	ReportType       ReportType       `json:"report_type" gorm:"column:report_type"`
	AttributionModel AttributionModel `json:"attribution_model" gorm:"column:attribution_model"`
	Status           ReportStatus     `json:"status" gorm:"column:status"`
	StartDate        time.Time        `json:"start_date" gorm:"column:start_date"`
	EndDate          time.Time        `json:"end_date" gorm:"column:end_date"`
	LookbackDays     int              `json:"lookback_days" gorm:"column:lookback_days"`
	GeneratedAt      time.Time        `json:"generated_at" gorm:"column:generated_at"`

	// Métricas de resumo
	TotalConversions      int64   `json:"total_conversions" gorm:"column:total_conversions"`
	SkippedConversions    int64   `json:"skipped_conversions" gorm:"column:skipped_conversions"`
	TotalRevenue          float64 `json:"total_revenue" gorm:"column:total_revenue"`
	AvgTouchpoints        float64 `json:"avg_touchpoints" gorm:"column:avg_touchpoints"`
	AvgTimeToConvertHours float64 `json:"avg_time_to_convert_hours" gorm:"column:avg_time_to_convert_hours"`

	ChannelBreakdown   []ChannelPerformance `json:"channel_breakdown" gorm:"column:channel_breakdown;type:jsonb;serializer:json"`
	TopConversionPaths []ConversionPath     `json:"top_conversion_paths" gorm:"column:top_conversion_paths;type:jsonb;serializer:json"`

	// Preenchido quando a geração assíncrona falha
	ErrorMessage string `json:"error_message,omitempty" gorm:"column:error_message"`
}

func (AttributionReport) TableName() string {
	return "attribution_reports"
}
