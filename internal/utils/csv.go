package utils

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
)

// ChannelBreakdownCSV serializa o channel_breakdown de um relatório como
// CSV. Serialização pura - nenhum valor é recalculado aqui.
func ChannelBreakdownCSV(report *entities.AttributionReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"channel", "credited_conversions", "revenue", "avg_value_per_conversion"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, perf := range report.ChannelBreakdown {
		row := []string{
			perf.ChannelName,
			strconv.FormatFloat(perf.Conversions, 'f', 4, 64),
			strconv.FormatFloat(perf.Revenue, 'f', 2, 64),
			strconv.FormatFloat(perf.AvgValuePerConversion, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
