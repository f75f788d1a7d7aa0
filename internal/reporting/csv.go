package reporting

import (
	"fmt"
	"strings"

	"token-emissions-lab/internal/domain"
)

// RenderRunsCSV renders every run's day-indexed series as CSV. The
// years column carries day/365 so the rows plot on the same axis the
// lab charts use.
func RenderRunsCSV(runs []domain.Run) string {
	var sb strings.Builder

	sb.WriteString("trajectory,day,years,tvl,emission,minted,cap\n")

	for _, run := range runs {
		for t := 0; t < run.Days; t++ {
			sb.WriteString(fmt.Sprintf("%s,%d,%.4f,%.6f,%.6f,%.6f,%.6f\n",
				run.Kind,
				t,
				float64(t)/365.0,
				run.TVL[t],
				run.Emission[t],
				run.Minted[t],
				run.Cap[t],
			))
		}
	}

	return sb.String()
}

// RenderSummariesCSV renders the per-trajectory summary rows as CSV.
func RenderSummariesCSV(rows []SummaryRow) string {
	var sb strings.Builder

	sb.WriteString("trajectory,run_id,total_emitted,cap_utilization,peak_emission,peak_emission_day,")
	sb.WriteString("mean_emission,median_emission,emission_p10,emission_p90,emission_stddev,")
	sb.WriteString("zero_emission_days,half_cap_day,min_tvl,min_tvl_day,max_tvl\n")

	for _, s := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%.6f,%.6f,%.6f,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%d,%d,%.6f,%d,%.6f\n",
			s.Kind,
			s.RunID,
			s.TotalEmitted,
			s.CapUtilization,
			s.PeakEmission,
			s.PeakEmissionDay,
			s.MeanEmission,
			s.MedianEmission,
			s.EmissionP10,
			s.EmissionP90,
			s.EmissionStddev,
			s.ZeroEmissionDays,
			s.HalfCapDay,
			s.MinTVL,
			s.MinTVLDay,
			s.MaxTVL,
		))
	}

	return sb.String()
}

// RenderSweepCSV renders parameter sweep results as CSV.
func RenderSweepCSV(rows []SweepRow) string {
	var sb strings.Builder

	sb.WriteString("param,value,trajectory,total_emitted,cap_utilization,peak_emission,half_cap_day\n")

	for _, s := range rows {
		sb.WriteString(fmt.Sprintf("%s,%g,%s,%.6f,%.6f,%.6f,%d\n",
			s.Param,
			s.Value,
			s.Kind,
			s.TotalEmitted,
			s.CapUtilization,
			s.PeakEmission,
			s.HalfCapDay,
		))
	}

	return sb.String()
}
