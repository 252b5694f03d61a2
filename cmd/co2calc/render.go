package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dimithria/Calculadora-CO2/internal/calculator"
	"github.com/dimithria/Calculadora-CO2/internal/carbon"
)

// barWidth is the width of a full comparison bar in characters.
const barWidth = 20

// printer formats numbers in the calculator's single display locale.
var printer = message.NewPrinter(language.BrazilianPortuguese)

func formatNumber(v float64, decimals int) string {
	return printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals)))
}

func formatCurrency(v float64) string {
	return "R$ " + formatNumber(v, 2)
}

// bandColor maps severity bands to the colors of the comparison bars.
func bandColor(b carbon.SeverityBand) string {
	switch b {
	case carbon.BandLow:
		return "green"
	case carbon.BandMedium:
		return "yellow"
	case carbon.BandHigh:
		return "orange"
	default:
		return "red"
	}
}

// bar renders emission relative to the largest emission of the listing.
func bar(emission, maxEmission float64) string {
	if maxEmission <= 0 {
		return ""
	}
	n := int(emission / maxEmission * barWidth)
	if emission > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func modeLabel(table *carbon.FactorTable, mode carbon.TransportMode) string {
	info, err := table.Info(mode)
	if err != nil {
		return string(mode)
	}
	if info.Icon == "" {
		return info.Label
	}
	return info.Icon + " " + info.Label
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderReport(w io.Writer, table *carbon.FactorTable, pricing carbon.CreditPricing, r calculator.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Rota\t%s → %s\n", r.Origin, r.Destination)
	fmt.Fprintf(tw, "Distância\t%s km (%s)\n", formatNumber(r.DistanceKm, 0), r.DistanceSource)
	fmt.Fprintf(tw, "Emissão de CO2\t%s kg\n", formatNumber(r.Emission.Kg, 2))
	fmt.Fprintf(tw, "Modo de transporte\t%s\n", modeLabel(table, r.Mode))
	if r.ShowSavings {
		fmt.Fprintf(tw, "Economia vs %s\t%s kg (%s%%)\n",
			modeLabel(table, carbon.BaselineMode),
			formatNumber(r.Savings.SavedKg, 2),
			formatNumber(r.Savings.Percentage, 1))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if err := renderComparison(w, table, r.Comparison, r.Mode); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Créditos necessários\t%s\t(1 crédito = %s kg CO2)\n",
		formatNumber(r.Credits.Credits, 4), formatNumber(pricing.KgPerCredit, 0))
	fmt.Fprintf(tw, "Preço estimado\t%s\t(faixa %s – %s)\n",
		formatCurrency(r.Price.Average), formatCurrency(r.Price.Min), formatCurrency(r.Price.Max))
	return tw.Flush()
}

// renderComparison writes one row per mode. selected may be empty.
func renderComparison(w io.Writer, table *carbon.FactorTable, entries []carbon.ModeComparisonEntry, selected carbon.TransportMode) error {
	maxEmission := 0.0
	for _, e := range entries {
		if e.EmissionKg > maxEmission {
			maxEmission = e.EmissionKg
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "MODO\tEMISSÃO (KG CO2)\t%% VS %s\tFAIXA\t\n", strings.ToUpper(carbon.BaselineMode.String()))
	for _, e := range entries {
		label := modeLabel(table, e.Mode)
		if selected != "" && e.Mode == selected {
			label += " (selecionado)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s%%\t%s\t%s\n",
			label,
			formatNumber(e.EmissionKg, 2),
			formatNumber(e.PercentageVsBaseline, 1),
			bandColor(e.Band),
			bar(e.EmissionKg, maxEmission))
	}
	return tw.Flush()
}

// batchRow is the JSON shape of one batch result.
type batchRow struct {
	Index  int                `json:"index"`
	Report *calculator.Report `json:"report,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func renderBatch(w io.Writer, results []calculator.BatchResult, output string) error {
	if output == outputJSON {
		rows := make([]batchRow, len(results))
		for i, r := range results {
			rows[i].Index = r.Index
			if r.Err != nil {
				rows[i].Error = r.Err.Error()
				continue
			}
			report := r.Report
			rows[i].Report = &report
		}
		return writeJSON(w, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tROTA\tMODO\tDISTÂNCIA (KM)\tEMISSÃO (KG CO2)\tCRÉDITOS\tRESULTADO")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%d\t\t\t\t\t\terro: %v\n", r.Index, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s → %s\t%s\t%s\t%s\t%s\tok\n",
			r.Index,
			r.Report.Origin, r.Report.Destination,
			r.Report.Mode,
			formatNumber(r.Report.DistanceKm, 0),
			formatNumber(r.Report.Emission.Kg, 2),
			formatNumber(r.Report.Credits.Credits, 4))
	}
	return tw.Flush()
}
