package export

import (
	"bytes"
	"fmt"

	budgetdomain "trip-planner-go/internal/domain/budget"
	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	tripdomain "trip-planner-go/internal/domain/trip"
	weatherdomain "trip-planner-go/internal/domain/weather"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMarginLeft   = 50.0
	pageMarginBottom = 80.0
	lineIndent       = 60.0
	dateLayout       = "2006-01-02"
)

// writer tracks a top-down vertical cursor on a Letter page and starts a
// fresh page whenever the cursor would pass the bottom margin.
type writer struct {
	pdf        *gofpdf.Fpdf
	y          float64
	pageHeight float64
}

func newWriter() *writer {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()
	return &writer{pdf: pdf, y: 50, pageHeight: pageHeight}
}

func (w *writer) line(x float64, text string, step float64) {
	w.pdf.Text(x, w.y, text)
	w.y += step
	if w.y > w.pageHeight-pageMarginBottom {
		w.pdf.AddPage()
		w.y = 50
	}
}

func (w *writer) setFont(style string, size float64) {
	w.pdf.SetFont("Helvetica", style, size)
}

func renderPDF(
	t *tripdomain.Trip,
	events []itinerarydomain.Event,
	envelopes []budgetdomain.BudgetEnvelope,
	expenses []budgetdomain.Expense,
	alerts []weatherdomain.WeatherAlert,
) ([]byte, error) {
	w := newWriter()

	w.setFont("B", 16)
	w.line(pageMarginLeft, fmt.Sprintf("Trip: %s", t.Name), 20)
	w.setFont("", 12)
	w.line(pageMarginLeft, fmt.Sprintf("Destination: %s", t.Destination), 15)
	w.line(pageMarginLeft, fmt.Sprintf("Dates: %s to %s", t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout)), 25)

	w.setFont("B", 14)
	w.line(pageMarginLeft, "Events", 18)
	w.setFont("", 11)
	for _, event := range events {
		line := fmt.Sprintf("%s - %s (%s)", event.Date.Format(dateLayout), event.Title, event.Type)
		if event.StartTime != nil {
			line += fmt.Sprintf(" @ %s", *event.StartTime)
		}
		w.line(lineIndent, line, 14)
	}

	w.y += 10
	w.setFont("B", 14)
	w.line(pageMarginLeft, "Budget", 18)
	w.setFont("", 11)
	for _, envelope := range envelopes {
		actual := envelopeActual(envelope.ID, expenses)
		w.line(lineIndent, fmt.Sprintf("%s: planned $%.2f / actual $%.2f", envelope.Category, envelope.PlannedAmount, actual), 14)
	}

	if len(alerts) > 0 {
		w.y += 10
		w.setFont("B", 14)
		w.line(pageMarginLeft, "Weather Alerts", 18)
		w.setFont("", 11)
		for _, alert := range alerts {
			w.line(lineIndent, fmt.Sprintf("%s [%s] %s", alert.Date.Format(dateLayout), alert.Severity, alert.Summary), 14)
		}
	}

	var buffer bytes.Buffer
	if err := w.pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buffer.Bytes(), nil
}
