package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
)

// reportTemplate renders the ranked offers as a simple HTML table, one row
// per offer in ranking order.
var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc":      func(i int) int { return i + 1 },
	"stops":    formatStops,
	"segments": formatSegments,
}).Parse(`<html>
<body>
<h2>Flight deals {{.Origin}} &rarr; {{.Destination}}</h2>
<p>{{len .Offers}} offer(s) at or under {{printf "%.2f" .MaxPrice}} {{.Currency}}.</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>#</th><th>Price</th><th>Date</th><th>Duration</th><th>Stops</th><th>Carrier</th><th>Itinerary</th></tr>
{{- range $i, $o := .Offers}}
<tr>
<td>{{inc $i}}</td>
<td>{{printf "%.2f" $o.Price}} {{$o.Currency}}</td>
<td>{{$o.Date}}</td>
<td>{{$o.Duration}}</td>
<td>{{stops $o.Stops}}</td>
<td>{{$o.Carrier}}</td>
<td>{{segments $o.Details}}</td>
</tr>
{{- end}}
</table>
</body>
</html>
`))

// reportData is the input to reportTemplate.
type reportData struct {
	Origin      string
	Destination string
	MaxPrice    float64
	Currency    string
	Offers      []domain.ValidatedOffer
}

// formatStops renders the stop count for the report table.
func formatStops(n int) string {
	switch n {
	case 0:
		return "Direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", n)
	}
}

// formatSegments joins per-segment descriptions into one table cell.
func formatSegments(details []string) string {
	return strings.Join(details, " | ")
}

// renderReport produces the HTML body for a set of ranked offers.
func renderReport(data reportData) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// subjectFor builds the message subject from the ranked offers. The offers
// are sorted ascending by price, so the first one carries the cheapest fare.
func subjectFor(origin, destination string, offers []domain.ValidatedOffer) string {
	if len(offers) == 0 {
		return fmt.Sprintf("Flight deals %s -> %s", origin, destination)
	}
	return fmt.Sprintf("Flight deals %s -> %s: from %.2f %s (%d offers)",
		origin, destination, offers[0].Price, offers[0].Currency, len(offers))
}
