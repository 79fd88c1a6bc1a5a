package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/daryltucker/sca-analyzer/internal/model"
	"github.com/daryltucker/sca-analyzer/internal/output"
)

var ratingColors = map[model.Rating]lipgloss.Color{
	model.RatingExcellent: lipgloss.Color("#10B981"),
	model.RatingGood:      lipgloss.Color("#06B6D4"),
	model.RatingFair:      lipgloss.Color("#F59E0B"),
	model.RatingBaseline:  lipgloss.Color("#9CA3AF"),
}

// styles are bound to the destination writer so colour is only emitted for terminals.
type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	rating  func(model.Rating) lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		section: r.NewStyle().Bold(true),
		rating: func(rt model.Rating) lipgloss.Style {
			return r.NewStyle().Bold(true).Foreground(ratingColors[rt])
		},
	}
}

func printHeader(w io.Writer) {
	st := newStyles(w)
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, st.title.Render("SIMULATION ANALYSIS RESULTS"), rule)
}

func printConfiguration(w io.Writer, name string, m model.MetricsRecord, capacityTbps float64) {
	st := newStyles(w)
	capacityGbps := capacityTbps * 1000

	fmt.Fprintf(w, "\nConfiguration: %s\n", st.section.Render(name))
	fmt.Fprintln(w, strings.Repeat("-", 40))

	fmt.Fprintln(w, st.section.Render("Traffic Statistics:"))
	fmt.Fprintf(w, "  Packets Sent:      %s\n", output.FormatCount(m.PacketsSent))
	fmt.Fprintf(w, "  Packets Received:  %s\n", output.FormatCount(m.PacketsReceived))
	fmt.Fprintf(w, "  Packet Loss Rate:  %.2f%%\n", m.PacketLossRate)
	fmt.Fprintf(w, "  Total Data:        %.2f MB\n", output.Megabytes(m.TotalBytes))

	fmt.Fprintf(w, "\n%s\n", st.section.Render("Throughput Analysis:"))
	fmt.Fprintf(w, "  Throughput:        %s bytes/sec\n", output.FormatGrouped(m.ThroughputBps, 0))
	fmt.Fprintf(w, "  Throughput:        %.2f Mbps\n", m.ThroughputMbps)
	fmt.Fprintf(w, "  Throughput:        %.3f Gbps\n", m.ThroughputGbps)

	fmt.Fprintf(w, "\n%s\n", st.section.Render("Simulation Parameters:"))
	fmt.Fprintf(w, "  Simulation Time:   %s\n", m.SimTime)
	fmt.Fprintf(w, "  Network:           %s\n", m.Network)

	fmt.Fprintf(w, "\n%s\n", st.section.Render("Switch Capacity Analysis:"))
	fmt.Fprintf(w, "  Switch Capacity:   %g Tbps (%s Gbps)\n", capacityTbps, output.FormatGrouped(capacityGbps, 0))
	fmt.Fprintf(w, "  Current Utilization: %.6f%%\n", m.UtilizationPct)
	fmt.Fprintf(w, "  Performance Rating: %s\n", st.rating(m.Rating).Render(m.Rating.String()))
}
