package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ossim/ossim/sim"
	"github.com/ossim/ossim/sim/paging"
)

// maxChartWidth bounds the Gantt chart width; longer runs are scaled down.
const maxChartWidth = 80

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(6)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	ramStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	diskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))

	// processPalette colors process rows in turn.
	processPalette = []lipgloss.Color{"36", "205", "214", "39", "170", "112"}
)

// RenderGantt draws one row per process; each cell is one tick (or a scaled
// group of ticks) and is filled while the process holds the CPU.
func RenderGantt(res *sim.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Gantt (%s)", strings.ToUpper(string(res.Policy)))))
	b.WriteString("\n")

	scale := int64(1)
	if res.EndTime > maxChartWidth {
		scale = (res.EndTime + maxChartWidth - 1) / maxChartWidth
	}
	cols := int((res.EndTime + scale - 1) / scale)

	for i, p := range res.Processes {
		cells := make([]bool, cols)
		for _, seg := range res.SegmentsFor(p.ID) {
			for t := seg.Start; t < seg.End(); t++ {
				cells[int(t/scale)] = true
			}
		}
		style := lipgloss.NewStyle().Foreground(processPalette[i%len(processPalette)])
		b.WriteString(labelStyle.Render("P" + p.ID))
		for _, on := range cells {
			if on {
				b.WriteString(style.Render("█"))
			} else {
				b.WriteString(idleStyle.Render("·"))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("t"))
	b.WriteString(idleStyle.Render(fmt.Sprintf("0..%d (1 cell = %d tick(s))", res.EndTime, scale)))
	return b.String()
}

// RenderMemory draws RAM and disk side by side.
func RenderMemory(snap paging.Snapshot, ramCapacity int) string {
	ram := make([]string, 0, len(snap.RAM)+1)
	ram = append(ram, headerStyle.Render(fmt.Sprintf("RAM %d/%d", len(snap.RAM), ramCapacity)))
	for i, k := range snap.RAM {
		ram = append(ram, ramStyle.Render(fmt.Sprintf("%2d %s", i, k)))
	}
	disk := make([]string, 0, len(snap.Disk)+1)
	disk = append(disk, headerStyle.Render(fmt.Sprintf("Disk %d", len(snap.Disk))))
	for i, k := range snap.Disk {
		disk = append(disk, diskStyle.Render(fmt.Sprintf("%2d %s", i, k)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, ram...)),
		boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, disk...)),
	) + "\n" + idleStyle.Render(fmt.Sprintf("clock %d", snap.Clock))
}

// RenderComparison prints one row per policy.
func RenderComparison(metrics []*sim.ScheduleMetrics) string {
	rows := []string{headerStyle.Render(fmt.Sprintf("%-6s %12s %12s %12s %8s %8s",
		"Policy", "Turnaround", "Waiting", "Response", "Misses", "End"))}
	for _, m := range metrics {
		rows = append(rows, fmt.Sprintf("%-6s %12.2f %12.2f %12.2f %8d %8d",
			strings.ToUpper(string(m.Policy)), m.MeanTurnaround, m.MeanWaiting, m.MeanResponse, m.DeadlineMisses, m.EndTime))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
