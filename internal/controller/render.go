package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	m "github.com/synnheal/stepcalc/internal/model"
)

const noResult = "-"

func newTable(buf *bytes.Buffer, header []string, alignment []int) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment(alignment)

	return table
}

func renderSolutionTable(solution m.Solution) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"#", "Step", "Expression"},
		[]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for i, step := range solution.Steps {
		table.Append([]string{fmt.Sprintf("%d", i+1), step.Description, step.Expression})
	}

	table.SetFooter([]string{"", "Result", solution.FinalResult})
	table.Render()

	return buf.String()
}

func renderOperationsTable(kinds []m.OperationKind) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Operation", "Aliases", "Description"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, kind := range kinds {
		aliases := strings.Join(kind.Aliases(), ", ")
		if aliases == "" {
			aliases = noResult
		}

		table.Append([]string{string(kind), aliases, kind.Description()})
	}

	table.Render()

	return buf.String()
}

func renderReportsTable(reports []m.Report) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Source", "ID", "Operation", "Status", "Result"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	counts := make(map[m.ReportStatus]int)

	for _, report := range reports {
		counts[report.Status]++

		operation := string(report.Problem.Operation)
		if operation == "" {
			operation = string(m.OperationEvaluate)
		}

		table.Append([]string{
			string(report.Source),
			report.Problem.ID,
			operation,
			string(report.Status),
			reportResult(report),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(reports)),
		"",
		"",
		fmt.Sprintf("%d/%d/%d", counts[m.Solved], counts[m.Mismatch], counts[m.Failed]),
		"solved/mismatch/failed",
	})
	table.Render()

	return buf.String()
}

func renderDiffs(reports []m.Report) string {
	var b strings.Builder

	for _, report := range reports {
		if report.Diff == "" {
			continue
		}

		fmt.Fprintf(&b, "\n%s (%s)\n%s", report.Problem.ID, report.Source, report.Diff)

		if !strings.HasSuffix(report.Diff, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func reportResult(report m.Report) string {
	switch {
	case report.Error != "":
		return report.Error
	case report.Solution != nil:
		return report.Solution.FinalResult
	}

	return noResult
}

func validationMessage(input string, kind m.OperationKind, err error) string {
	if err != nil {
		return fmt.Sprintf("invalid %s input %q: %v\n", kind, input, err)
	}

	return fmt.Sprintf("valid %s input %q\n", kind, input)
}

func batchInfoMessage(problems, threads, shardIndex, shardCount int) string {
	return fmt.Sprintf("Solving %d problem(s) with %d worker(s) (shard %d/%d)\n", problems, threads, shardIndex, shardCount)
}

func scoreMessage(score float64) string {
	return fmt.Sprintf("Solved: %.2f%%\n", score*100)
}
