package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/cl"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	labelColor   = color.New(color.Faint).SprintFunc()
	okColor      = color.New(color.FgGreen).SprintFunc()
	failColor    = color.New(color.FgHiRed).SprintFunc()
)

// printer formats numbers with digit grouping.
var printer = message.NewPrinter(language.English)

func (st *state) list(c *cli.Context) (err error) {
	defer recoverDiscovery(&err)

	platforms := cl.Platforms()
	fmt.Fprintf(st.stdout, "%s %d\n", labelColor("Number of platforms:"), len(platforms))
	for i, p := range platforms {
		fmt.Fprintln(st.stdout)
		printPlatform(st.stdout, i, p)
		printDevices(st.stdout, p.DevicesOfType(st.filter))
	}
	return nil
}

func printPlatform(w io.Writer, index int, p cl.Platform) {
	fmt.Fprintln(w, headingColor(fmt.Sprintf("Platform #%d: %s", index, p.Name())))
	rows := [][2]string{
		{"Vendor", p.Vendor()},
		{"Version", p.Version()},
		{"Profile", p.Profile()},
		{"Extensions", strconv.Itoa(len(p.ExtensionList()))},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s %s\n", labelColor(fmt.Sprintf("%-11s", r[0]+":")), r[1])
	}
}

func printDevices(w io.Writer, devices []cl.Device) {
	if len(devices) == 0 {
		fmt.Fprintln(w, "  no matching devices")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name", "Type", "Units", "Clock", "Global mem", "Max alloc", "Work group", "Version", "Available"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for i, d := range devices {
		table.Append(deviceRow(i, d))
	}
	table.Render()
}

func deviceRow(index int, d cl.Device) []string {
	avail := okColor("yes")
	if !d.Available() {
		avail = failColor("no")
	}
	return []string{
		strconv.Itoa(index),
		strings.TrimSpace(d.Name()),
		d.Type().String(),
		printer.Sprintf("%d", d.ComputeUnits()),
		printer.Sprintf("%d MHz", d.ClockFrequency()),
		formatBytes(d.GlobalMemSize()),
		formatBytes(d.MaxMemAllocSize()),
		printer.Sprintf("%d", d.MaxWorkGroupSize()),
		d.DeviceVersion(),
		avail,
	}
}

// formatBytes renders n in the largest binary unit that keeps it whole
// enough to read.
func formatBytes(n uint64) string {
	switch {
	case n >= 1<<30:
		return printer.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return printer.Sprintf("%d MiB", n>>20)
	case n >= 1<<10:
		return printer.Sprintf("%d KiB", n>>10)
	default:
		return printer.Sprintf("%d B", n)
	}
}
