// Package smart parses the text report printed by `smartctl -a`.
//
// The parser is pure: it only sees the captured text, so it can be driven
// from canned reports in tests.
package smart

import (
	"strconv"
	"strings"
)

const (
	healthSectionStart = "SMART/Health Information"
	ataTableStart      = "ID#"
)

// identityPrefixes are checked in order; the first match wins.
var identityPrefixes = []struct {
	prefix string
	set    func(*Identity, string)
}{
	{"Device Model:", func(id *Identity, v string) { id.Model = v }},
	{"Model Number:", func(id *Identity, v string) { id.Model = v }},
	{"Serial Number:", func(id *Identity, v string) { id.Serial = v }},
	{"Firmware Version:", func(id *Identity, v string) { id.Firmware = v }},
	{"SMART overall-health self-assessment test result:", func(id *Identity, v string) { id.Health = v }},
}

var healthSectionEnd = []string{"Error Information", "Self-test Log", "="}

// Sections is the output of Extract.
type Sections struct {
	Identity    Identity
	HealthLines []string
	ATA         []ATAAttribute
}

// Extract splits a report into identity fields, the raw lines of the
// SMART/Health Information section and the rows of the ATA attribute table.
// A report without any of these yields empty results, not an error.
func Extract(report string) Sections {
	var (
		s        Sections
		inHealth bool
		inATA    bool
	)

	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matchIdentity(&s.Identity, line)

		if strings.HasPrefix(line, healthSectionStart) {
			inHealth = true
			continue
		}
		if inHealth {
			if hasAnyPrefix(line, healthSectionEnd) {
				inHealth = false
			} else {
				s.HealthLines = append(s.HealthLines, line)
			}
		}

		if isATAHeader(line) {
			inATA = true
			continue
		}
		if inATA {
			if line[0] >= '0' && line[0] <= '9' {
				s.ATA = append(s.ATA, parseATARow(line))
			} else {
				inATA = false
			}
		}
	}

	return s
}

// Parse runs Extract and ParseAttribute over a report and assembles a Result.
func Parse(device, report string, includeRaw bool) Result {
	s := Extract(report)
	table := NewAttributeTable()
	for _, line := range s.HealthLines {
		if a, ok := ParseAttribute(line); ok {
			table.Set(a)
		}
	}
	return Result{
		Device:     device,
		Identity:   s.Identity,
		Health:     table,
		ATA:        s.ATA,
		Report:     report,
		IncludeRaw: includeRaw,
	}
}

func matchIdentity(id *Identity, line string) {
	for _, p := range identityPrefixes {
		if strings.HasPrefix(line, p.prefix) {
			_, value, _ := strings.Cut(line, ":")
			p.set(id, strings.TrimSpace(value))
			return
		}
	}
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func isATAHeader(line string) bool {
	if !strings.HasPrefix(line, ataTableStart) {
		return false
	}
	return strings.Contains(line, "ATTRIBUTE_NAME") || strings.Contains(line, "FLAG")
}

// parseATARow splits a row such as
//
//	  5 Reallocated_Sector_Ct 0x0033 100 100 036 Pre-fail Always - 0
//
// into its columns. Short rows keep only the raw line.
func parseATARow(line string) ATAAttribute {
	parts := strings.Fields(line)
	if len(parts) < 10 {
		return ATAAttribute{Raw: line}
	}
	row := ATAAttribute{
		Name:       parts[1],
		Value:      parts[3],
		Worst:      parts[4],
		Thresh:     parts[5],
		Type:       parts[6],
		Updated:    parts[7],
		WhenFailed: parts[8],
		Raw:        strings.Join(parts[9:], " "),
	}
	if id, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
		row.ID = &id
	}
	return row
}

// ParseScan returns the device paths from `smartctl --scan` output: the first
// field of every non-blank line.
func ParseScan(output string) []string {
	devices := []string{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			devices = append(devices, fields[0])
		}
	}
	return devices
}
