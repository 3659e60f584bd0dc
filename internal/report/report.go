// Package report renders parsed SMART results as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"

	"smartinfo/internal/smart"
)

const notAvailable = "n/a"

// ColorEnabled reports whether coloured output should be used on f.
func ColorEnabled(wanted bool, f *os.File) bool {
	if !wanted {
		return false
	}
	if term := os.Getenv("TERM"); term == "dumb" {
		return false
	}
	return isTerminal(f)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Renderer writes results to w.
type Renderer struct {
	w     io.Writer
	color bool
}

// New returns a renderer writing to w. Styling is applied only when color
// is true.
func New(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

// Text prints the identity block, then the health attributes in key order,
// then the ATA attribute table when the report had one.
func (r *Renderer) Text(res smart.Result) error {
	id := res.Identity

	var b writer
	b.printf("Device: %s\n", res.Device)
	b.printf("Model: %s\n", orNA(id.Model))
	b.printf("Serial: %s\n", orNA(id.Serial))
	b.printf("Firmware: %s\n", orNA(id.Firmware))
	b.printf("Health: %s\n", r.paint(healthColor(id.Health), orNA(id.Health)))

	if res.Health.Len() > 0 {
		b.printf("\n%s\n", r.paint(pterm.Bold, "SMART/Health Information:"))
		for _, a := range res.Health.Attributes() {
			b.printf("%s: %s\n", a.Key, a.Raw)
		}
	}

	if len(res.ATA) > 0 {
		table, err := ataTable(res.ATA)
		if err != nil {
			return err
		}
		b.printf("\n%s\n", r.paint(pterm.Bold, "SMART Attributes:"))
		b.printf("%s\n", table)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) paint(c pterm.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

func healthColor(health string) pterm.Color {
	switch health {
	case "":
		return pterm.FgGray
	case "PASSED", "OK":
		return pterm.FgGreen
	default:
		return pterm.FgRed
	}
}

func ataTable(rows []smart.ATAAttribute) (string, error) {
	data := pterm.TableData{{"ID", "Name", "Value", "Worst", "Thresh", "Raw"}}
	for _, a := range rows {
		id := ""
		if a.ID != nil {
			id = strconv.FormatInt(*a.ID, 10)
		}
		data = append(data, []string{id, a.Name, a.Value, a.Worst, a.Thresh, a.Raw})
	}
	out, err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithRightAlignment(false).
		WithData(data).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render attribute table: %w", err)
	}
	return out, nil
}

// Devices prints one device per line.
func (r *Renderer) Devices(devices []string) error {
	var b writer
	for _, d := range devices {
		b.printf("%s\n", d)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// JSON writes the result as a single indented object.
func (r *Renderer) JSON(res smart.Result) error {
	return r.encode(newDeviceDocument(res))
}

// DevicesJSON writes {"devices": [...]}. An empty list is written as [].
func (r *Renderer) DevicesJSON(devices []string) error {
	if devices == nil {
		devices = []string{}
	}
	return r.encode(struct {
		Devices []string `json:"devices"`
	}{devices})
}

func (r *Renderer) encode(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// writer accumulates output so a failed table render leaves w untouched.
type writer struct {
	buf []byte
}

func (w *writer) printf(format string, args ...interface{}) {
	w.buf = fmt.Appendf(w.buf, format, args...)
}

func (w *writer) String() string {
	return string(w.buf)
}
