package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	labelStyle         = color.New(color.Faint)
	selectedStyle      = color.New(color.FgGreen, color.Bold)
	okStyle            = color.New(color.FgGreen)
	failStyle          = color.New(color.FgRed)
	warnStyle          = color.New(color.FgYellow)
	versionStyle       = color.New(color.FgCyan)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warnStyle.Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return failStyle.Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return okStyle.Sprintf("✅ %s", message)
}

// WriteJSON writes v as indented JSON
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.String()
}

func section(out io.Writer, title string) {
	fmt.Fprintln(out, sectionHeaderStyle.Sprint(title))
}
