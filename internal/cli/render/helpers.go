package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// Title capitalises each word of a label such as a network or stage name
func Title(s string) string {
	return titleCaser.String(s)
}

func renderWarnings(out io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(out)
	for _, warning := range warnings {
		fmt.Fprintln(out, FormatWarning(warning))
	}
}

// formatUnits renders an integer amount with the given number of decimals,
// trimming trailing zeros
func formatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	value := new(big.Float).SetInt(amount)
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value.Quo(value, scale)
	return value.Text('f', -1)
}
