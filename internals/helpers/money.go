package helper

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders amount with the ISO currency symbol, e.g. "$ 25.00".
// Unknown codes fall back to "25.00 XYZ".
func FormatMoney(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}
	return moneyPrinter.Sprint(currency.Symbol(unit.Amount(amount)))
}
