package proration

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// summary date format, Chilean convention
const summaryDateFormat = "02-01-2006"

// Describer renders a quote's human-readable summary with locale-aware
// number formatting (thousands separators per the configured locale,
// es-CL in production).
type Describer struct {
	printer *message.Printer
}

// NewDescriber builds a describer for a BCP 47 locale tag. An
// unparseable tag falls back to Spanish.
func NewDescriber(locale string) *Describer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &Describer{printer: message.NewPrinter(tag)}
}

// Describe selects one of three templates based on the sign of the
// immediate charge: an upgrade charge, a downgrade credit, or no
// additional charge.
func (d *Describer) Describe(
	currentPlanName string,
	newPlanName string,
	immediateCharge decimal.Decimal,
	daysRemaining int,
	periodEnd time.Time,
) string {
	switch {
	case immediateCharge.GreaterThan(decimal.Zero):
		return d.printer.Sprintf(
			"Al cambiar de %s a %s se cobrará $%v de inmediato por los %d días restantes del período actual (hasta el %s). Desde el próximo período se cobrará el precio completo del nuevo plan.",
			currentPlanName,
			newPlanName,
			d.amount(immediateCharge),
			daysRemaining,
			periodEnd.Format(summaryDateFormat),
		)
	case immediateCharge.LessThan(decimal.Zero):
		return d.printer.Sprintf(
			"Al cambiar de %s a %s quedará un saldo a favor de $%v por los %d días restantes del período actual (hasta el %s). Desde el próximo período se cobrará el precio completo del nuevo plan.",
			currentPlanName,
			newPlanName,
			d.amount(immediateCharge.Abs()),
			daysRemaining,
			periodEnd.Format(summaryDateFormat),
		)
	default:
		return d.printer.Sprintf(
			"El cambio de %s a %s no genera cargos adicionales.",
			currentPlanName,
			newPlanName,
		)
	}
}

func (d *Describer) amount(v decimal.Decimal) number.Formatter {
	f, _ := v.Float64()
	return number.Decimal(f, number.MaxFractionDigits(2))
}
