package proration

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDescriber_Describe(t *testing.T) {
	d := NewDescriber("es-CL")
	periodEnd := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)

	t.Run("upgrade_charge", func(t *testing.T) {
		s := d.Describe("Premium", "Pro", decimal.NewFromFloat(5333.33), 16, periodEnd)
		assert.Contains(t, s, "se cobrará")
		// es-CL thousands separator
		assert.Contains(t, s, "5.333,33")
		assert.Contains(t, s, "16 días")
		assert.Contains(t, s, "30-01-2024")
		assert.Contains(t, s, "precio completo")
	})

	t.Run("downgrade_credit", func(t *testing.T) {
		s := d.Describe("Pro", "Premium", decimal.NewFromFloat(-5333.33), 16, periodEnd)
		assert.Contains(t, s, "saldo a favor")
		assert.Contains(t, s, "5.333,33")
		assert.Contains(t, s, "16 días")
		assert.Contains(t, s, "30-01-2024")
	})

	t.Run("zero_delta", func(t *testing.T) {
		s := d.Describe("Premium", "Premium Anual", decimal.Zero, 16, periodEnd)
		assert.Contains(t, s, "no genera cargos adicionales")
	})

	t.Run("whole_amount_has_no_decimals", func(t *testing.T) {
		s := d.Describe("Gratis", "Premium", decimal.NewFromInt(4995), 15, periodEnd)
		assert.Contains(t, s, "4.995")
	})

	t.Run("bad_locale_falls_back_to_spanish", func(t *testing.T) {
		fallback := NewDescriber("not-a-locale")
		s := fallback.Describe("Premium", "Pro", decimal.NewFromInt(100), 3, periodEnd)
		assert.Contains(t, s, "se cobrará")
	})
}
