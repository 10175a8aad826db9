package format

import (
	"fmt"
	"html"
	"strings"

	"alarmbot/internal/models"

	"github.com/shopspring/decimal"
)

const Unknown = "—"

// PrettyPrice renders a price with precision depending on its magnitude.
func PrettyPrice(v float64) string {
	d := decimal.NewFromFloat(v)
	switch {
	case v >= 1:
		return "$" + groupThousands(d.StringFixed(2))
	case v >= 0.01:
		return "$" + d.StringFixed(6)
	default:
		return "$" + d.StringFixed(8)
	}
}

// PrettyPriceOf renders an optional price.
func PrettyPriceOf(v float64, known bool) string {
	if !known {
		return Unknown
	}
	return PrettyPrice(v)
}

func groupThousands(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func Arrow(d models.Direction) string {
	if d == models.DirectionDown {
		return "⬇️"
	}
	return "⬆️"
}

func HitMessage(alarm models.Alarm, price float64) string {
	symbol := html.EscapeString(alarm.Symbol)
	return fmt.Sprintf(
		"🔔 <b>ALARM!</b>\n\n<b>%s</b> reached its target.\n🎯 Target: %s\n💰 Price: %s\n\nAlarms fire once. New alarm: /alarm %s",
		symbol, PrettyPrice(alarm.Target), PrettyPrice(price), symbol,
	)
}

func AlarmList(alarms []models.Alarm) string {
	if len(alarms) == 0 {
		return "🔕 No active alarms."
	}
	lines := make([]string, 0, len(alarms)+1)
	lines = append(lines, "⏰ <b>Your alarms:</b>")
	for i, a := range alarms {
		lines = append(lines, fmt.Sprintf("%d. %s → %s (%s)", i+1, html.EscapeString(a.Symbol), PrettyPrice(a.Target), Arrow(a.Direction)))
	}
	return strings.Join(lines, "\n")
}

func Created(alarm models.Alarm) string {
	return fmt.Sprintf("✅ <b>Alarm set!</b>\n%s target: %s (%s)", html.EscapeString(alarm.Symbol), PrettyPrice(alarm.Target), Arrow(alarm.Direction))
}

func Prompt(symbol string, current float64, known bool) string {
	return fmt.Sprintf(
		"🎯 Enter the target price for <b>%s</b>.\nCurrent price: %s\nExample: 117150\n\nCancel: /alarmcancel",
		html.EscapeString(symbol), PrettyPriceOf(current, known),
	)
}

const Usage = "⏰ <b>Price alarm</b>\n\nUsage:\n• <code>/alarm btc</code> asks for the target price\n• <code>/alarm btc 117150</code> sets it in one line\n\nList: <code>/alarmlist</code>"
