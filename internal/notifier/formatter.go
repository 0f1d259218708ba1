package notifier

import (
	"fmt"
	"strings"
	"time"

	"MarketLens/internal/model"
)

// FormatDate renders a day the way the Finnish locale does (d.m.yyyy).
func FormatDate(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d.%d.%d", t.Day(), int(t.Month()), t.Year())
}

func formatMinute(minute int64) string {
	return FormatDate(model.MinuteTime(minute))
}

// FormatReport formats a statistics report into a Telegram HTML message.
func FormatReport(r *model.Report) string {
	var b strings.Builder
	cur := strings.ToUpper(r.Currency)
	res := r.Result

	b.WriteString(fmt.Sprintf("📊 <b>%s statistics</b> | %s – %s (%s)\n\n",
		title(r.Coin), FormatDate(r.Range.Start()), FormatDate(r.Range.End()), cur))

	b.WriteString("📉 <b>Longest downward streak:</b> ")
	switch res.LongestDownwardStreak {
	case 0:
		b.WriteString("no price data\n")
	case 1:
		b.WriteString("1 day\n")
	default:
		b.WriteString(fmt.Sprintf("%d days\n", res.LongestDownwardStreak))
	}

	b.WriteString("📈 <b>Highest trading volume:</b> ")
	if v := res.PeakVolume; v != nil {
		b.WriteString(fmt.Sprintf("%s, %.2f %s\n", formatMinute(v.Minute), v.Volume, cur))
	} else {
		b.WriteString("no trading volume in range\n")
	}

	b.WriteString("\n💰 <b>When to buy/sell</b>\n")
	switch w := res.ProfitWindow; {
	case w != nil:
		b.WriteString(fmt.Sprintf("Buy: %s (%.2f %s)\n", formatMinute(w.BuyMinute), w.BuyPrice, cur))
		b.WriteString(fmt.Sprintf("Sell: %s (%.2f %s)\n", formatMinute(w.SellMinute), w.SellPrice, cur))
		b.WriteString(fmt.Sprintf("Profit: %.2f %s\n", w.Profit, cur))
	case res.PriceDays < 2:
		b.WriteString("Not enough price data\n")
	default:
		b.WriteString("Value only decreasing, no suitable dates\n")
	}

	if r.Cached {
		b.WriteString("\n<i>cached data</i>")
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"• /stats YYYY-MM-DD YYYY-MM-DD – statistics for a date range\n" +
		"• /report – statistics for the configured trailing window\n" +
		"• /help – this message"
}

var tagStripper = strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "")

// PlainText removes the HTML tags used by the formatters.
func PlainText(s string) string {
	return tagStripper.Replace(s)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
