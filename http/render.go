package http

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayLanguages = language.NewMatcher([]language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
	language.Portuguese,
	language.Dutch,
})

// printerFor 根据Accept-Language选择数字格式
func printerFor(r *http.Request) *message.Printer {
	tag, _ := language.MatchStrings(displayLanguages, r.Header.Get("Accept-Language"))
	return message.NewPrinter(tag)
}

func formatPercent(p *message.Printer, value float64) string {
	return p.Sprintf("%.2f%%", value)
}
