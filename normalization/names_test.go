package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName_StripsRank(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain rank", "сержант Коваль", "Коваль"},
		{"two-word rank is stripped as a unit", "старший сержант Іванов Іван", "Іванов Іван"},
		{"junior rank", "молодший сержант Петренко Петро Петрович", "Петренко Петро Петрович"},
		{"officer rank", "капітан Шевченко Тарас", "Шевченко Тарас"},
		{"no rank", "Бондаренко Олег", "Бондаренко Олег"},
		{"rank case-insensitive", "СТАРШИЙ ЛЕЙТЕНАНТ Мельник Ігор", "Мельник Ігор"},
		{"tabs and double spaces", "рядовий\tПетренко  Петро", "рядовий Петренко Петро"},
		{"hyphenated rank", "майстер-сержант Ткаченко Андрій", "Ткаченко Андрій"},
		{"empty string", "", ""},
		{"only whitespace", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.raw))
		})
	}
}

func TestNormalizeName_OnlyOneRankRemoved(t *testing.T) {
	// Звання знімається лише один раз: друге слово-звання лишається,
	// бо воно вже частина "імені" після першого зняття.
	assert.Equal(t, "сержант Коваль", NormalizeName("сержант сержант Коваль"))
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"старший сержант Іванов Іван",
		"Коваль Василь",
		"  полковник   Деркач Сергій ",
		"",
	}

	for _, raw := range inputs {
		once := NormalizeName(raw)
		assert.Equal(t, once, NormalizeName(once), "raw=%q", raw)
	}
}

func TestNormalizePayment(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"б", "Б"},
		{"Б", "Б"},
		{"b", "В"},     // латинська b → кирилична В
		{"B", "В"},     // латинська B → кирилична В
		{"H", "Н"},     // латинська H → кирилична Н
		{"3BP", "ЗВР"}, // цифра 3 та латинські B, P
		{"звр", "ЗВР"},
		{"P", "Р"},
		{"R", "Р"},
		{" Н ", "Н"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePayment(tt.raw))
		})
	}
}

func TestNormalizePayment_Idempotent(t *testing.T) {
	inputs := []string{"b", "3BP", "Б", "zvr", "X", "невідомо"}

	for _, raw := range inputs {
		once := NormalizePayment(raw)
		assert.Equal(t, once, NormalizePayment(once), "raw=%q", raw)
	}
}

func TestNormalizePayment_LatinAndCyrillicAgree(t *testing.T) {
	assert.Equal(t, NormalizePayment("В"), NormalizePayment("b"))
	assert.Equal(t, NormalizePayment("Р"), NormalizePayment("p"))
	assert.Equal(t, NormalizePayment("Н"), NormalizePayment("h"))
}
