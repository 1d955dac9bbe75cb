package normalization

import (
	"regexp"
	"sort"
	"strings"
)

// ranks — військові звання, які зустрічаються перед ПІБ у ЖБД та табелі.
// Порядок у списку не важливий: перед використанням звання сортуються від
// довшого до коротшого, щоб "старший сержант" знімався цілком, а не як "сержант".
var ranks = []string{
	"солдат", "старший солдат",
	"капрал", "молодший капрал",
	"молодший сержант", "сержант", "старший сержант", "головний сержант",
	"майстер-сержант", "штаб-сержант",
	"прапорщик", "старший прапорщик",
	"молодший лейтенант", "лейтенант", "старший лейтенант", "капітан",
	"майор", "підполковник", "полковник",
	"генерал-майор", "генерал-лейтенант", "генерал-полковник", "генерал армії України",
}

var ranksByLength []string

var whitespaceRe = regexp.MustCompile(`\s+`)

func init() {
	ranksByLength = make([]string, len(ranks))
	copy(ranksByLength, ranks)
	sort.Slice(ranksByLength, func(i, j int) bool {
		return len(ranksByLength[i]) > len(ranksByLength[j])
	})
}

// NormalizeName нормалізує ПІБ: прибирає табуляції та зайві пробіли і знімає
// не більше одного військового звання з початку рядка. Якщо звання не знайдено,
// повертає рядок без змін (після нормалізації пробілів).
func NormalizeName(raw string) string {
	clean := strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
	lower := strings.ToLower(clean)

	for _, rank := range ranksByLength {
		if strings.HasPrefix(lower, strings.ToLower(rank)) {
			clean = strings.TrimSpace(clean[len(rank):])
			break
		}
	}

	return clean
}
