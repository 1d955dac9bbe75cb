package normalization

import "strings"

// homoglyphs — латинські символи, які оператори часто набирають замість
// візуально однакових кириличних. Заміна посимвольна, без контексту:
// багатосимвольні послідовності не переінтерпретовуються.
var homoglyphs = map[rune]rune{
	'A': 'А', 'B': 'В', 'C': 'С', 'E': 'Е', 'H': 'Н', 'K': 'К', 'M': 'М', 'O': 'О',
	'P': 'Р', 'R': 'Р', 'T': 'Т', 'X': 'Х', 'Y': 'У', 'V': 'В', 'Z': 'З', '3': 'З',
	'a': 'а', 'b': 'в', 'c': 'с', 'e': 'е', 'h': 'н', 'k': 'к', 'm': 'м', 'o': 'о',
	'p': 'р', 'r': 'р', 't': 'т', 'x': 'х', 'y': 'у', 'v': 'в', 'z': 'з',
}

// NormalizePayment приводить код виплати до стандартизованого вигляду:
// латинські гомогліфи замінюються кирилицею, результат переводиться у верхній
// регістр. Порожнє значення (або значення з самих пробілів) дає "" — "немає коду".
func NormalizePayment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	mapped := strings.Map(func(r rune) rune {
		if repl, ok := homoglyphs[r]; ok {
			return repl
		}
		return r
	}, text)

	return strings.ToUpper(mapped)
}
