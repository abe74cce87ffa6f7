package mapper

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ToUsername выводит логин Gitea из полного имени пользователя Redmine
// для простых случаев: первая буква имени + инициал частицы (tussenvoegsel,
// если частей больше двух) + фамилия, в нижнем регистре.
// Диакритика сворачивается к базовым буквам: "Anna Müller" → "amuller".
//
// Примеры:
//
//	"Jan van Dijk"  → "jvdijk"
//	"Anna Schmidt"  → "aschmidt"
func ToUsername(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}

	firstLetter := string([]rune(parts[0])[:1])
	tussenvoegsel := ""
	if len(parts) > 2 {
		tussenvoegsel = string([]rune(parts[1])[:1])
	}
	lastname := parts[len(parts)-1]

	return strings.ToLower(foldDiacritics(firstLetter + tussenvoegsel + lastname))
}

// foldDiacritics убирает комбинируемые диакритические знаки:
// NFD разложение, удаление Mn, сборка обратно в NFC.
// При ошибке трансформации возвращает строку как есть.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
