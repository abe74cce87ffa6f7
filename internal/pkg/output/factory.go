package output

import "strings"

// Значения R2G_OUTPUT_FORMAT.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewWriter выбирает Writer по значению формата (регистр не важен).
// Неизвестный формат трактуется как text — человекочитаемый вывод
// безопаснее, чем ошибка из-за опечатки в переменной окружения.
func NewWriter(format string) Writer {
	if strings.EqualFold(format, FormatJSON) {
		return NewJSONWriter()
	}
	return NewTextWriter()
}
