package output

import "io"

// Writer сериализует Result в выбранный формат вывода.
// Реализации (JSONWriter, TextWriter) пишут только в переданный w —
// stdout принадлежит вызывающему коду.
type Writer interface {
	// Write форматирует result и записывает в w.
	Write(w io.Writer, result *Result) error
}
