// Package sl — мелкие помощники для log/slog.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error", чтобы записи
// об ошибках во всем сервисе выглядели одинаково:
//
//	log.Error("failed to save post", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
