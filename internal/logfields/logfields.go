package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyPackage    = "package"
	KeyTopic      = "topic"
	KeyArticle    = "article"
	KeySection    = "section"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyName       = "name"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyDepth      = "depth"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Package(p string) slog.Attr      { return slog.String(KeyPackage, p) }
func Topic(t string) slog.Attr        { return slog.String(KeyTopic, t) }
func Article(a string) slog.Attr      { return slog.String(KeyArticle, a) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Depth(d int) slog.Attr           { return slog.Int(KeyDepth, d) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
