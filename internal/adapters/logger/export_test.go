// export_test.go exports private functions for white-box testing.
package logger

import "io"

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

func RendererWriter(s *WarningSink) io.Writer {
	return s.renderer().Output().Writer()
}
