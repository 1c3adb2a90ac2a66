package validate

import "github.com/otelview-labs/otelview/internal/collector"

// Local runs client-equivalent validation: YAML parse plus structural
// checks of the collector document.
func Local(text string) Report {
	doc, perr := collector.Parse(text)
	if perr != nil {
		return Report{ParseError: perr}
	}
	return Report{Issues: collector.Check(doc)}
}
