package grafana

import (
	"fmt"
	"regexp"

	"github.com/prometheus/common/model"
)

var legendVarRe = regexp.MustCompile(`\{\{\s*([^}\s]+)\s*\}\}`)

var knownFormats = map[string]bool{
	UnitShort:       true,
	UnitPercentUnit: true,
	UnitPercent:     true,
	UnitBytes:       true,
	UnitSeconds:     true,
}

// Validate checks the structural invariants of the document: axis
// bounds are ordered, units come from the known set and every legend
// format references only labels its query grouping preserves.
func (b *Board) Validate() error {
	for _, p := range b.Panels {
		if p.Type == PanelRow {
			continue
		}
		for _, axis := range p.Yaxes {
			if !knownFormats[axis.Format] {
				return fmt.Errorf("panel %q: unknown axis format %q", p.Title, axis.Format)
			}
			if axis.Min != nil && axis.Max != nil && *axis.Min > *axis.Max {
				return fmt.Errorf("panel %q: axis min %v above max %v", p.Title, *axis.Min, *axis.Max)
			}
		}
		for _, t := range p.Targets {
			if err := validateLegend(t); err != nil {
				return fmt.Errorf("panel %q: %v", p.Title, err)
			}
		}
	}
	return nil
}

func validateLegend(t Target) error {
	for _, m := range legendVarRe.FindAllStringSubmatch(t.LegendFormat, -1) {
		name := m[1]
		if !model.LabelName(name).IsValid() {
			return fmt.Errorf("legend %q: bad label name %q", t.LegendFormat, name)
		}
		if t.Grouping == nil {
			continue
		}
		found := false
		for _, l := range t.Grouping {
			if l == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("legend %q: label %q is dropped by the query grouping %v",
				t.LegendFormat, name, t.Grouping)
		}
	}
	return nil
}
