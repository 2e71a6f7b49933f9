package export

import "fmt"

// ValidateDashboard performs structural checks on a layout before it
// enters the pipeline. The orchestrator assumes its input is already
// validated; the HTTP boundary calls this on decoded request bodies.
// Business semantics (colors, chart data plausibility) are deliberately
// not checked here.
func ValidateDashboard(dashboard DashboardConfig) error {
	seen := make(map[string]struct{}, len(dashboard.Components))
	for i, component := range dashboard.Components {
		if component.ID == "" {
			return NewError(KindValidation, fmt.Sprintf("component %d is missing an id", i), nil)
		}
		if _, dup := seen[component.ID]; dup {
			return NewError(KindValidation, fmt.Sprintf("component id %q is duplicated", component.ID), nil)
		}
		seen[component.ID] = struct{}{}

		for j, dataset := range component.Data.Datasets {
			if len(dataset.Labels) > 0 && len(dataset.Data) > 0 && len(dataset.Labels) != len(dataset.Data) {
				return NewError(KindValidation,
					fmt.Sprintf("component %q dataset %d has %d labels but %d values",
						component.ID, j, len(dataset.Labels), len(dataset.Data)), nil)
			}
		}
	}
	return nil
}
