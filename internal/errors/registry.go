package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Hydration Errors (E040-E049)
	// ============================================

	"E040": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: node kind differs",
		Detail:   "The parsed markup has a different kind of node (element, text, comment) where the constructed fragment expects another.",
	},
	"E041": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: element tag differs",
		Detail:   "The parsed markup has a different element where the constructed fragment expects another. Invalid nesting is usually reshaped by the HTML parser.",
	},
	"E042": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: text content differs",
		Detail:   "Adjacent text nodes could not be matched because their combined content differs.",
	},
	"E043": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: missing node",
		Detail:   "One tree ran out of child nodes before the other.",
	},

	// ============================================
	// Runtime Errors (E050-E059)
	// ============================================

	"E051": {
		Category: CategoryRuntime,
		Message:  "Invalid list index",
		Detail:   "Insert, remove and move must be called after the data is mutated, with indices that match the rendered items.",
	},
	"E052": {
		Category: CategoryRuntime,
		Message:  "Value is not a sequence",
		Detail:   "An each block expression must evaluate to a slice, an array or nothing.",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "tether.json could not be read or parsed.",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No tether.json was found.",
	},

	// ============================================
	// Template Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryTemplate,
		Message:  "Invalid template description",
		Detail:   "The template file is not a list of node entries.",
	},
	"E151": {
		Category: CategoryTemplate,
		Message:  "Unknown node kind",
		Detail:   "Each entry needs exactly one of text, bind, comment, element, block, if or each.",
	},
	"E152": {
		Category: CategoryTemplate,
		Message:  "Invalid data file",
		Detail:   "The data file must be a YAML or JSON document.",
	},

	// ============================================
	// CLI Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Invalid log level",
		Detail:   "Use one of debug, info, warn or error.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
