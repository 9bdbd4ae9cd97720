package services

import (
	"strings"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
)

// Confidence of a useful-life estimate
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

type UsefulLifeEstimate struct {
	Years      int    `json:"years"`
	Confidence string `json:"confidence"`
	Basis      string `json:"basis"`
}

type lifeRule struct {
	basis    string
	keywords []string
	years    int
}

// Baseline lifespans per equipment class, loosely following the COA
// schedule for common government property.
var lifeRules = []lifeRule{
	{"ICT equipment", []string{"laptop", "computer", "desktop", "printer", "scanner", "projector", "monitor", "server", "router", "tablet", "ups"}, 5},
	{"communication equipment", []string{"radio", "telephone", "cellphone", "intercom"}, 5},
	{"furniture and fixtures", []string{"table", "desk", "chair", "cabinet", "shelf", "shelving", "sofa", "drawer", "partition"}, 10},
	{"appliances", []string{"aircon", "air conditioner", "refrigerator", "freezer", "microwave", "television", "water dispenser", "electric fan"}, 5},
	{"motor vehicles", []string{"vehicle", "motorcycle", "van", "truck", "car", "ambulance"}, 7},
	{"technical and scientific equipment", []string{"microscope", "centrifuge", "generator", "drill", "welding", "chainsaw", "mower"}, 10},
	{"books", []string{"book", "manual", "encyclopedia"}, 5},
}

// EstimateUsefulLife guesses an estimated useful life in years from a
// free-text description and the unit cost. Keyword hits give a high
// confidence call; otherwise the cost bracket alone decides, with lower
// confidence. Deterministic on purpose so re-running intake produces
// the same number.
func EstimateUsefulLife(description string, unitCost float64) UsefulLifeEstimate {
	text := strings.ToLower(description)

	for _, rule := range lifeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				years := rule.years
				// Costlier units within a class tend to be built to
				// last; nudge the estimate up one step.
				if unitCost > 50000 {
					years += 2
				}
				return UsefulLifeEstimate{Years: years, Confidence: ConfidenceHigh, Basis: rule.basis}
			}
		}
	}

	// No keyword hit: fall back to cost brackets.
	switch {
	case unitCost > 50000:
		return UsefulLifeEstimate{Years: 10, Confidence: ConfidenceMedium, Basis: "cost bracket"}
	case unitCost > models.HighValueThreshold:
		return UsefulLifeEstimate{Years: 5, Confidence: ConfidenceMedium, Basis: "cost bracket"}
	default:
		return UsefulLifeEstimate{Years: 3, Confidence: ConfidenceLow, Basis: "default"}
	}
}
