// Package prose detects person names with the prose NLP library.
package prose

import (
	"strings"

	"github.com/fwojciec/nametrail"
	"github.com/jdkato/prose/v2"
)

// Ensure NameDetector implements nametrail.NameDetector at compile time.
var _ nametrail.NameDetector = (*NameDetector)(nil)

const personLabel = "PERSON"

// modelName labels the bundled English tagger and entity model.
const modelName = "en-v2.0.0"

// NameDetector tags person entities using prose's averaged perceptron
// named-entity model. The model is read-only after construction and is
// shared by concurrent calls.
type NameDetector struct {
	model *prose.Model
}

// NewNameDetector creates a new NameDetector, loading the bundled model once.
func NewNameDetector() *NameDetector {
	return &NameDetector{model: prose.ModelFromData(modelName)}
}

// DetectPersonNames returns the text of every PERSON entity in order of
// appearance. Each line is tagged on its own so entities never span a
// heading and the paragraph below it.
func (d *NameDetector) DetectPersonNames(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	var names []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if line == "" {
			continue
		}

		doc, err := prose.NewDocument(line, prose.WithSegmentation(false), prose.UsingModel(d.model))
		if err != nil {
			return nil, nametrail.Errorf(nametrail.EINTERNAL, "entity extraction failed: %v", err)
		}

		for _, ent := range doc.Entities() {
			if ent.Label == personLabel {
				names = append(names, ent.Text)
			}
		}
	}
	return names, nil
}
