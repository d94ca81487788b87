package bank

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// importSchema validates bulk-imported question documents before any record
// enters the bank.
const importSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "marks", "taxonomy", "type"],
    "properties": {
      "id": {"type": "string"},
      "courseId": {"type": "string"},
      "text": {"type": "string", "minLength": 1},
      "marks": {"type": "integer", "minimum": 0},
      "topic": {"type": "string"},
      "taxonomy": {"type": "string", "pattern": "^[CPA][1-7]$"},
      "construct": {"enum": ["SS", "GS", ""]},
      "type": {
        "enum": ["mcq", "short-answer", "essay", "calculation",
                 "diagram-label", "measurement", "structure"]
      },
      "subQuestions": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["label", "text", "marks"],
          "properties": {
            "label": {"type": "string"},
            "text": {"type": "string"},
            "marks": {"type": "integer", "minimum": 0},
            "answer": {"type": "string"}
          }
        }
      },
      "answer": {"type": "string"},
      "cloKeys": {"type": "array", "items": {"type": "string"}},
      "mqfKeys": {"type": "array", "items": {"type": "string"}},
      "mqfCluster": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

// Import parses a JSON array of questions, rejecting the whole document if
// it fails schema validation. Accepted questions get IDs where missing and
// marks re-synced from sub-questions.
func Import(data []byte) ([]Question, error) {
	schema := gojsonschema.NewStringLoader(importSchema)
	doc := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schema, doc)
	if err != nil {
		return nil, fmt.Errorf("validating import: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, e := range result.Errors() {
			issues = append(issues, e.String())
		}
		return nil, fmt.Errorf("import rejected: %s", strings.Join(issues, "; "))
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decoding import: %w", err)
	}

	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = newImportID()
		}
		questions[i].SyncMarks()
	}
	return questions, nil
}

func newImportID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return fmt.Sprintf("import-%x", b)
}
