package quiz

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed questions.json
var defaultBankJSON []byte

//go:embed questions.schema.json
var bankSchemaJSON []byte

const bankSchemaURL = "schema://cyberguard/questions.json"

var (
	compileOnce sync.Once
	bankSchema  *jsonschema.Schema
	compileErr  error
)

// DefaultBank returns the embedded question pool. It panics if the embedded
// bank is invalid, which is a build defect.
func DefaultBank() []Question {
	qs, err := ParseBank(defaultBankJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank: %v", err))
	}
	return qs
}

// ParseBank validates raw JSON against the bank schema and decodes it.
// Beyond the schema it runs validatePool.
func ParseBank(raw []byte) ([]Question, error) {
	schema, err := compiledBankSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidBank, err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	var qs []Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidBank, err)
	}

	if err := validatePool(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// validatePool checks the record invariants the engine relies on: unique
// IDs, exactly OptionsPerQuestion options and an answer index among them.
func validatePool(qs []Question) error {
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidBank, q.ID)
		}
		seen[q.ID] = true

		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has %d options, want %d",
				ErrInvalidBank, q.ID, len(q.Options), OptionsPerQuestion)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return fmt.Errorf("%w: question %d answer %d out of range", ErrInvalidBank, q.ID, q.Answer)
		}
	}
	return nil
}

func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		bankSchema, compileErr = c.Compile(bankSchemaURL)
	})
	return bankSchema, compileErr
}
