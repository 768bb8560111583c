package validator

import (
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
)

type fieldKind int

const (
	kindNumeric fieldKind = iota
	kindEnum
)

// fieldRule 单个字段的约束
type fieldRule struct {
	kind     fieldKind
	required bool
	choices  []string // kindEnum 的可选值（有序）
}

// schema 录入记录的字段约束表。
// Pregnancies 在 schema 层是可选的；是否显示/采集由表单控制器决定。
var schema = map[domain.FieldID]fieldRule{
	domain.FieldAge:                {kind: kindNumeric, required: true},
	domain.FieldGender:             {kind: kindEnum, required: true, choices: []string{"male", "female"}},
	domain.FieldPregnancies:        {kind: kindNumeric, required: false},
	domain.FieldWeight:             {kind: kindNumeric, required: true},
	domain.FieldHeight:             {kind: kindNumeric, required: true},
	domain.FieldSkinThickness:      {kind: kindNumeric, required: true},
	domain.FieldGlucose:            {kind: kindNumeric, required: true},
	domain.FieldBloodPressure:      {kind: kindNumeric, required: true},
	domain.FieldInsulin:            {kind: kindNumeric, required: true},
	domain.FieldFamilyParents:      {kind: kindEnum, required: true, choices: []string{"0", "1", "2"}},
	domain.FieldFamilySiblings:     {kind: kindEnum, required: true, choices: []string{"0", "1", "2", "3", "4"}},
	domain.FieldFamilyGrandparents: {kind: kindEnum, required: true, choices: []string{"0", "1", "2", "3", "4"}},
}

// Choices returns the allowed values of an enum field, or nil for other fields.
func Choices(id domain.FieldID) []string {
	rule, ok := schema[id]
	if !ok || rule.kind != kindEnum {
		return nil
	}
	out := make([]string, len(rule.choices))
	copy(out, rule.choices)
	return out
}

// IsRequired reports whether the schema requires the field.
func IsRequired(id domain.FieldID) bool {
	return schema[id].required
}
