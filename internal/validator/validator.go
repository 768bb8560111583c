package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
)

// ValidateField 校验单个字段。present=false 表示字段未填写（与空字符串同等处理）。
// 返回 nil 表示校验通过。
func ValidateField(id domain.FieldID, raw string, present bool) *FieldError {
	rule, ok := schema[id]
	if !ok {
		return &FieldError{Field: id, Kind: InvalidChoice, Message: "unknown field"}
	}

	value := strings.TrimSpace(raw)
	if !present || value == "" {
		if rule.required {
			return &FieldError{Field: id, Kind: Required, Message: "this field is required"}
		}
		return nil
	}

	switch rule.kind {
	case kindNumeric:
		if _, err := parseNumber(value); err != nil {
			return &FieldError{Field: id, Kind: InvalidType, Message: "expected a number"}
		}
	case kindEnum:
		if id == domain.FieldGender {
			value = strings.ToLower(value)
		}
		if !contains(rule.choices, value) {
			return &FieldError{
				Field:   id,
				Kind:    InvalidChoice,
				Message: fmt.Sprintf("expected one of %s", strings.Join(rule.choices, ", ")),
			}
		}
	}
	return nil
}

// Validate 聚合校验整条记录；任一字段失败时返回全部字段错误。
func Validate(raw domain.RawRecord) (domain.IntakeRecord, *Errors) {
	errs := &Errors{}
	for _, id := range domain.FieldOrder {
		v, present := raw[id]
		if fe := ValidateField(id, v, present); fe != nil {
			errs.add(fe)
		}
	}
	if len(errs.Fields) > 0 {
		return domain.IntakeRecord{}, errs
	}

	// 以下转换在校验通过后不会失败
	rec := domain.IntakeRecord{
		Gender:             domain.Gender(strings.ToLower(strings.TrimSpace(raw[domain.FieldGender]))),
		Age:                mustNumber(raw[domain.FieldAge]),
		Weight:             mustNumber(raw[domain.FieldWeight]),
		Height:             mustNumber(raw[domain.FieldHeight]),
		Glucose:            mustNumber(raw[domain.FieldGlucose]),
		BloodPressure:      mustNumber(raw[domain.FieldBloodPressure]),
		SkinThickness:      mustNumber(raw[domain.FieldSkinThickness]),
		Insulin:            mustNumber(raw[domain.FieldInsulin]),
		FamilyParents:      mustInt(raw[domain.FieldFamilyParents]),
		FamilySiblings:     mustInt(raw[domain.FieldFamilySiblings]),
		FamilyGrandparents: mustInt(raw[domain.FieldFamilyGrandparents]),
	}
	if p, ok := raw[domain.FieldPregnancies]; ok && strings.TrimSpace(p) != "" {
		n := mustNumber(p)
		rec.Pregnancies = &n
	}
	return rec, nil
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

func mustNumber(s string) float64 {
	f, _ := parseNumber(s)
	return f
}

func mustInt(s string) int {
	i, _ := strconv.Atoi(strings.TrimSpace(s))
	return i
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
