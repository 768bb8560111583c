package form

import (
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/validator"
)

// FieldInfo 字段展示信息（标签、占位提示、说明）
type FieldInfo struct {
	ID          domain.FieldID `json:"id"`
	Label       string         `json:"label"`
	Placeholder string         `json:"placeholder"`
	Hint        string         `json:"hint,omitempty"`
	Choices     []string       `json:"choices,omitempty"`
	Required    bool           `json:"required"`
}

var fieldInfo = map[domain.FieldID]FieldInfo{
	domain.FieldAge:         {Label: "Age (Years)", Placeholder: "e.g., 45"},
	domain.FieldGender:      {Label: "Gender", Placeholder: "male / female"},
	domain.FieldPregnancies: {Label: "Number of Pregnancies", Placeholder: "e.g., 2"},
	domain.FieldWeight:      {Label: "Weight (kg)", Placeholder: "e.g., 70.5"},
	domain.FieldHeight:      {Label: "Height (m)", Placeholder: "e.g., 1.75"},
	domain.FieldSkinThickness: {
		Label:       "Skin Thickness (mm)",
		Placeholder: "15 / 25 / 40",
		Hint:        "Slim (10-20 mm) 15, Average (20-30 mm) 25, Overweight (35-50 mm) 40.",
	},
	domain.FieldGlucose: {Label: "Glucose Level (mg/dL)", Placeholder: "e.g., 120"},
	domain.FieldBloodPressure: {
		Label:       "Diastolic Blood Pressure (mm Hg)",
		Placeholder: "Diastolic (bottom number), e.g., 80",
		Hint:        "Enter the bottom number (diastolic) of your blood pressure reading. Example: in 120/80 mmHg, type 80.",
	},
	domain.FieldInsulin: {
		Label:       "Insulin Level (μU/mL)",
		Placeholder: "e.g., 85",
		Hint:        "If you do not know your insulin level, enter a typical adult average (~85 μU/mL).",
	},
	domain.FieldFamilyParents:      {Label: "Parents with Diabetes", Placeholder: "0 - 2"},
	domain.FieldFamilySiblings:     {Label: "Siblings with Diabetes", Placeholder: "0 - 4"},
	domain.FieldFamilyGrandparents: {Label: "Grandparents with Diabetes", Placeholder: "0 - 4"},
}

// Info returns the presentation metadata of a field.
func Info(id domain.FieldID) FieldInfo {
	info := fieldInfo[id]
	info.ID = id
	info.Choices = validator.Choices(id)
	info.Required = validator.IsRequired(id)
	return info
}

// defaults 重置后的字段默认值：数值为 "0"，选择类字段为空（未选择）
func defaults() domain.RawRecord {
	return domain.RawRecord{
		domain.FieldAge:                "0",
		domain.FieldGender:             "",
		domain.FieldPregnancies:        "0",
		domain.FieldWeight:             "0",
		domain.FieldHeight:             "0",
		domain.FieldSkinThickness:      "0",
		domain.FieldGlucose:            "0",
		domain.FieldBloodPressure:      "0",
		domain.FieldInsulin:            "0",
		domain.FieldFamilyParents:      "",
		domain.FieldFamilySiblings:     "",
		domain.FieldFamilyGrandparents: "",
	}
}

// Defaults returns a fresh copy of the field defaults.
func Defaults() domain.RawRecord { return defaults() }

// VisibleFields 根据当前值计算需要显示/采集的字段（纯函数）。
// Pregnancies 仅在 gender = female 时显示。
func VisibleFields(values domain.RawRecord) []domain.FieldID {
	female := normalizeGender(values[domain.FieldGender]) == domain.GenderFemale
	out := make([]domain.FieldID, 0, len(domain.FieldOrder))
	for _, id := range domain.FieldOrder {
		if id == domain.FieldPregnancies && !female {
			continue
		}
		out = append(out, id)
	}
	return out
}

// IsVisible reports whether a field is shown for the given values.
func IsVisible(values domain.RawRecord, id domain.FieldID) bool {
	for _, v := range VisibleFields(values) {
		if v == id {
			return true
		}
	}
	return false
}
