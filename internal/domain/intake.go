package domain

// FieldID 录入表单字段标识（与预测服务请求体的键名一致）
type FieldID string

const (
	FieldAge                FieldID = "Age"
	FieldGender             FieldID = "Gender"
	FieldPregnancies        FieldID = "Pregnancies"
	FieldWeight             FieldID = "Weight"
	FieldHeight             FieldID = "Height"
	FieldSkinThickness      FieldID = "SkinThickness"
	FieldGlucose            FieldID = "Glucose"
	FieldBloodPressure      FieldID = "BloodPressure"
	FieldInsulin            FieldID = "Insulin"
	FieldFamilyParents      FieldID = "FamilyParents"
	FieldFamilySiblings     FieldID = "FamilySiblings"
	FieldFamilyGrandparents FieldID = "FamilyGrandparents"
)

// FieldOrder is the order fields are shown, validated and reported in.
var FieldOrder = []FieldID{
	FieldAge,
	FieldGender,
	FieldPregnancies,
	FieldWeight,
	FieldHeight,
	FieldSkinThickness,
	FieldGlucose,
	FieldBloodPressure,
	FieldInsulin,
	FieldFamilyParents,
	FieldFamilySiblings,
	FieldFamilyGrandparents,
}

// ParseFieldID 解析字段名（大小写敏感，需与 FieldOrder 中的名称完全一致）
func ParseFieldID(s string) (FieldID, bool) {
	for _, id := range FieldOrder {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Gender 性别
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// RawRecord 原始表单值（文本形式）；缺少的键表示该字段未填写
type RawRecord map[FieldID]string

// Clone returns an independent copy of the raw values.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IntakeRecord 校验通过后的录入记录（已完成类型转换）
type IntakeRecord struct {
	Gender        Gender
	Age           float64
	Weight        float64 // kg
	Height        float64 // m
	Glucose       float64 // mg/dL
	BloodPressure float64 // 舒张压 mm Hg
	SkinThickness float64 // mm
	Insulin       float64 // μU/mL

	// 仅女性填写；nil 表示未提供
	Pregnancies *float64

	FamilyParents      int // 0..2
	FamilySiblings     int // 0..4
	FamilyGrandparents int // 0..4
}

// PregnancyCount returns the pregnancy count that is sent onward and reported.
// Male records and records without a value count as zero.
func (r IntakeRecord) PregnancyCount() float64 {
	if r.Gender != GenderFemale || r.Pregnancies == nil {
		return 0
	}
	return *r.Pregnancies
}

// Payload 构建发送给预测服务的请求体
func (r IntakeRecord) Payload() PredictionPayload {
	return PredictionPayload{
		Pregnancies:        r.PregnancyCount(),
		Gender:             string(r.Gender),
		Weight:             r.Weight,
		Height:             r.Height,
		Glucose:            r.Glucose,
		BloodPressure:      r.BloodPressure,
		SkinThickness:      r.SkinThickness,
		Insulin:            r.Insulin,
		Age:                r.Age,
		FamilyParents:      r.FamilyParents,
		FamilySiblings:     r.FamilySiblings,
		FamilyGrandparents: r.FamilyGrandparents,
	}
}

// PredictionPayload 预测服务请求体（键名固定）
type PredictionPayload struct {
	Pregnancies        float64 `json:"Pregnancies"`
	Gender             string  `json:"Gender"`
	Weight             float64 `json:"Weight"`
	Height             float64 `json:"Height"`
	Glucose            float64 `json:"Glucose"`
	BloodPressure      float64 `json:"BloodPressure"`
	SkinThickness      float64 `json:"SkinThickness"`
	Insulin            float64 `json:"Insulin"`
	Age                float64 `json:"Age"`
	FamilyParents      int     `json:"FamilyParents"`
	FamilySiblings     int     `json:"FamilySiblings"`
	FamilyGrandparents int     `json:"FamilyGrandparents"`
}
