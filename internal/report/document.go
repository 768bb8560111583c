package report

import (
	"errors"
	"strconv"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/advice"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
)

const (
	AppName = "GlucoSense"
	Title   = "Diabetes Risk Assessment Report"

	DisclaimerText = "This report is generated by an automated screening tool for informational " +
		"purposes only. It is not a medical diagnosis and does not replace professional " +
		"medical advice. Please consult a qualified healthcare provider about your results."
)

// ErrMissingAdvice 有预测结果但未提供对应建议
var ErrMissingAdvice = errors.New("advice entry is required when a result is present")

// SectionKind 报告章节类型（顺序固定）
type SectionKind string

const (
	SectionBasic      SectionKind = "basic"
	SectionPhysical   SectionKind = "physical"
	SectionClinical   SectionKind = "clinical"
	SectionFamily     SectionKind = "family"
	SectionResult     SectionKind = "result"
	SectionAdvice     SectionKind = "advice"
	SectionDisclaimer SectionKind = "disclaimer"
)

// Field 一行 "标签: 值"
type Field struct {
	Label string
	Value string
}

// List 带标题的有序条目
type List struct {
	Heading string
	Items   []string
}

// Section 报告章节
type Section struct {
	Kind       SectionKind
	Heading    string
	Fields     []Field
	Paragraphs []string
	Lists      []List
}

// Document 组装好的报告（与渲染方式无关）
type Document struct {
	AppName  string
	Title    string
	Sections []Section
}

// Section returns the first section of the given kind.
func (d Document) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Compose 纯函数：由录入记录、预测结果和建议组装报告。
// result 为 nil 时不输出结果与建议章节；免责声明始终在最后。
func Compose(record domain.IntakeRecord, result *domain.PredictionResult, entry *advice.Entry) (Document, error) {
	if result != nil && entry == nil {
		return Document{}, ErrMissingAdvice
	}

	basic := Section{
		Kind:    SectionBasic,
		Heading: "Basic Information",
		Fields: []Field{
			{Label: "Age", Value: formatNumber(record.Age)},
			{Label: "Gender", Value: string(record.Gender)},
		},
	}
	if record.Gender == domain.GenderFemale {
		basic.Fields = append(basic.Fields, Field{Label: "Pregnancies", Value: formatNumber(record.PregnancyCount())})
	}

	doc := Document{
		AppName: AppName,
		Title:   Title,
		Sections: []Section{
			basic,
			{
				Kind:    SectionPhysical,
				Heading: "Physical Measurements",
				Fields: []Field{
					{Label: "Weight", Value: formatNumber(record.Weight) + " kg"},
					{Label: "Height", Value: formatNumber(record.Height) + " m"},
					{Label: "Skin Thickness", Value: formatNumber(record.SkinThickness) + " mm"},
				},
			},
			{
				Kind:    SectionClinical,
				Heading: "Clinical Measurements",
				Fields: []Field{
					{Label: "Glucose", Value: formatNumber(record.Glucose) + " mg/dL"},
					{Label: "Blood Pressure", Value: formatNumber(record.BloodPressure) + " mm Hg"},
					{Label: "Insulin", Value: formatNumber(record.Insulin) + " μU/mL"},
				},
			},
			{
				Kind:    SectionFamily,
				Heading: "Family History",
				Fields: []Field{
					{Label: "Parents", Value: strconv.Itoa(record.FamilyParents)},
					{Label: "Siblings", Value: strconv.Itoa(record.FamilySiblings)},
					{Label: "Grandparents", Value: strconv.Itoa(record.FamilyGrandparents)},
				},
			},
		},
	}

	if result != nil {
		resultSection := Section{
			Kind:    SectionResult,
			Heading: "Result",
			Fields: []Field{
				{Label: "Assessment", Value: result.Message},
				{Label: "Confidence Level", Value: result.Confidence},
			},
		}
		if entry.Summary != "" {
			resultSection.Paragraphs = []string{entry.Summary}
		}
		doc.Sections = append(doc.Sections,
			resultSection,
			Section{
				Kind:    SectionAdvice,
				Heading: entry.Title,
				Lists: []List{
					{Heading: "Diet", Items: append([]string(nil), entry.Diet...)},
					{Heading: "Exercise", Items: append([]string(nil), entry.Exercise...)},
					{Heading: "Lifestyle", Items: append([]string(nil), entry.Lifestyle...)},
				},
			},
		)
	}

	doc.Sections = append(doc.Sections, Section{
		Kind:       SectionDisclaimer,
		Heading:    "Disclaimer",
		Paragraphs: []string{DisclaimerText},
	})
	return doc, nil
}

// Build 查找建议并组装报告；未知结果类别时返回 *advice.UnknownCategoryError，报告不生成
func Build(record domain.IntakeRecord, result *domain.PredictionResult, catalog advice.Catalog) (Document, error) {
	if result == nil {
		return Compose(record, nil, nil)
	}
	entry, err := catalog.Lookup(result.Message)
	if err != nil {
		return Document{}, err
	}
	return Compose(record, result, &entry)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
