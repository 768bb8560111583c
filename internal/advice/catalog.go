package advice

import (
	"fmt"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
)

// Entry 按结果类别提供的健康建议
type Entry struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Diet      []string `json:"diet"`
	Exercise  []string `json:"exercise"`
	Lifestyle []string `json:"lifestyle"`
}

// UnknownCategoryError 预测结果的类别不在已知范围内
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown outcome category %q", e.Category)
}

var catalog = map[domain.Category]Entry{
	domain.CategoryDiabetic: {
		Title: "Health Advice for Diabetes Management",
		Summary: "This assessment indicates a higher risk of diabetes. We strongly recommend " +
			"consulting with a healthcare professional for proper evaluation and guidance.",
		Diet: []string{
			"Eat high fiber foods like vegetables and whole grains.",
			"Avoid sugary drinks and limit carbs.",
			"Control portion sizes and monitor blood sugar levels.",
		},
		Exercise: []string{
			"Engage in light to moderate exercise daily, such as walking or swimming.",
			"Avoid long sedentary periods move every 30 minutes.",
			"Check blood sugar before and after intense workouts.",
		},
		Lifestyle: []string{
			"Take medications as prescribed.",
			"Track glucose regularly.",
			"Get enough rest and reduce stress.",
		},
	},
	domain.CategoryNotDiabetic: {
		Title: "Health Advice for Low Diabetes Risk",
		Summary: "This assessment indicates a lower risk of diabetes. Continue maintaining a " +
			"healthy lifestyle and regular check-ups with your healthcare provider.",
		Diet: []string{
			"Maintain a balanced diet with plenty of vegetables, whole grains, and lean proteins.",
			"Limit refined sugars and processed foods.",
			"Stay hydrated aim for at least 8 cups of water daily.",
		},
		Exercise: []string{
			"Engage in at least 30 minutes of physical activity most days of the week.",
			"Incorporate strength training twice a week.",
			"Take regular walks after meals to regulate blood sugar.",
		},
		Lifestyle: []string{
			"Get 7-8 hours of sleep nightly.",
			"Manage stress through mindfulness or meditation.",
			"Avoid smoking and limit alcohol intake.",
		},
	},
}

// Lookup 根据预测结果的 message 查找建议；未知类别返回 *UnknownCategoryError
func Lookup(message string) (Entry, error) {
	category, ok := domain.ParseCategory(message)
	if !ok {
		return Entry{}, &UnknownCategoryError{Category: message}
	}
	return For(category), nil
}

// For returns a copy of the entry for a known category.
func For(category domain.Category) Entry {
	e := catalog[category]
	return Entry{
		Title:     e.Title,
		Summary:   e.Summary,
		Diet:      append([]string(nil), e.Diet...),
		Exercise:  append([]string(nil), e.Exercise...),
		Lifestyle: append([]string(nil), e.Lifestyle...),
	}
}

// Catalog 建议目录（供报告组装使用，便于测试替换）
type Catalog interface {
	Lookup(message string) (Entry, error)
}

type staticCatalog struct{}

func (staticCatalog) Lookup(message string) (Entry, error) { return Lookup(message) }

// Default is the built-in catalog.
var Default Catalog = staticCatalog{}
