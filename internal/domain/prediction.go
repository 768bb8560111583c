package domain

// PredictionResult 预测服务响应
type PredictionResult struct {
	Status     string  `json:"status"`
	Prediction float64 `json:"prediction"`
	Message    string  `json:"message"`    // 结果类别："Diabetic" | "Not Diabetic"
	Confidence string  `json:"confidence"` // 展示用字符串，如 "87.50%"
}

// Category 预测结果类别（决定建议内容）
type Category string

const (
	CategoryDiabetic    Category = "Diabetic"
	CategoryNotDiabetic Category = "Not Diabetic"
)

// Categories lists every recognized category in display order.
func Categories() []Category {
	return []Category{CategoryDiabetic, CategoryNotDiabetic}
}

// ParseCategory maps a result message onto a known category.
func ParseCategory(message string) (Category, bool) {
	switch Category(message) {
	case CategoryDiabetic:
		return CategoryDiabetic, true
	case CategoryNotDiabetic:
		return CategoryNotDiabetic, true
	default:
		return "", false
	}
}
