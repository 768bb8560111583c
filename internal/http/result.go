package httpapi

// Result 统一响应包装
// - code: 2000 成功，-1 失败
// - type: 'success' | 'error'
// - message: string
// - result: any
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// FailWith 失败响应，同时携带结果（例如字段错误列表或当前表单快照）
func FailWith[T any](message string, result T) Result[T] {
	return Result[T]{Code: ResultError, Type: "error", Message: message, Result: result}
}
