package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// only 限定请求方法，其他方法返回 405
func only(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.Header().Set("Allow", method)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

// RegisterHealthRoutes 健康检查
func (r *Router) RegisterHealthRoutes() {
	r.Handle("/healthz", only(http.MethodGet, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	}))
}

// RegisterIntakeRoutes 注册录入表单与报告路由
func (r *Router) RegisterIntakeRoutes(h *IntakeHandler) {
	// form
	r.Handle("/intake/api/v1/form", only(http.MethodGet, h.GetForm))
	r.Handle("/intake/api/v1/form/fields", only(http.MethodPut, h.SetField))
	r.Handle("/intake/api/v1/form/submit", only(http.MethodPost, h.Submit))
	r.Handle("/intake/api/v1/form/reset", only(http.MethodPost, h.Reset))
	r.Handle("/intake/api/v1/form/advice", only(http.MethodGet, h.GetAdvice))

	// report
	r.Handle("/intake/api/v1/report", only(http.MethodGet, h.DownloadReport))
}
