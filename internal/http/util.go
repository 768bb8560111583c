package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes 请求体上限（表单字段很小）
const maxBodyBytes = 64 << 10

var (
	errEmptyBody    = errors.New("request body is empty")
	errBodyTooLarge = errors.New("request body too large")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readBodyJSON 解码单个 JSON 对象：拒绝空请求体、超长请求体、未知字段和尾随内容
func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return err
	}
	if int64(len(body)) > maxBytes {
		return errBodyTooLarge
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON object")
	}
	return nil
}
