package generator

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// busyMarkers はエラー文言から過負荷やレート制限を判定するための語句です。
var busyMarkers = []string{"429", "503", "overload", "unavailable", "rate limit", "ratelimit", "quota", "resource_exhausted", "resource exhausted"}

// IsBusy は時間をおいて再試行すべき一時的なバックエンドエラーかどうかを判定します。
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := apiErrorCode(err); ok {
		if code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range busyMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// isModelNotFound はモデル ID が存在しないことを示すエラーかどうかを判定します。
func isModelNotFound(err error) bool {
	if code, ok := apiErrorCode(err); ok && code == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") && strings.Contains(msg, "model")
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
