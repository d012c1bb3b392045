package gong

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// buildSignature computes the request signature the call recording
// service verifies. The canonical string layout and its "\n" delimiter
// are a wire contract: timestamp, request ID, HTTP method, URL path and
// raw body, in that order, HMAC-SHA256 signed with the secret key and
// base64 encoded.
func buildSignature(secretKey, timestamp, requestID, method, path string, body []byte) string {
	canonical := strings.Join([]string{timestamp, requestID, method, path, string(body)}, "\n")

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(canonical))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// setAuthHeaders signs the request and sets the full authentication
// header set. Timestamp and request ID are both the current epoch
// milliseconds, generated fresh for every request.
func setAuthHeaders(req *http.Request, accessKey, secretKey string, body []byte, now time.Time) {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	requestID := ts

	req.SetBasicAuth(accessKey, secretKey)
	req.Header.Set("X-Timestamp", ts)
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("X-Signature", buildSignature(secretKey, ts, requestID, req.Method, req.URL.Path, body))
	req.Header.Set("Content-Type", "application/json")
}
