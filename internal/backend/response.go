package backend

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// ParseGenerateResponse decides the outcome of a /generate-image call from the
// status code and the raw body. The body is parsed whatever the status is.
func ParseGenerateResponse(statusCode int, body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", transportErrorf("unexpected end of JSON input (status %d)", statusCode)
	}
	if !gjson.ValidBytes(body) {
		return "", transportErrorf("invalid JSON in response body (status %d)", statusCode)
	}

	result := gjson.ParseBytes(body)
	if result.Type == gjson.Null {
		return "", transportErrorf("cannot read fields of a null response body (status %d)", statusCode)
	}
	ok := statusCode >= 200 && statusCode < 300

	if ok {
		if image := result.Get("image"); image.Type == gjson.String && image.Str != "" {
			return image.Str, nil
		}
	}

	msg := errorMessage(result)
	if msg == "" {
		if ok {
			msg = NoImageMessage
		} else {
			msg = UnknownErrorMessage
		}
	}

	return "", &ServerError{StatusCode: statusCode, Message: msg}
}

// errorMessage reads "error" as a string, or as {"message": "..."} which some
// gateways return.
func errorMessage(result gjson.Result) string {
	errField := result.Get("error")
	switch {
	case errField.Type == gjson.String:
		return errField.Str
	case errField.IsObject():
		return errField.Get("message").String()
	}
	return ""
}
