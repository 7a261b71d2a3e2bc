package gmail

import (
	"encoding/base64"

	gmail "google.golang.org/api/gmail/v1"
)

// maxPartDepth bounds the recursion over multipart payloads. Real messages
// nest a handful of levels; anything deeper is malformed.
const maxPartDepth = 32

// extractPlainText walks the message part tree depth-first and returns the
// decoded content of the first text/plain leaf, or "" if none is found.
func extractPlainText(part *gmail.MessagePart) string {
	return walkForPlainText(part, 0)
}

func walkForPlainText(part *gmail.MessagePart, depth int) string {
	if part == nil || depth > maxPartDepth {
		return ""
	}

	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		if decoded := decodeBody(part.Body.Data); decoded != "" {
			return decoded
		}
	}

	for _, sub := range part.Parts {
		if body := walkForPlainText(sub, depth+1); body != "" {
			return body
		}
	}

	return ""
}

// decodeBody decodes base64url body data, tolerating standard base64.
func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(decoded)
}
