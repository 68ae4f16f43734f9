package openai

import (
	"net/url"
	"strings"
)

// 用户常直接粘贴完整端点地址，这里统一裁回到 /v1 根。
var endpointSuffixes = []string{"/chat/completions", "/completions", "/responses"}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	path := strings.TrimRight(parsed.Path, "/")
	for _, suffix := range endpointSuffixes {
		if strings.HasSuffix(path, suffix) {
			path = strings.TrimRight(strings.TrimSuffix(path, suffix), "/")
			break
		}
	}
	for strings.HasSuffix(path, "/v1/v1") {
		path = strings.TrimSuffix(path, "/v1")
	}
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}

	parsed.Path = path
	return parsed.String()
}
