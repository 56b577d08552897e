package guardrails

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIPExtractor_Extract(t *testing.T) {
	tt := []struct {
		desc     string
		headers  map[string]string
		identity string
	}{
		{
			desc:     "takes the first entry of X-Forwarded-For",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2"},
			identity: "203.0.113.7",
		},
		{
			desc:     "prefers X-Forwarded-For over the other headers",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-Ip": "198.51.100.1", "Cf-Connecting-Ip": "192.0.2.1"},
			identity: "203.0.113.7",
		},
		{
			desc:     "falls back to X-Real-Ip",
			headers:  map[string]string{"X-Real-Ip": "198.51.100.1", "Cf-Connecting-Ip": "192.0.2.1"},
			identity: "198.51.100.1",
		},
		{
			desc:     "falls back to Cf-Connecting-Ip",
			headers:  map[string]string{"Cf-Connecting-Ip": "192.0.2.1"},
			identity: "192.0.2.1",
		},
		{
			desc:     "trims surrounding whitespace",
			headers:  map[string]string{"X-Real-Ip": "  198.51.100.1 "},
			identity: "198.51.100.1",
		},
		{
			desc:     "returns the sentinel when no header is set",
			headers:  map[string]string{},
			identity: UnknownIdentity,
		},
		{
			desc:     "skips empty headers",
			headers:  map[string]string{"X-Forwarded-For": "  ", "X-Real-Ip": "198.51.100.1"},
			identity: "198.51.100.1",
		},
	}

	extractor := NewClientIPExtractor()

	for _, ts := range tt {
		t.Run(ts.desc, func(t *testing.T) {
			h := http.Header{}
			for key, value := range ts.headers {
				h.Set(key, value)
			}

			assert.Equal(t, ts.identity, extractor.Extract(h))
		})
	}
}

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:chat:203.0.113.7", RateLimitKey("chat", "203.0.113.7"))
}
