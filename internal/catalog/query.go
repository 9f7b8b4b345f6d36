package catalog

import (
	"net/url"
	"strings"

	"github.com/cheerioskun/charbrowser/internal/models"
)

// DefaultEndpoint is the public character listing endpoint
const DefaultEndpoint = "https://rickandmortyapi.com/api/character/"

// BuildURL maps a filter state to a request URL. The name parameter is always
// present (possibly empty); status, species and gender follow in that order
// and only when set. Values are query-escaped.
func BuildURL(endpoint string, f models.FilterState) string {
	var b strings.Builder
	b.WriteString(endpoint)
	if strings.Contains(endpoint, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}

	b.WriteString("name=")
	b.WriteString(url.QueryEscape(f.Search))

	appendParam(&b, "status", string(f.Status))
	appendParam(&b, "species", string(f.Species))
	appendParam(&b, "gender", string(f.Gender))

	return b.String()
}

func appendParam(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteByte('&')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}
