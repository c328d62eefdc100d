package apiclient

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params are query parameters. Encoding drops values that mean "not set":
// nil, nil pointers, blank strings and zero numbers, so nothing like
// "search=" or "page=0" ever reaches the API.
type Params map[string]any

// Values converts p into url.Values following the drop rules above.
func (p Params) Values() url.Values {
	out := url.Values{}
	for key, raw := range p {
		if v, ok := encodeValue(raw); ok {
			out.Set(key, v)
		}
	}
	return out
}

// Encode returns the sorted query string.
func (p Params) Encode() string {
	return p.Values().Encode()
}

func encodeValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return encodeValue(*v)
	case fmt.Stringer:
		return encodeValue(v.String())
	case int:
		return strconv.Itoa(v), v != 0
	case int64:
		return strconv.FormatInt(v, 10), v != 0
	case *int:
		if v == nil {
			return "", false
		}
		return encodeValue(*v)
	case bool:
		return strconv.FormatBool(v), true
	case *bool:
		if v == nil {
			return "", false
		}
		return strconv.FormatBool(*v), true
	default:
		s := strings.TrimSpace(fmt.Sprint(v))
		return s, s != ""
	}
}
