package problem

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

const (
	minStatus     = 100
	maxStatus     = 599
	defaultStatus = 500
)

// StatusInput lists the types accepted as a status argument by New.
type StatusInput interface {
	~int | ~int64 | ~string
}

var statusTitles = map[int]string{
	// client errors
	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Time-out",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Request Entity Too Large",
	414: "Request-URI Too Large",
	415: "Unsupported Media Type",
	416: "Requested range not satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	422: "Unprocessable Entity",
	423: "Locked",
	424: "Failed Dependency",
	425: "Unordered Collection",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	// server errors
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Time-out",
	505: "HTTP Version not supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	511: "Network Authentication Required",
}

// StatusTitle returns the built-in reason phrase for status. The table only
// covers well-known 4xx and 5xx codes.
func StatusTitle(status int) (string, bool) {
	title, ok := statusTitles[status]
	return title, ok
}

func normalizeStatus[S StatusInput](status S) int {
	var (
		value float64
		ok    bool
	)
	rv := reflect.ValueOf(status)
	switch rv.Kind() {
	case reflect.Int, reflect.Int64:
		value, ok = float64(rv.Int()), true
	case reflect.String:
		value, ok = parseNumeric(rv.String())
	}

	if !ok || value < minStatus || value > maxStatus {
		return defaultStatus
	}
	return int(value)
}

func parseNumeric(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.ContainsRune(trimmed, '_') {
		return 0, false
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return float64(n), true
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
