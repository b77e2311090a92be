package payment

import (
	"regexp"
	"strconv"
	"strings"
)

// "12 mois" 形式。単位はjour/mois/annéeの3つだけ扱う。
var durationRe = regexp.MustCompile(`^(\d+)\s*(jour|mois|année)s?`)

const (
	joursParMois  = 30
	joursParAnnee = 360
)

// ParseDuration は支払プランの期間文字列を日数に変換する。
// 空文字や解釈できない形式はエラーではなく0（期間なし）として扱う。
func ParseDuration(s string) int64 {
	m := durationRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}

	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}

	switch m[2] {
	case "jour":
		return v
	case "mois":
		return v * joursParMois
	case "année":
		return v * joursParAnnee
	}
	return 0
}
