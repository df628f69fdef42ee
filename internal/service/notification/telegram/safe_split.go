package telegram

import "unicode/utf8"

// safeSplit 문자열을 limit 바이트 이하에서 UTF-8 문자 경계를 지켜 두 부분으로 나눕니다.
func safeSplit(s string, limit int) (chunk, remainder string) {
	if len(s) <= limit {
		return s, ""
	}

	splitIndex := limit
	for splitIndex > 0 && !utf8.RuneStart(s[splitIndex]) {
		splitIndex--
	}

	// limit 이전에 문자 시작점이 없으면 깨진 문자를 감수하고 limit에서 자릅니다.
	if splitIndex == 0 {
		return s[:limit], s[limit:]
	}

	return s[:splitIndex], s[splitIndex:]
}
