package i18n

import "strings"

// Translator retrieves localized messages for issue keys.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field"); placeholders are written as {name}.
type Translator interface {
	Message(key string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogues = map[string]map[string]string{
	"en": {
		"invalid_type":          "must be {expected}",
		"invalid_type.optional": "must be {expected} if present",
		"invalid_element":       "must contain only {expected}",
		"required":              "missing required field '{field}'",
		"unknown_key":           "is not a known field",
		"duplicate_key":         "key '{key}' is repeated in the same object",
		"too_short":             "must not be empty",
		"too_small":             "must be at least {min}",
		"invalid_format.prefix": "should be a root-relative path like '{example}'",
		"invalid_format.int":    "must be a whole number",
		"uniqueness":            "'{value}' is duplicated",
		"dangling_reference":    "references missing id '{id}'",
		"missing_asset":         "points to missing file: {file}",
		"truncated":             "too many issues, stopped after {max}",
		"io_error.missing":      "Missing content file at {path}",
		"io_error.read":         "Cannot read content file {path}: {detail}",
		"parse_error":           "Invalid {format}: {detail}",
		"expected.string":       "a string",
		"expected.number":       "a number",
		"expected.object":       "an object",
		"expected.array":        "an array of {elem}",
		"expected.strings":      "strings",
		"expected.objects":      "objects",
		"expected.numbers":      "numbers",
		"expected.arrays":       "arrays",
		"expected.items":        "a JSON array of items",
	},
	"ja": {
		"invalid_type":          "{expected}である必要があります",
		"invalid_type.optional": "指定する場合は{expected}である必要があります",
		"invalid_element":       "{expected}のみを含む必要があります",
		"required":              "必須フィールド '{field}' がありません",
		"unknown_key":           "未知のフィールドです",
		"duplicate_key":         "同じオブジェクト内でキー '{key}' が重複しています",
		"too_short":             "空にできません",
		"too_small":             "{min} 以上である必要があります",
		"invalid_format.prefix": "'{example}' のようなルート相対パスである必要があります",
		"invalid_format.int":    "整数である必要があります",
		"uniqueness":            "'{value}' が重複しています",
		"dangling_reference":    "存在しない id '{id}' を参照しています",
		"missing_asset":         "存在しないファイルを指しています: {file}",
		"truncated":             "問題が多すぎるため {max} 件で打ち切りました",
		"io_error.missing":      "コンテンツファイルがありません: {path}",
		"io_error.read":         "コンテンツファイル {path} を読み込めません: {detail}",
		"parse_error":           "不正な {format} です: {detail}",
		"expected.string":       "文字列",
		"expected.number":       "数値",
		"expected.object":       "オブジェクト",
		"expected.array":        "{elem}の配列",
		"expected.strings":      "文字列",
		"expected.objects":      "オブジェクト",
		"expected.numbers":      "数値",
		"expected.arrays":       "配列",
		"expected.items":        "項目の JSON 配列",
	},
}

func (t dictTranslator) Message(key string, data map[string]string) string {
	msg, ok := catalogues[t.lang][key]
	if !ok {
		if msg, ok = catalogues["en"][key]; !ok {
			return key
		}
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Languages lists the built-in catalogues.
func Languages() []string { return []string{"en", "ja"} }

// New returns the built-in Translator for lang ("en"/"ja"); anything else
// falls back to English.
func New(lang string) Translator {
	if _, ok := catalogues[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

// Default is the English catalogue.
var Default = New("en")
