package timecodec

import "strings"

// Locale holds the user facing text for one language
type Locale struct {
	Name string

	NegativeStart        string
	EndNotAfterStart     string
	StartExceedsDuration string
	EndExceedsDuration   string

	// BadStart and BadEnd report a start or end field that does not parse
	BadStart, BadEnd string

	// InvalidSpan is returned by Describe for an empty span
	InvalidSpan string

	// Unit suffixes appended to each component
	Hour, Minute, Second string
}

var (
	English = Locale{
		Name:                 "en",
		NegativeStart:        ErrNegativeStart.Error(),
		EndNotAfterStart:     ErrEndNotAfterStart.Error(),
		StartExceedsDuration: ErrStartExceedsDuration.Error(),
		EndExceedsDuration:   ErrEndExceedsDuration.Error(),
		BadStart:             "invalid start time",
		BadEnd:               "invalid end time",
		InvalidSpan:          "invalid time span",
		Hour:                 "hour(s)",
		Minute:               "minute(s)",
		Second:               "second(s)",
	}

	Chinese = Locale{
		Name:                 "zh",
		NegativeStart:        "开始时间不能为负数",
		EndNotAfterStart:     "结束时间必须大于开始时间",
		StartExceedsDuration: "开始时间超出视频时长",
		EndExceedsDuration:   "结束时间超出视频时长",
		BadStart:             "开始时间格式无效",
		BadEnd:               "结束时间格式无效",
		InvalidSpan:          "无效的时间段",
		Hour:                 "小时",
		Minute:               "分钟",
		Second:               "秒",
	}
)

var locales = map[string]Locale{
	English.Name: English,
	Chinese.Name: Chinese,
}

// LookupLocale finds a locale by language tag. Region suffixes are
// ignored, so "zh-CN" and "zh_TW" both select Chinese.
func LookupLocale(name string) (Locale, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexAny(name, "-_"); i >= 0 {
		name = name[:i]
	}
	l, ok := locales[name]
	return l, ok
}
