package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// StartOfDayString 给日期串补上当天零点，用于列表搜索的区间下界
func StartOfDayString(date string) string {
	if date == "" {
		return ""
	}
	return date + " 00:00:00"
}

// EndOfDayString 给日期串补上当天最后一秒，用于列表搜索的区间上界
func EndOfDayString(date string) string {
	if date == "" {
		return ""
	}
	return date + " 23:59:59"
}

// ParseFlexibleTime 兼容 "2006-01-02" 与 "2006-01-02 15:04:05" 两种输入
func ParseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateLayout, s, time.Local)
}
