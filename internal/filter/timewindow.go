package filter

import (
	"time"
)

const dateLayout = "2006-01-02"

// Window 一段闭区间日期范围
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ResolveTimeWindow 把符号化时间 token 解析为具体日期区间。
// 未知 token（包括 "custom"）返回 false，调用方需另行分支处理。
func ResolveTimeWindow(token string) (Window, bool) {
	return ResolveTimeWindowAt(token, time.Now())
}

// ResolveTimeWindowAt 以指定时刻为基准解析，便于测试
func ResolveTimeWindowAt(token string, now time.Time) (Window, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch token {
	case "today":
		return dayWindow(today, today), true
	case "yesterday":
		d := today.AddDate(0, 0, -1)
		return dayWindow(d, d), true
	case "this_week":
		// 周以周日为起点
		start := today.AddDate(0, 0, -int(today.Weekday()))
		return dayWindow(start, start.AddDate(0, 0, 6)), true
	case "last_week":
		start := today.AddDate(0, 0, -int(today.Weekday())-7)
		return dayWindow(start, start.AddDate(0, 0, 6)), true
	case "next_week":
		start := today.AddDate(0, 0, -int(today.Weekday())+7)
		return dayWindow(start, start.AddDate(0, 0, 6)), true
	case "this_month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return dayWindow(start, endOfMonth(start)), true
	case "last_month":
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		return dayWindow(start, endOfMonth(start)), true
	case "next_month":
		start := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
		return dayWindow(start, endOfMonth(start)), true
	}
	return Window{}, false
}

func dayWindow(start, end time.Time) Window {
	return Window{
		Start: start.Format(dateLayout),
		End:   end.Format(dateLayout),
	}
}

func endOfMonth(firstDay time.Time) time.Time {
	return firstDay.AddDate(0, 1, -1)
}
