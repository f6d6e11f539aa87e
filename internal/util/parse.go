package util

import (
	"strconv"
	"strings"
	"time"
)

// 表单输入采取宽容策略：能解析就用，解析不出存null，绝不因此报错。
// 唯一的硬校验（结束日期早于开始日期）在service层处理。

const (
	minPlausibleYear = 1900
	maxPlausibleYear = 2100
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDateOrNil 解析日期字符串，无法解析或年份超出合理区间（1900–2100）返回nil
func ParseDateOrNil(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < minPlausibleYear || t.Year() > maxPlausibleYear {
			return nil
		}
		return &t
	}
	return nil
}

// ParseFloatOrNil 解析非负数值，失败或为负返回nil
func ParseFloatOrNil(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil
	}
	return &f
}

// ParseIntOrNil 解析非负整数，失败或为负返回nil。带小数的输入按截断处理。
func ParseIntOrNil(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil
		}
		n = int(f)
	}
	if n < 0 {
		return nil
	}
	return &n
}

// ParseYesNo 问卷里的是/否单选，"是"为true，其余一律false
func ParseYesNo(s string) bool {
	switch strings.TrimSpace(s) {
	case "是", "true", "1":
		return true
	}
	return false
}

// NilIfEmpty 空白字符串入库为null
func NilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
