package util

import (
	"encoding/json"
	"strconv"
)

// FlexString 接受字符串、数字、布尔或null的JSON值，统一取出字符串形式。
// 各端表单对数值字段的序列化并不一致，入库前的宽容解析都从这里过。
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}

	// 其余形态一律按空值处理，不让单个字段拖垮整个请求
	*f = ""
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
