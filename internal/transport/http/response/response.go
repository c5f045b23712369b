package response

type Resp struct {
	Code   int               `json:"code"`
	Msg    string            `json:"msg,omitempty"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"errors,omitempty"` // 校验失败的逐字段明细
	Data   interface{}       `json:"data,omitempty"`
}

// OK 成功响应（保证 data 不为 null）
func OK(data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: CodeOK, Msg: CodeMsgMap[CodeOK], Data: data}
}

// Err 失败响应，code 同时作为 HTTP 状态码写出
func Err(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Resp{Code: code, Error: msg}
}

// Invalid 400 + 逐字段错误
func Invalid(fields map[string]string) Resp {
	r := Err(CodeBadRequest, "validation failed")
	r.Fields = fields
	return r
}
