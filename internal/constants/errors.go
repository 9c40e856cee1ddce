package constants

const (
	// Error identifiers - 对外暴露的稳定错误标识，不可修改

	// ErrIDRequestRefused 连接被拒绝
	ErrIDRequestRefused = "e_request_refused"

	// ErrIDRequestTimedOut 连接或请求超时
	ErrIDRequestTimedOut = "e_request_timedout"

	// ErrIDRequestFailed 其他所有失败
	ErrIDRequestFailed = "e_request_failed"

	// ErrIDResponseEmpty 成功状态码但响应体为空
	ErrIDResponseEmpty = "e_request_response_empty"
)

const (
	// Error messages - 错误消息

	// ErrMsgInvalidState 批量状态机调用顺序错误消息
	ErrMsgInvalidState = "invalid request client state"

	// ErrMsgBatchAlreadyStarted 批量模式已开启错误消息
	ErrMsgBatchAlreadyStarted = "batch already started"

	// ErrMsgBatchNotStarted 批量模式未开启错误消息
	ErrMsgBatchNotStarted = "batch not started"

	// ErrMsgBatchFailed 批量请求失败错误消息
	ErrMsgBatchFailed = "one of the requests has response error"

	// ErrMsgNilHeader 空头部错误消息
	ErrMsgNilHeader = "header cannot be nil"

	// ErrMsgInvalidHeaderLine 无效头部行错误消息
	ErrMsgInvalidHeaderLine = "header line must be in 'Name: value' form"

	// ErrMsgEmptyHeaderKey 空头部键名错误消息
	ErrMsgEmptyHeaderKey = "header key cannot be empty"

	// ErrMsgUnexpectedStatus 非预期状态码错误消息
	ErrMsgUnexpectedStatus = "unexpected status code"

	// ErrMsgNilConfig 空配置错误消息
	ErrMsgNilConfig = "config cannot be nil"
)
