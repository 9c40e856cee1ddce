package request

import (
	"errors"
	"fmt"

	"github.com/shengyanli1982/kissreq/internal/constants"
)

// ErrorKind 请求失败的分类，取值是对外稳定的字符串标识
type ErrorKind string

const (
	// KindNone 表示请求成功
	KindNone ErrorKind = ""

	// KindRequestRefused 连接被对端拒绝
	KindRequestRefused ErrorKind = constants.ErrIDRequestRefused

	// KindRequestTimedOut 连接超时或总超时
	KindRequestTimedOut ErrorKind = constants.ErrIDRequestTimedOut

	// KindRequestFailed 其他所有失败：非 200/201 状态码、重定向、解码失败、DNS 失败等
	KindRequestFailed ErrorKind = constants.ErrIDRequestFailed

	// KindResponseEmpty 状态码成功但响应体为空
	KindResponseEmpty ErrorKind = constants.ErrIDResponseEmpty
)

// String 返回稳定的错误标识
func (k ErrorKind) String() string {
	return string(k)
}

// ErrInvalidState 批量操作调用顺序错误，属于编程错误
var ErrInvalidState = errors.New(constants.ErrMsgInvalidState)

// Error 携带错误分类与底层细节的错误值
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Result 单个请求的结果，Kind 为 KindNone 时 Body 有效，否则 Detail 描述失败原因
type Result struct {
	Kind       ErrorKind
	Detail     string
	StatusCode int // 传输层失败时为 0
	Body       any // JSON 模式下为解码后的值，否则为原始字符串
}

// OK 判断请求是否成功
func (r Result) OK() bool {
	return r.Kind == KindNone
}

// Err 成功时返回 nil，失败时返回 *Error
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return r.asError()
}

func (r Result) asError() *Error {
	return &Error{Kind: r.Kind, Detail: r.Detail}
}

// failure 构造失败结果
func failure(kind ErrorKind, detail string, statusCode int) Result {
	return Result{Kind: kind, Detail: detail, StatusCode: statusCode}
}

// BatchError 批量执行中止的原因：按提交顺序第一个失败的请求
type BatchError struct {
	Index int    // 失败请求的提交序号
	Size  int    // 批量中的请求总数
	Err   *Error // 失败请求的分类错误
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: request %d of %d: %v", constants.ErrMsgBatchFailed, e.Index, e.Size, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// KindOf 从错误链中提取错误分类，无法识别时返回 KindNone
func KindOf(err error) ErrorKind {
	var reqErr *Error
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return KindNone
}
