package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/shengyanli1982/kissreq/internal/client"
	"github.com/shengyanli1982/kissreq/internal/constants"
)

// classify 把一次完成的传输尝试归类为 Result。
// 任何意外 panic 都会被归一为 KindRequestFailed，不会传播给调用者。
func classify(exchange *client.Exchange, err error, useJSON bool) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(KindRequestFailed, fmt.Sprint(r), 0)
		}
	}()

	if err != nil {
		return failure(classifyError(err), err.Error(), 0)
	}

	if exchange.StatusCode != http.StatusOK && exchange.StatusCode != http.StatusCreated {
		return failure(KindRequestFailed,
			fmt.Sprintf("%s: %d", constants.ErrMsgUnexpectedStatus, exchange.StatusCode),
			exchange.StatusCode)
	}

	if len(exchange.Body) == 0 {
		return failure(KindResponseEmpty, "", exchange.StatusCode)
	}

	if !useJSON {
		return Result{StatusCode: exchange.StatusCode, Body: string(exchange.Body)}
	}

	var decoded any
	if err := json.Unmarshal(exchange.Body, &decoded); err != nil {
		return failure(KindRequestFailed, err.Error(), exchange.StatusCode)
	}
	return Result{StatusCode: exchange.StatusCode, Body: decoded}
}

// classifyError 按传输层错误类型映射 ErrorKind
func classifyError(err error) ErrorKind {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindRequestRefused
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindRequestTimedOut
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindRequestTimedOut
	}

	return KindRequestFailed
}
