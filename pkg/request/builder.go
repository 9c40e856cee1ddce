package request

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/shengyanli1982/kissreq/internal/constants"
)

// Pending 待发送请求的描述
type Pending struct {
	URL     string
	Payload map[string]any
	Method  Method   // 为空时按 POST 处理
	Headers []string // "Name: value" 形式的头部行
}

// build 按请求描述与配置快照构造 *http.Request。
// 这里返回的错误不会直接交给调用者，而是在执行阶段归类为 KindRequestFailed。
func (c *Client) build(p Pending, cfg Config) (*http.Request, error) {
	method := wireMethod(p.Method)

	target := p.URL
	var body io.Reader

	switch {
	case p.Method == MethodGET:
		target = appendQuery(target, BuildQuery(p.Payload))
	case method == MethodPOST:
		data, err := encodeBody(p.Payload, cfg.JSON)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	// 执行时再绑定调用者的上下文
	req, err := http.NewRequestWithContext(context.Background(), string(method), target, body)
	if err != nil {
		return nil, err
	}

	skipped, err := c.headers.ApplyToRequest(req, p.Headers, cfg.JSON)
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		c.logger.Info("Ignoring malformed header lines", "url", target, "lines", skipped)
	}

	if method == MethodPOST && !cfg.JSON {
		if err := c.headers.InsertHeader(req, constants.HeaderContentType, constants.ContentTypeForm); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// wireMethod 返回实际发出的方法：为空时按 POST，GET 与 POST 以外的方法
// 一律以不带查询串和请求体的 GET 发出
func wireMethod(m Method) Method {
	switch m {
	case "":
		return MethodPOST
	case MethodGET, MethodPOST:
		return m
	default:
		return MethodGET
	}
}

// encodeBody 编码 POST 请求体。
// JSON 模式下空载荷编码为 {} 而不是 []，接收方总能按对象解析。
func encodeBody(payload map[string]any, useJSON bool) ([]byte, error) {
	if !useJSON {
		return []byte(BuildQuery(payload)), nil
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return json.Marshal(payload)
}
