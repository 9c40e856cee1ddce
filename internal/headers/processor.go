package headers

import (
	"net/http"

	"github.com/shengyanli1982/kissreq/internal/constants"
)

// Processor 代表HTTP头部处理器，把调用者头部行和默认头部应用到请求上
type Processor struct {
	operator HeaderOperator // 头部操作器
}

// NewProcessor 创建新的HTTP头部处理器
func NewProcessor() *Processor {
	return &Processor{
		operator: NewOperator(),
	}
}

// ApplyToRequest 将头部行追加到HTTP请求，JSON模式下再追加 Content-type 与 Accept
// req: 要操作的HTTP请求
// lines: 调用者提供的头部行
// useJSON: 是否追加JSON头部
func (p *Processor) ApplyToRequest(req *http.Request, lines []string, useJSON bool) ([]string, error) {
	if req == nil {
		return nil, ErrNilHeader
	}

	skipped, err := p.operator.Append(req.Header, lines)
	if err != nil {
		return nil, err
	}

	if useJSON {
		// 追加而不是覆盖，调用者已有的同名头部保留
		req.Header.Add(constants.HeaderContentType, constants.ContentTypeJSON)
		req.Header.Add(constants.HeaderAccept, constants.ContentTypeJSON)
	}

	return skipped, nil
}

// InsertHeader 插入单个默认头部
// req: HTTP请求
// key: 头部键名
// value: 头部值
func (p *Processor) InsertHeader(req *http.Request, key, value string) error {
	if req == nil {
		return ErrNilHeader
	}

	return p.operator.Insert(req.Header, key, value)
}
