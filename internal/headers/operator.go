package headers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shengyanli1982/kissreq/internal/constants"
)

// 头部操作相关错误定义
var (
	ErrInvalidHeaderLine = errors.New(constants.ErrMsgInvalidHeaderLine)
	ErrEmptyHeaderKey    = errors.New(constants.ErrMsgEmptyHeaderKey)
	ErrNilHeader         = errors.New(constants.ErrMsgNilHeader)
)

// Field 代表一个解析后的头部字段
type Field struct {
	Key   string
	Value string
}

// HeaderOperator 代表HTTP头部操作器接口
type HeaderOperator interface {
	// Parse 解析单个 "Name: value" 形式的头部行
	Parse(line string) (Field, error)

	// Append 按顺序追加头部行，不去重；返回无法解析而被跳过的行
	// headers: 要操作的HTTP头部
	// lines: 头部行列表
	Append(headers http.Header, lines []string) ([]string, error)

	// Insert 仅在头部不存在时插入
	Insert(headers http.Header, key, value string) error
}

// defaultOperator 代表默认头部操作器实现
type defaultOperator struct{}

// NewOperator 创建新的HTTP头部操作器
func NewOperator() HeaderOperator {
	return &defaultOperator{}
}

// Parse 解析单个头部行，键名去除首尾空白，值去除首尾空白
func (o *defaultOperator) Parse(line string) (Field, error) {
	key, value, found := strings.Cut(line, constants.HeaderSeparator)
	if !found {
		return Field{}, fmt.Errorf("%w: %q", ErrInvalidHeaderLine, line)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return Field{}, ErrEmptyHeaderKey
	}

	return Field{Key: key, Value: strings.TrimSpace(value)}, nil
}

// Append 按调用者给定顺序追加头部，已存在的同名头部不会被覆盖
func (o *defaultOperator) Append(headers http.Header, lines []string) ([]string, error) {
	if headers == nil {
		return nil, ErrNilHeader
	}

	var skipped []string
	for _, line := range lines {
		field, err := o.Parse(line)
		if err != nil {
			skipped = append(skipped, line)
			continue
		}
		headers.Add(field.Key, field.Value)
	}

	return skipped, nil
}

// Insert 插入头部，如果头部不存在则插入，存在则不操作
func (o *defaultOperator) Insert(headers http.Header, key, value string) error {
	if headers == nil {
		return ErrNilHeader
	}
	if strings.TrimSpace(key) == "" {
		return ErrEmptyHeaderKey
	}

	if headers.Get(key) == "" {
		headers.Set(key, value)
	}
	return nil
}
