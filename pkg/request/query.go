package request

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// BuildQuery 把载荷编码为 application/x-www-form-urlencoded 字符串
//
// 嵌套 map 编码为 a[b]=v，切片编码为 a[0]=v，布尔值编码为 1/0，nil 值被忽略。
// 键按字典序输出，保证结果稳定。
func BuildQuery(payload map[string]any) string {
	if len(payload) == 0 {
		return ""
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var pairs []string
	for _, key := range keys {
		pairs = appendPairs(pairs, key, payload[key])
	}
	return strings.Join(pairs, "&")
}

func appendPairs(pairs []string, key string, value any) []string {
	switch v := value.(type) {
	case nil:
		return pairs
	case string:
		return append(pairs, encodePair(key, v))
	case []byte:
		return append(pairs, encodePair(key, string(v)))
	case bool:
		if v {
			return append(pairs, encodePair(key, "1"))
		}
		return append(pairs, encodePair(key, "0"))
	case json.Number:
		return append(pairs, encodePair(key, v.String()))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return pairs
		}
		return appendPairs(pairs, key, rv.Elem().Interface())

	case reflect.Map:
		subKeys := rv.MapKeys()
		sort.Slice(subKeys, func(i, j int) bool {
			return fmt.Sprint(subKeys[i].Interface()) < fmt.Sprint(subKeys[j].Interface())
		})
		for _, sub := range subKeys {
			pairs = appendPairs(pairs, key+"["+fmt.Sprint(sub.Interface())+"]", rv.MapIndex(sub).Interface())
		}
		return pairs

	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			pairs = appendPairs(pairs, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface())
		}
		return pairs

	case reflect.Float32:
		return append(pairs, encodePair(key, strconv.FormatFloat(rv.Float(), 'f', -1, 32)))

	case reflect.Float64:
		return append(pairs, encodePair(key, strconv.FormatFloat(rv.Float(), 'f', -1, 64)))

	default:
		return append(pairs, encodePair(key, fmt.Sprint(value)))
	}
}

func encodePair(key, value string) string {
	return url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

// appendQuery 把已编码的查询串追加到 URL，URL 已带查询参数时用 & 连接
func appendQuery(rawURL, query string) string {
	if query == "" {
		return rawURL
	}

	// 片段必须保持在查询串之后
	base, fragment, hasFragment := strings.Cut(rawURL, "#")
	switch {
	case !strings.Contains(base, "?"):
		base += "?" + query
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
		base += query
	default:
		base += "&" + query
	}

	if hasFragment {
		return base + "#" + fragment
	}
	return base
}
