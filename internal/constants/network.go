package constants

const (
	// HTTP methods - 支持的HTTP方法

	// MethodGET GET方法，载荷编码到查询字符串
	MethodGET = "GET"

	// MethodPOST POST方法，载荷编码到请求体
	MethodPOST = "POST"
)

const (
	// Protocol names for validation - 协议名称用于验证

	// ProtocolHTTP HTTP协议名称
	ProtocolHTTP = "http"

	// ProtocolHTTPS HTTPS协议名称
	ProtocolHTTPS = "https"
)

const (
	// HTTP headers - HTTP头部

	// HeaderUserAgent User-Agent头部名称
	HeaderUserAgent = "User-Agent"

	// HeaderContentType Content-Type头部名称
	HeaderContentType = "Content-type"

	// HeaderAccept Accept头部名称
	HeaderAccept = "Accept"

	// HeaderSeparator 头部行中键值分隔符
	HeaderSeparator = ":"
)

const (
	// Content types - 内容类型

	// ContentTypeJSON JSON内容类型
	ContentTypeJSON = "application/json"

	// ContentTypeForm 表单内容类型
	ContentTypeForm = "application/x-www-form-urlencoded"
)
