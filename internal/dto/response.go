package dto

// Response is the stable JSON envelope for every API reply.
// Code "0000" denotes success; any other code is a specific failure.
type Response struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

const (
	CodeOK                 = "0000"
	CodeServerError        = "1001"
	CodeMissingToken       = "1002"
	CodeMalformedToken     = "1003"
	CodeInvalidToken       = "1004"
	CodeInvalidCredentials = "2001"
	CodeDuplicateUsername  = "2002"
	CodeMissingField       = "3001"
	CodeNotInteger         = "3002"
	CodeInvalidDate        = "3003"
	CodeInvalidSign        = "3004"
	CodeUserNotFound       = "4001"
	CodeEntryNotFound      = "4002"
)

// OK wraps data in a success envelope.
func OK(msg string, data any) Response {
	return Response{Code: CodeOK, Msg: msg, Data: data}
}

// Fail builds a failure envelope with null data.
func Fail(code, msg string) Response {
	return Response{Code: code, Msg: msg, Data: nil}
}
