package apperr

import (
	"errors"
	"fmt"
	"net/http"

	mysql "github.com/go-sql-driver/mysql"
)

// ===== Error model (全パッケージ共通) =====
type Code string

const (
	CodeMissingParameter Code = "MISSING_MANDATORY_PARAMETER"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// 500 の場合にクライアントへ返す固定メッセージ
const internalMessage = "internal server error"

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrMissing(param string) *APIError {
	return &APIError{Code: CodeMissingParameter, Message: param + " is required"}
}
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }
func ErrUnauthorized(msg string) *APIError {
	return &APIError{Code: CodeUnauthorized, Message: msg}
}
func ErrForbidden(msg string) *APIError { return &APIError{Code: CodeForbidden, Message: msg} }

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == code
}

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeMissingParameter, CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeForbidden:
			return http.StatusForbidden
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// Payload はエラーレスポンスのボディ。空のフィールドは出力しない。
type Payload struct {
	CID      string `json:"cid,omitempty"`
	ErrorID  Code   `json:"errorId,omitempty"`
	ErrorMsg string `json:"errorMsg,omitempty"`
}

// PayloadFrom builds the response body for err. Anything that is not a domain
// error collapses to INTERNAL_ERROR with a fixed message.
func PayloadFrom(cid string, err error) Payload {
	var api *APIError
	if errors.As(err, &api) && api.Code != CodeInternal {
		return Payload{CID: cid, ErrorID: api.Code, ErrorMsg: api.Message}
	}
	return Payload{CID: cid, ErrorID: CodeInternal, ErrorMsg: internalMessage}
}

// ===== MySQL error numbers =====

const (
	mysqlDuplicateKey = 1062
	mysqlForeignKey   = 1452
)

func IsDuplicateKey(err error) bool { return mysqlErrNumber(err) == mysqlDuplicateKey }
func IsForeignKey(err error) bool   { return mysqlErrNumber(err) == mysqlForeignKey }

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}
