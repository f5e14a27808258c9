package http

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 校验错误类型
const (
	errTypeMissing    = "value_error.missing"
	errTypeFloat      = "type_error.float"
	errTypeStr        = "type_error.str"
	errTypeDict       = "type_error.dict"
	errTypeJSONDecode = "value_error.jsondecode"
	errTypeValue      = "value_error"
)

// errEmptyBody 请求体为空
var errEmptyBody = errors.New("request body is empty")

// ValidationDetail 单个字段的校验错误
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// RequestValidationError 请求体不满足字段类型或必填约束，在进入应用服务前返回
type RequestValidationError struct {
	Details []ValidationDetail
	cause   error
}

func (e *RequestValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, strings.Join(d.Loc, ".")+": "+d.Msg)
	}
	return "request validation failed: " + strings.Join(parts, "; ")
}

func (e *RequestValidationError) Unwrap() error {
	return e.cause
}

// newRequestValidationError 将绑定阶段的错误转换为 RequestValidationError
func newRequestValidationError(err error, jsonNames map[string]string) *RequestValidationError {
	ve := &RequestValidationError{cause: err}

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			name, ok := jsonNames[fe.StructField()]
			if !ok {
				name = fe.Field()
			}
			if fe.Tag() == "required" {
				ve.Details = append(ve.Details, ValidationDetail{
					Loc:  []string{"body", name},
					Msg:  "field required",
					Type: errTypeMissing,
				})
				continue
			}
			ve.Details = append(ve.Details, ValidationDetail{
				Loc:  []string{"body", name},
				Msg:  "failed on the '" + fe.Tag() + "' rule",
				Type: errTypeValue + "." + fe.Tag(),
			})
		}
	case errors.As(err, &typeErr):
		ve.Details = append(ve.Details, typeErrorDetail(typeErr))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		ve.Details = append(ve.Details, ValidationDetail{
			Loc:  []string{"body"},
			Msg:  "invalid JSON: " + err.Error(),
			Type: errTypeJSONDecode,
		})
	case errors.Is(err, errEmptyBody), errors.Is(err, io.EOF):
		ve.Details = append(ve.Details, ValidationDetail{
			Loc:  []string{"body"},
			Msg:  "field required",
			Type: errTypeMissing,
		})
	default:
		ve.Details = append(ve.Details, ValidationDetail{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: errTypeValue,
		})
	}
	return ve
}

// typeErrorDetail 根据目标类型给出错误描述
func typeErrorDetail(e *json.UnmarshalTypeError) ValidationDetail {
	loc := []string{"body"}
	if e.Field != "" {
		loc = append(loc, strings.Split(e.Field, ".")...)
	}

	kind := reflect.Invalid
	if t := e.Type; t != nil {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		kind = t.Kind()
	}

	switch kind {
	case reflect.Float64, reflect.Float32:
		return ValidationDetail{Loc: loc, Msg: "value is not a valid float", Type: errTypeFloat}
	case reflect.String:
		return ValidationDetail{Loc: loc, Msg: "str type expected", Type: errTypeStr}
	case reflect.Struct, reflect.Map:
		return ValidationDetail{Loc: loc, Msg: "value is not a valid dict", Type: errTypeDict}
	default:
		return ValidationDetail{Loc: loc, Msg: "invalid value: " + e.Value, Type: errTypeValue}
	}
}
