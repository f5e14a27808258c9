package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"

	"github.com/wyfcoding/tradereview/internal/review/application"
)

// Number 接受 JSON 数字或内容为十进制数字的 JSON 字符串
type Number float64

var float64Type = reflect.TypeOf(float64(0))

// UnmarshalJSON 实现 json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &json.UnmarshalTypeError{Value: "empty", Type: float64Type}
	}

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return &json.UnmarshalTypeError{Value: "string", Type: float64Type}
		}
		raw = strings.TrimSpace(raw)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		raw = string(data)
	default:
		return &json.UnmarshalTypeError{Value: jsonKind(data[0]), Type: float64Type}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || (math.IsInf(v, 0) && !isInfLiteral(raw)) {
		return &json.UnmarshalTypeError{Value: "number " + raw, Type: float64Type}
	}
	*n = Number(v)
	return nil
}

// isInfLiteral 字符串显式写出 inf/infinity 时允许无穷大，数值溢出不允许
func isInfLiteral(s string) bool {
	s = strings.TrimLeft(strings.ToLower(s), "+-")
	return s == "inf" || s == "infinity"
}

func jsonKind(c byte) string {
	switch c {
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "value"
	}
}

// TradeReviewRequest 复盘请求体。指针字段用于区分缺失与零值
type TradeReviewRequest struct {
	Symbol      *string `json:"symbol" binding:"required"`
	Side        *string `json:"side" binding:"required"`
	Price       *Number `json:"price" binding:"required"`
	Quantity    *Number `json:"quantity" binding:"required"`
	UserThought *string `json:"user_thought"`
}

// requestFieldNames 结构体字段到 JSON 字段名的映射
var requestFieldNames = map[string]string{
	"Symbol":      "symbol",
	"Side":        "side",
	"Price":       "price",
	"Quantity":    "quantity",
	"UserThought": "user_thought",
}

// decodeTradeReviewRequest 解析完整请求体并逐字段解码，一次性收集所有字段错误
func decodeTradeReviewRequest(raw []byte) (*TradeReviewRequest, *RequestValidationError) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, newRequestValidationError(errEmptyBody, requestFieldNames)
	}

	// json.Unmarshal 会校验整个输入，对象后的多余内容同样视为语法错误
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, newRequestValidationError(err, requestFieldNames)
	}

	req := &TradeReviewRequest{}
	targets := []struct {
		name string
		dst  any
	}{
		{"symbol", &req.Symbol},
		{"side", &req.Side},
		{"price", &req.Price},
		{"quantity", &req.Quantity},
		{"user_thought", &req.UserThought},
	}

	ve := &RequestValidationError{}
	failed := make(map[string]bool)
	for _, t := range targets {
		v, ok := fields[t.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, t.dst); err != nil {
			failed[t.name] = true
			ve.cause = errors.Join(ve.cause, err)
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				typeErr.Field = t.name
				ve.Details = append(ve.Details, typeErrorDetail(typeErr))
				continue
			}
			ve.Details = append(ve.Details, ValidationDetail{
				Loc:  []string{"body", t.name},
				Msg:  err.Error(),
				Type: errTypeValue,
			})
		}
	}

	if err := binding.Validator.ValidateStruct(req); err != nil {
		ve.cause = errors.Join(ve.cause, err)
		for _, d := range newRequestValidationError(err, requestFieldNames).Details {
			if len(d.Loc) == 2 && failed[d.Loc[1]] {
				continue
			}
			ve.Details = append(ve.Details, d)
		}
	}

	if len(ve.Details) > 0 {
		return nil, ve
	}
	return req, nil
}

// ToCommand 转换为应用层命令，绑定校验通过后调用
func (r *TradeReviewRequest) ToCommand() application.GenerateReviewCommand {
	cmd := application.GenerateReviewCommand{
		Symbol:   *r.Symbol,
		Side:     *r.Side,
		Price:    float64(*r.Price),
		Quantity: float64(*r.Quantity),
	}
	if r.UserThought != nil {
		cmd.UserThought = *r.UserThought
	}
	return cmd
}
