// Package domain 交易复盘的领域模型与模板渲染
package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side 交易方向
type Side string

const (
	SideBuy  Side = "BUY"  // 买入
	SideSell Side = "SELL" // 卖出
)

// IsBuy 是否为买入。仅精确匹配 "BUY"，其他任意值按卖出处理
func (s Side) IsBuy() bool {
	return s == SideBuy
}

// Action 方向对应的中文动作
func (s Side) Action() string {
	if s.IsBuy() {
		return "买入"
	}
	return "卖出"
}

// Template 复盘模板
type Template string

const (
	TemplateTradeReview Template = "trade_review" // 有用户思考：交易复盘
	TemplateAutoReview  Template = "auto_review"  // 无用户思考：自动复盘
)

// TradeReviewRequest 复盘请求，仅在单次调用内存在
type TradeReviewRequest struct {
	Symbol      string
	Side        Side
	Price       float64
	Quantity    float64
	UserThought string
}

// Template 根据是否有用户思考选择模板
func (r TradeReviewRequest) Template() Template {
	if r.UserThought != "" {
		return TemplateTradeReview
	}
	return TemplateAutoReview
}

// Review 渲染后的复盘
type Review struct {
	Template Template
	Text     string
}

// Render 渲染复盘文本。纯函数，无错误路径
func Render(req TradeReviewRequest) Review {
	tmpl := req.Template()

	var b strings.Builder
	if tmpl == TemplateTradeReview {
		b.WriteString("【交易复盘 - " + req.Symbol + "】\n")
	} else {
		b.WriteString("【自动复盘 - " + req.Symbol + "】\n")
	}
	b.WriteString("\n")
	b.WriteString("交易方向：" + string(req.Side) + "\n")
	b.WriteString("成交价格：" + FormatNumber(req.Price) + "\n")
	b.WriteString("交易数量：" + FormatNumber(req.Quantity) + "\n")
	b.WriteString("\n")

	if tmpl == TemplateTradeReview {
		b.WriteString("你的思考：" + req.UserThought + "\n")
		b.WriteString("\n")
		b.WriteString("AI建议：\n")
		b.WriteString("基于你的交易思考，本次交易体现了" + req.Side.Action() + "的决策逻辑。\n")
		b.WriteString("建议关注市场趋势变化，合理设置止损止盈点位，控制仓位风险。\n")
		b.WriteString("持续记录交易思考有助于优化交易策略。")
	} else {
		b.WriteString("AI建议：\n")
		b.WriteString("这是一笔" + req.Side.Action() + "交易。\n")
		b.WriteString("建议回顾当时的市场环境和交易逻辑，评估交易是否符合你的交易计划。\n")
		b.WriteString("建议后续交易前先记录交易思考，有助于提升交易质量。")
	}

	return Review{Template: tmpl, Text: b.String()}
}

// FormatNumber 将浮点数渲染为最短可还原的十进制文本。
// 整数值保留 ".0"；|v| >= 1e16 或 0 < |v| < 1e-4 时使用指数形式。
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(v)
	if abs >= 1e16 || abs < 1e-4 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := decimal.NewFromFloat(v).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatTimestamp 输出不带时区的 ISO-8601 本地时间，微秒为零时省略小数部分
func FormatTimestamp(t time.Time) string {
	t = t.Local()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02T15:04:05.000000")
}
