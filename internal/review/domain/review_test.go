package domain

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestRenderTradeReview(t *testing.T) {
	review := Render(TradeReviewRequest{
		Symbol:      "AAPL",
		Side:        SideBuy,
		Price:       150.5,
		Quantity:    10,
		UserThought: "Broke resistance",
	})

	if review.Template != TemplateTradeReview {
		t.Fatalf("template = %s, want %s", review.Template, TemplateTradeReview)
	}
	if !strings.HasPrefix(review.Text, "【交易复盘 - AAPL】") {
		t.Errorf("unexpected header: %q", review.Text)
	}
	for _, want := range []string{
		"交易方向：BUY",
		"成交价格：150.5",
		"交易数量：10",
		"你的思考：Broke resistance",
		"基于你的交易思考，本次交易体现了买入的决策逻辑。",
	} {
		if !strings.Contains(review.Text, want) {
			t.Errorf("review missing %q:\n%s", want, review.Text)
		}
	}
}

func TestRenderAutoReview(t *testing.T) {
	review := Render(TradeReviewRequest{
		Symbol:   "TSLA",
		Side:     SideSell,
		Price:    200,
		Quantity: 5,
	})

	if review.Template != TemplateAutoReview {
		t.Fatalf("template = %s, want %s", review.Template, TemplateAutoReview)
	}
	if !strings.HasPrefix(review.Text, "【自动复盘 - TSLA】") {
		t.Errorf("unexpected header: %q", review.Text)
	}
	if !strings.Contains(review.Text, "这是一笔卖出交易。") {
		t.Errorf("missing sell phrase:\n%s", review.Text)
	}
	if strings.Contains(review.Text, "你的思考：") {
		t.Errorf("auto review must not contain user thought section:\n%s", review.Text)
	}
}

func TestRenderExactText(t *testing.T) {
	got := Render(TradeReviewRequest{
		Symbol:      "BTCUSDT",
		Side:        SideBuy,
		Price:       65000,
		Quantity:    0.25,
		UserThought: "突破前高",
	}).Text

	want := "【交易复盘 - BTCUSDT】\n" +
		"\n" +
		"交易方向：BUY\n" +
		"成交价格：65000.0\n" +
		"交易数量：0.25\n" +
		"\n" +
		"你的思考：突破前高\n" +
		"\n" +
		"AI建议：\n" +
		"基于你的交易思考，本次交易体现了买入的决策逻辑。\n" +
		"建议关注市场趋势变化，合理设置止损止盈点位，控制仓位风险。\n" +
		"持续记录交易思考有助于优化交易策略。"
	if got != want {
		t.Errorf("trade review mismatch\n got: %q\nwant: %q", got, want)
	}

	got = Render(TradeReviewRequest{Symbol: "ETHUSDT", Side: SideSell, Price: 3200.75, Quantity: 2}).Text
	want = "【自动复盘 - ETHUSDT】\n" +
		"\n" +
		"交易方向：SELL\n" +
		"成交价格：3200.75\n" +
		"交易数量：2.0\n" +
		"\n" +
		"AI建议：\n" +
		"这是一笔卖出交易。\n" +
		"建议回顾当时的市场环境和交易逻辑，评估交易是否符合你的交易计划。\n" +
		"建议后续交易前先记录交易思考，有助于提升交易质量。"
	if got != want {
		t.Errorf("auto review mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestSidePhrase(t *testing.T) {
	tests := []struct {
		side Side
		want string
	}{
		{SideBuy, "买入"},
		{SideSell, "卖出"},
		{"buy", "卖出"},
		{"HOLD", "卖出"},
		{"", "卖出"},
	}
	for _, tt := range tests {
		t.Run(string(tt.side), func(t *testing.T) {
			if got := tt.side.Action(); got != tt.want {
				t.Errorf("Side(%q).Action() = %q, want %q", tt.side, got, tt.want)
			}
			text := Render(TradeReviewRequest{Symbol: "X", Side: tt.side, UserThought: "t"}).Text
			if !strings.Contains(text, "本次交易体现了"+tt.want+"的决策逻辑") {
				t.Errorf("rendered text missing %q:\n%s", tt.want, text)
			}
			// 原始方向文本原样输出
			if !strings.Contains(text, "交易方向："+string(tt.side)+"\n") {
				t.Errorf("rendered text should echo side %q", tt.side)
			}
		})
	}
}

func TestTemplateSelection(t *testing.T) {
	if got := (TradeReviewRequest{UserThought: " "}).Template(); got != TemplateTradeReview {
		t.Errorf("whitespace thought is non-empty, got %s", got)
	}
	if got := (TradeReviewRequest{}).Template(); got != TemplateAutoReview {
		t.Errorf("empty thought should select auto review, got %s", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{150.5, "150.5"},
		{10, "10.0"},
		{200, "200.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{-3.25, "-3.25"},
		{0.1, "0.1"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{0.000015, "1.5e-05"},
		{1234567890123456, "1234567890123456.0"},
		{1e16, "1e+16"},
		{1.2345e20, "1.2345e+20"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 5, 123456789, time.Local)
	if got := FormatTimestamp(ts); got != "2024-03-15T09:30:05.123456" {
		t.Errorf("FormatTimestamp = %q", got)
	}

	whole := time.Date(2024, 3, 15, 9, 30, 5, 0, time.Local)
	if got := FormatTimestamp(whole); got != "2024-03-15T09:30:05" {
		t.Errorf("FormatTimestamp without fraction = %q", got)
	}

	// 亚微秒部分被截断，视为无小数
	sub := time.Date(2024, 3, 15, 9, 30, 5, 999, time.Local)
	if got := FormatTimestamp(sub); got != "2024-03-15T09:30:05" {
		t.Errorf("FormatTimestamp with sub-microsecond = %q", got)
	}

	parsed, err := time.ParseInLocation("2006-01-02T15:04:05.999999", FormatTimestamp(ts), time.Local)
	if err != nil {
		t.Fatalf("timestamp is not ISO-8601 parseable: %v", err)
	}
	if !parsed.Equal(ts.Truncate(time.Microsecond)) {
		t.Errorf("round trip = %v, want %v", parsed, ts.Truncate(time.Microsecond))
	}
}
