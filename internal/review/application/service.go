package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/wyfcoding/tradereview/internal/review/domain"
	"github.com/wyfcoding/tradereview/pkg/logger"
	"github.com/wyfcoding/tradereview/pkg/tracing"
)

// ReviewRecorder 复盘指标记录
type ReviewRecorder interface {
	RecordReview(template string)
}

type noopRecorder struct{}

func (noopRecorder) RecordReview(string) {}

// ReviewService 复盘应用服务
type ReviewService struct {
	clock    func() time.Time
	recorder ReviewRecorder
}

// Option ReviewService 配置项
type Option func(*ReviewService)

// WithClock 注入时钟，默认 time.Now
func WithClock(clock func() time.Time) Option {
	return func(s *ReviewService) {
		s.clock = clock
	}
}

// WithRecorder 注入指标记录器
func WithRecorder(r ReviewRecorder) Option {
	return func(s *ReviewService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewReviewService 构造函数
func NewReviewService(opts ...Option) *ReviewService {
	s := &ReviewService{
		clock:    time.Now,
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateReview 根据交易信息和用户思考生成复盘。无错误路径，时间戳在渲染完成后读取
func (s *ReviewService) GenerateReview(ctx context.Context, cmd GenerateReviewCommand) *ReviewDTO {
	req := domain.TradeReviewRequest{
		Symbol:      cmd.Symbol,
		Side:        domain.Side(cmd.Side),
		Price:       cmd.Price,
		Quantity:    cmd.Quantity,
		UserThought: cmd.UserThought,
	}

	ctx, span := tracing.StartSpan(ctx, "review.generate",
		attribute.String("symbol", req.Symbol),
		attribute.String("side", string(req.Side)),
		attribute.String("template", string(req.Template())),
	)
	defer span.End()

	defer logger.LogDuration(ctx, "trade review generated",
		"symbol", req.Symbol,
		"side", string(req.Side),
		"template", string(req.Template()),
		"has_thought", req.UserThought != "",
	)()

	review := domain.Render(req)
	s.recorder.RecordReview(string(review.Template))

	return &ReviewDTO{
		Review:    review.Text,
		Timestamp: domain.FormatTimestamp(s.clock()),
	}
}
