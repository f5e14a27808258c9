package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/tradereview/internal/review/application"
	"github.com/wyfcoding/tradereview/pkg/logger"
)

// RootMessage 根路径返回的固定问候语
const RootMessage = "Hello World from AI service!"

// ReviewHandler HTTP 处理器
// 负责处理交易复盘相关的 HTTP 请求
type ReviewHandler struct {
	app *application.ReviewService // 复盘应用服务
}

// NewReviewHandler 创建 HTTP 处理器实例
func NewReviewHandler(app *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *ReviewHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Root)
	router.POST("/api/review", h.GenerateReview)
}

// Root 存活探针
func (h *ReviewHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": RootMessage})
}

// GenerateReview 生成交易复盘
func (h *ReviewHandler) GenerateReview(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		logger.Warn(c.Request.Context(), "failed to read review request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	req, verr := decodeTradeReviewRequest(raw)
	if verr != nil {
		logger.Info(c.Request.Context(), "review request rejected", "error", verr.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": verr.Details})
		return
	}

	dto := h.app.GenerateReview(c.Request.Context(), req.ToCommand())
	c.JSON(http.StatusOK, dto)
}
