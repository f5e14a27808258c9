package application

// GenerateReviewCommand 生成复盘命令
type GenerateReviewCommand struct {
	Symbol      string
	Side        string
	Price       float64
	Quantity    float64
	UserThought string
}

// ReviewDTO 复盘结果
type ReviewDTO struct {
	Review    string `json:"review"`
	Timestamp string `json:"timestamp"`
}
