package http

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"healthmetrics/health"
)

// PredictionCache 预测结果缓存。模型在进程内不可变，
// 相同特征向量的预测结果可以直接复用。
type PredictionCache struct {
	bmi     *lru.Cache[string, health.BMIResult]
	bodyFat *lru.Cache[string, health.BodyFatResult]
}

// NewPredictionCache 创建缓存，size为0时返回nil（禁用缓存）
func NewPredictionCache(size int) (*PredictionCache, error) {
	if size <= 0 {
		return nil, nil
	}
	bmi, err := lru.New[string, health.BMIResult](size)
	if err != nil {
		return nil, err
	}
	bodyFat, err := lru.New[string, health.BodyFatResult](size)
	if err != nil {
		return nil, err
	}
	return &PredictionCache{bmi: bmi, bodyFat: bodyFat}, nil
}

func (c *PredictionCache) GetBMI(features []float64) (health.BMIResult, bool) {
	if c == nil {
		return health.BMIResult{}, false
	}
	return c.bmi.Get(vectorKey(features))
}

func (c *PredictionCache) AddBMI(result health.BMIResult) {
	if c == nil {
		return
	}
	c.bmi.Add(vectorKey(result.Features), result)
}

func (c *PredictionCache) GetBodyFat(features []float64) (health.BodyFatResult, bool) {
	if c == nil {
		return health.BodyFatResult{}, false
	}
	return c.bodyFat.Get(vectorKey(features))
}

func (c *PredictionCache) AddBodyFat(result health.BodyFatResult) {
	if c == nil {
		return
	}
	c.bodyFat.Add(vectorKey(result.Features), result)
}

// Len 返回两个缓存的条目总数
func (c *PredictionCache) Len() int {
	if c == nil {
		return 0
	}
	return c.bmi.Len() + c.bodyFat.Len()
}

func vectorKey(features []float64) string {
	parts := make([]string, len(features))
	for i, v := range features {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
