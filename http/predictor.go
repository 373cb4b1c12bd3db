package http

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"healthmetrics/db"
	"healthmetrics/health"
	"healthmetrics/ml"
	"healthmetrics/monitoring"
)

const (
	modelBMI     = "bmi"
	modelBodyFat = "bodyfat"
)

// HistoryStore 预测历史存储
type HistoryStore interface {
	SavePrediction(ctx context.Context, record db.Record) error
	RecentPredictions(ctx context.Context, limit int) ([]db.Record, error)
}

// predictor 在模型调用外包裹缓存、指标、历史记录和日志
type predictor struct {
	bundle  *ml.Bundle
	cache   *PredictionCache
	history HistoryStore
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger
}

func (p *predictor) predictBMI(ctx context.Context, in health.BMIInput) (health.BMIResult, error) {
	start := time.Now()
	// 只有合法输入才查缓存，非法性别会和Female编码到同一个向量
	if in.Validate() == nil {
		if cached, ok := p.cache.GetBMI(health.BMIFeatureVector(in)); ok {
			p.metrics.RecordCacheHit(modelBMI)
			p.metrics.RecordPrediction(modelBMI, monitoring.OutcomeSuccess, time.Since(start))
			p.recordBMI(ctx, cached)
			return cached, nil
		}
	}

	result, err := health.PredictBMI(p.bundle, in)
	p.metrics.RecordPrediction(modelBMI, outcomeFor(err), time.Since(start))
	if err != nil {
		p.logFailure(ctx, modelBMI, err)
		return result, err
	}

	p.cache.AddBMI(result)
	p.recordBMI(ctx, result)
	return result, nil
}

func (p *predictor) predictBodyFat(ctx context.Context, in health.BodyFatInput) (health.BodyFatResult, error) {
	start := time.Now()
	if in.Validate() == nil {
		if cached, ok := p.cache.GetBodyFat(health.BodyFatFeatureVector(in)); ok {
			p.metrics.RecordCacheHit(modelBodyFat)
			p.metrics.RecordPrediction(modelBodyFat, monitoring.OutcomeSuccess, time.Since(start))
			p.recordBodyFat(ctx, cached)
			return cached, nil
		}
	}

	result, err := health.PredictBodyFat(p.bundle, in)
	p.metrics.RecordPrediction(modelBodyFat, outcomeFor(err), time.Since(start))
	if err != nil {
		p.logFailure(ctx, modelBodyFat, err)
		return result, err
	}

	p.cache.AddBodyFat(result)
	p.recordBodyFat(ctx, result)
	return result, nil
}

// recordBMI 每次成功预测都写入历史，包括缓存命中
func (p *predictor) recordBMI(ctx context.Context, result health.BMIResult) {
	p.record(ctx, db.Record{
		Model:    modelBMI,
		Features: result.Features,
		Value:    float64(result.Label),
		Result:   string(result.Category),
	})
}

func (p *predictor) recordBodyFat(ctx context.Context, result health.BodyFatResult) {
	p.record(ctx, db.Record{
		Model:    modelBodyFat,
		Features: result.Features,
		Value:    result.Percent,
		Result:   result.Band.Name,
	})
}

// record 写入历史失败不影响预测结果
func (p *predictor) record(ctx context.Context, record db.Record) {
	if p.history == nil {
		return
	}
	if err := p.history.SavePrediction(ctx, record); err != nil {
		p.logger.Warn("save prediction history failed",
			zap.String("request_id", GetRequestID(ctx)),
			zap.String("model", record.Model),
			zap.Error(err))
	}
}

func (p *predictor) logFailure(ctx context.Context, model string, err error) {
	fields := []zap.Field{
		zap.String("request_id", GetRequestID(ctx)),
		zap.String("model", model),
		zap.Error(err),
	}
	switch {
	case errors.Is(err, health.ErrInference):
		p.logger.Error("prediction failed", fields...)
	default:
		p.logger.Info("prediction rejected", fields...)
	}
}

func outcomeFor(err error) monitoring.Outcome {
	switch {
	case err == nil:
		return monitoring.OutcomeSuccess
	case errors.Is(err, health.ErrInvalidInput):
		return monitoring.OutcomeInvalid
	case errors.Is(err, health.ErrModelUnavailable):
		return monitoring.OutcomeUnavailable
	default:
		return monitoring.OutcomeFailure
	}
}
