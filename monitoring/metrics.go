package monitoring

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Outcome 预测结果类型
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeInvalid     Outcome = "invalid_input"
	OutcomeUnavailable Outcome = "model_unavailable"
	OutcomeFailure     Outcome = "inference_failure"
)

// ModelStat 单个模型的预测统计
type ModelStat struct {
	Model      string            `json:"model"`
	Count      int64             `json:"count"`
	CacheHits  int64             `json:"cache_hits"`
	Outcomes   map[Outcome]int64 `json:"outcomes"`
	LatencyMin time.Duration     `json:"latency_min_ns"`
	LatencyMax time.Duration     `json:"latency_max_ns"`
	LatencyAvg time.Duration     `json:"latency_avg_ns"`
	latencySum time.Duration
}

// MetricsCollector 预测指标收集器
type MetricsCollector struct {
	metricsLock sync.RWMutex
	stats       map[string]*ModelStat
	startTime   time.Time
}

// NewMetricsCollector 创建指标收集器
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		stats:     make(map[string]*ModelStat),
		startTime: time.Now(),
	}
}

func (mc *MetricsCollector) stat(model string) *ModelStat {
	stat, ok := mc.stats[model]
	if !ok {
		stat = &ModelStat{Model: model, Outcomes: make(map[Outcome]int64)}
		mc.stats[model] = stat
	}
	return stat
}

// RecordPrediction 记录一次预测
func (mc *MetricsCollector) RecordPrediction(model string, outcome Outcome, latency time.Duration) {
	mc.metricsLock.Lock()
	defer mc.metricsLock.Unlock()

	stat := mc.stat(model)
	stat.Count++
	stat.Outcomes[outcome]++
	stat.latencySum += latency
	if stat.Count == 1 || latency < stat.LatencyMin {
		stat.LatencyMin = latency
	}
	if latency > stat.LatencyMax {
		stat.LatencyMax = latency
	}
	stat.LatencyAvg = stat.latencySum / time.Duration(stat.Count)
}

// RecordCacheHit 记录缓存命中
func (mc *MetricsCollector) RecordCacheHit(model string) {
	mc.metricsLock.Lock()
	defer mc.metricsLock.Unlock()

	mc.stat(model).CacheHits++
}

// GetStats 获取所有模型统计（副本）
func (mc *MetricsCollector) GetStats() []ModelStat {
	mc.metricsLock.RLock()
	defer mc.metricsLock.RUnlock()

	result := make([]ModelStat, 0, len(mc.stats))
	for _, stat := range mc.stats {
		statCopy := *stat
		statCopy.Outcomes = make(map[Outcome]int64, len(stat.Outcomes))
		for k, v := range stat.Outcomes {
			statCopy.Outcomes[k] = v
		}
		result = append(result, statCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Model < result[j].Model })
	return result
}

// GetUptime 获取运行时间
func (mc *MetricsCollector) GetUptime() time.Duration {
	return time.Since(mc.startTime)
}

// ExportPrometheus 导出Prometheus格式
func (mc *MetricsCollector) ExportPrometheus() string {
	var b strings.Builder

	b.WriteString("# HELP healthmetrics_predictions_total Predictions by model and outcome\n")
	b.WriteString("# TYPE healthmetrics_predictions_total counter\n")
	stats := mc.GetStats()
	for _, stat := range stats {
		outcomes := make([]string, 0, len(stat.Outcomes))
		for outcome := range stat.Outcomes {
			outcomes = append(outcomes, string(outcome))
		}
		sort.Strings(outcomes)
		for _, outcome := range outcomes {
			fmt.Fprintf(&b, "healthmetrics_predictions_total{model=%q,outcome=%q} %d\n",
				stat.Model, outcome, stat.Outcomes[Outcome(outcome)])
		}
	}

	b.WriteString("# HELP healthmetrics_cache_hits_total Prediction cache hits by model\n")
	b.WriteString("# TYPE healthmetrics_cache_hits_total counter\n")
	for _, stat := range stats {
		fmt.Fprintf(&b, "healthmetrics_cache_hits_total{model=%q} %d\n", stat.Model, stat.CacheHits)
	}
	return b.String()
}
