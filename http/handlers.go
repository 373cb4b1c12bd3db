package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"healthmetrics/health"
)

func (h *handlers) registerAPI(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/models", h.handleModels)
	mux.HandleFunc("GET /api/notes", handleNotes)
	mux.HandleFunc("GET /api/bodyfat/defaults", handleBodyFatDefaults)
	mux.HandleFunc("POST /api/predict/bmi", h.handlePredictBMI)
	mux.HandleFunc("POST /api/predict/bodyfat", h.handlePredictBodyFat)
	mux.HandleFunc("GET /api/metrics", h.handleMetrics)
	mux.HandleFunc("GET /api/history", h.handleHistory)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func handleNotes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, health.GetNotes(), http.StatusOK)
}

func handleBodyFatDefaults(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{
		"input":  health.DefaultBodyFatInput(),
		"fields": health.BodyFatFields,
	}, http.StatusOK)
}

func (h *handlers) handleModels(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"source": h.modelSource,
		"models": h.predictor.bundle.Status(),
	}
	if h.loadErr != nil {
		response["error"] = h.loadErr.Error()
	}
	respondJSON(w, response, http.StatusOK)
}

type bmiRequest struct {
	Gender string  `json:"gender"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// handlePredictBMI 缺省字段取表单默认值
func (h *handlers) handlePredictBMI(w http.ResponseWriter, r *http.Request) {
	defaults := health.DefaultBMIInput()
	req := bmiRequest{Gender: string(defaults.Gender), Height: defaults.HeightCm, Weight: defaults.WeightKg}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err.Error(), requestBodyStatus(err))
		return
	}
	gender, err := health.ParseGender(req.Gender)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.predictor.predictBMI(r.Context(), health.BMIInput{Gender: gender, HeightCm: req.Height, WeightKg: req.Weight})
	if err != nil {
		respondError(w, userMessage(modelBMI, err), errorStatus(err))
		return
	}
	respondJSON(w, result, http.StatusOK)
}

type bodyFatResponse struct {
	health.BodyFatResult
	Display string `json:"display"`
}

func (h *handlers) handlePredictBodyFat(w http.ResponseWriter, r *http.Request) {
	in := health.DefaultBodyFatInput()
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err.Error(), requestBodyStatus(err))
		return
	}

	result, err := h.predictor.predictBodyFat(r.Context(), in)
	if err != nil {
		respondError(w, userMessage(modelBodyFat, err), errorStatus(err))
		return
	}
	respondJSON(w, bodyFatResponse{
		BodyFatResult: result,
		Display:       formatPercent(printerFor(r), result.Percent),
	}, http.StatusOK)
}

func (h *handlers) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := h.predictor.metrics
	if r.URL.Query().Get("format") == "prometheus" {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprint(w, metrics.ExportPrometheus())
		return
	}
	respondJSON(w, map[string]interface{}{
		"uptime_seconds": metrics.GetUptime().Seconds(),
		"models":         metrics.GetStats(),
		"cache_entries":  h.predictor.cache.Len(),
	}, http.StatusOK)
}

func (h *handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.predictor.history == nil {
		respondError(w, "prediction history is disabled", http.StatusNotFound)
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	records, err := h.predictor.history.RecentPredictions(r.Context(), limit)
	if err != nil {
		respondError(w, "failed to load prediction history", http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]interface{}{
		"predictions": records,
		"count":       len(records),
	}, http.StatusOK)
}

func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// requestBodyStatus 请求体超过RequestSizeMiddleware限制时返回413，其余为400
func requestBodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// errorStatus 将领域错误映射为HTTP状态码
func errorStatus(err error) int {
	switch {
	case errors.Is(err, health.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, health.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// userMessage 生成面向用户的错误信息
func userMessage(model string, err error) string {
	switch {
	case errors.Is(err, health.ErrModelUnavailable) && model == modelBMI:
		return "BMI model not loaded"
	case errors.Is(err, health.ErrModelUnavailable):
		return "Body Fat models not loaded"
	case errors.Is(err, health.ErrInvalidInput):
		return err.Error()
	default:
		return "Prediction error: " + err.Error()
	}
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
