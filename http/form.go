package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"healthmetrics/health"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type fieldValue struct {
	health.Field
	Value float64
}

type bmiView struct {
	Category string
}

type bodyFatView struct {
	Display string
	Band    health.BodyFatBand
}

type pageData struct {
	Tab           string
	LoadError     string
	Gender        string
	BMIFields     []fieldValue
	BodyFatFields []fieldValue
	BMI           *bmiView
	BMIError      string
	BodyFat       *bodyFatView
	BodyFatError  string
	Notes         health.Notes
}

func (h *handlers) registerForms(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict/bmi", h.handleFormBMI)
	mux.HandleFunc("POST /predict/bodyfat", h.handleFormBodyFat)
}

func (h *handlers) newPage(tab string) *pageData {
	bmi := health.DefaultBMIInput()
	page := &pageData{
		Tab:    tab,
		Gender: string(bmi.Gender),
		BMIFields: []fieldValue{
			{Field: health.HeightField, Value: bmi.HeightCm},
			{Field: health.WeightField, Value: bmi.WeightKg},
		},
		Notes: health.GetNotes(),
	}
	defaults := health.DefaultBodyFatInput().Values()
	for i, field := range health.BodyFatFields {
		page.BodyFatFields = append(page.BodyFatFields, fieldValue{Field: field, Value: defaults[i]})
	}
	if h.loadErr != nil {
		page.LoadError = "Error loading models: " + h.loadErr.Error()
	}
	return page
}

func (h *handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	tab := "bmi"
	if r.URL.Query().Get("tab") == "bodyfat" {
		tab = "bodyfat"
	}
	h.render(w, h.newPage(tab), http.StatusOK)
}

func (h *handlers) handleFormBMI(w http.ResponseWriter, r *http.Request) {
	page := h.newPage("bmi")
	if err := r.ParseForm(); err != nil {
		status := requestBodyStatus(err)
		page.BMIError = "Invalid form submission"
		if status == http.StatusRequestEntityTooLarge {
			page.BMIError = "Form submission too large"
		}
		h.render(w, page, status)
		return
	}

	page.Gender = r.PostFormValue("gender")
	in, err := parseBMIForm(r, page.BMIFields)
	if err == nil {
		var result health.BMIResult
		result, err = h.predictor.predictBMI(r.Context(), in)
		if err == nil {
			page.BMI = &bmiView{Category: string(result.Category)}
			h.render(w, page, http.StatusOK)
			return
		}
	}
	page.BMIError = userMessage(modelBMI, err)
	h.render(w, page, errorStatus(err))
}

func (h *handlers) handleFormBodyFat(w http.ResponseWriter, r *http.Request) {
	page := h.newPage("bodyfat")
	if err := r.ParseForm(); err != nil {
		status := requestBodyStatus(err)
		page.BodyFatError = "Invalid form submission"
		if status == http.StatusRequestEntityTooLarge {
			page.BodyFatError = "Form submission too large"
		}
		h.render(w, page, status)
		return
	}

	values, err := parseFields(r, page.BodyFatFields)
	if err == nil {
		var in health.BodyFatInput
		in, err = health.BodyFatInputFromValues(values)
		if err == nil {
			var result health.BodyFatResult
			result, err = h.predictor.predictBodyFat(r.Context(), in)
			if err == nil {
				page.BodyFat = &bodyFatView{
					Display: formatPercent(printerFor(r), result.Percent),
					Band:    result.Band,
				}
				h.render(w, page, http.StatusOK)
				return
			}
		}
	}
	page.BodyFatError = userMessage(modelBodyFat, err)
	h.render(w, page, errorStatus(err))
}

func parseBMIForm(r *http.Request, fields []fieldValue) (health.BMIInput, error) {
	gender, err := health.ParseGender(r.PostFormValue("gender"))
	if err != nil {
		return health.BMIInput{}, err
	}
	values, err := parseFields(r, fields)
	if err != nil {
		return health.BMIInput{}, err
	}
	return health.BMIInput{Gender: gender, HeightCm: values[0], WeightKg: values[1]}, nil
}

// parseFields 解析表单数值，并把提交的值写回fields以便重新渲染
func parseFields(r *http.Request, fields []fieldValue) ([]float64, error) {
	values := make([]float64, len(fields))
	for i := range fields {
		raw := strings.TrimSpace(r.PostFormValue(fields[i].Key))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", health.ErrInvalidInput, fields[i].Label)
		}
		fields[i].Value = value
		values[i] = value
	}
	return values, nil
}

func (h *handlers) render(w http.ResponseWriter, page *pageData, status int) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		h.logger.Error("render page failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
