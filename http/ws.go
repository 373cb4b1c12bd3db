package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"healthmetrics/health"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 16 << 10
)

// wsRequest 客户端预测请求
type wsRequest struct {
	Type  string          `json:"type"`
	Input json.RawMessage `json:"input"`
}

// wsResponse 服务端预测响应
type wsResponse struct {
	Type    string      `json:"type"`
	Request string      `json:"request,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Display string      `json:"display,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func newUpgrader(origins []string) websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	for _, origin := range origins {
		if origin == "*" {
			upgrader.CheckOrigin = func(r *http.Request) bool { return true }
			break
		}
	}
	if upgrader.CheckOrigin == nil && len(origins) > 0 {
		allowed := make(map[string]bool, len(origins))
		for _, origin := range origins {
			allowed[origin] = true
		}
		upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin] || sameHost(r, origin)
		}
	}
	return upgrader
}

func sameHost(r *http.Request, origin string) bool {
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// handleWebSocket 实时预测通道：每条消息同步完成一次预测
func (h *handlers) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	requestID := GetRequestID(r.Context())
	conn.SetReadLimit(wsMaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.String("request_id", requestID), zap.Error(err))
			}
			return
		}

		response := h.handleClientMessage(r, data)
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(response); err != nil {
			h.logger.Warn("websocket write error", zap.String("request_id", requestID), zap.Error(err))
			return
		}
	}
}

func (h *handlers) handleClientMessage(r *http.Request, data []byte) wsResponse {
	var msg wsRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return wsResponse{Type: "error", Error: "invalid message"}
	}

	switch msg.Type {
	case modelBMI:
		defaults := health.DefaultBMIInput()
		req := bmiRequest{Gender: string(defaults.Gender), Height: defaults.HeightCm, Weight: defaults.WeightKg}
		if err := decodeInput(msg.Input, &req); err != nil {
			return wsResponse{Type: "error", Request: msg.Type, Error: err.Error()}
		}
		gender, err := health.ParseGender(req.Gender)
		if err != nil {
			return wsResponse{Type: "error", Request: msg.Type, Error: err.Error()}
		}
		result, err := h.predictor.predictBMI(r.Context(), health.BMIInput{Gender: gender, HeightCm: req.Height, WeightKg: req.Weight})
		if err != nil {
			return wsResponse{Type: "error", Request: msg.Type, Error: userMessage(modelBMI, err)}
		}
		return wsResponse{Type: modelBMI, Result: result}

	case modelBodyFat:
		in := health.DefaultBodyFatInput()
		if err := decodeInput(msg.Input, &in); err != nil {
			return wsResponse{Type: "error", Request: msg.Type, Error: err.Error()}
		}
		result, err := h.predictor.predictBodyFat(r.Context(), in)
		if err != nil {
			return wsResponse{Type: "error", Request: msg.Type, Error: userMessage(modelBodyFat, err)}
		}
		return wsResponse{Type: modelBodyFat, Result: result, Display: formatPercent(printerFor(r), result.Percent)}

	default:
		return wsResponse{Type: "error", Request: msg.Type, Error: "unknown prediction type"}
	}
}

func decodeInput(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
