package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	contentType   = "application/json; charset=utf-8"
	statusSuccess = "success"
	statusError   = "error"

	msgInternal = "Erreur interne du serveur"
)

// envelope - единый формат ответа API.
type envelope struct {
	Data    any    `json:"data"`
	Statut  string `json:"statut"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Count   *int   `json:"count,omitempty"`
}

func success(data any, message string) envelope {
	return envelope{Data: data, Statut: statusSuccess, Code: http.StatusOK, Message: message}
}

func failure(code int, message string) envelope {
	return envelope{Statut: statusError, Code: code, Message: message}
}

func (e envelope) withCount(n int) envelope {
	e.Count = &n
	return e
}

// respond пишет ответ с HTTP-статусом из поля code.
func respond(c *gin.Context, env envelope) {
	writeJSON(c, env.Code, env)
}

// writeJSON пишет JSON с отступами, без экранирования HTML.
func writeJSON(c *gin.Context, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		_ = c.Error(err)
		c.Data(http.StatusInternalServerError, contentType, []byte(`{"data":null,"statut":"error","code":500,"message":"`+msgInternal+`"}`))
		return
	}
	c.Data(status, contentType, buf.Bytes())
}
